package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/addressbook/datastores"
)

// Pages serves the address book as printable pages of contacts.
type Pages struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
}

type PagesListOutput struct {
	Body []string
}

func (h *Pages) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

func (h *Pages) list(ctx context.Context, input *struct {
	Size int `query:"size" minimum:"1" default:"2" doc:"contacts per page"`
}) (*PagesListOutput, error) {
	pages, err := h.Store.Pages(ctx, input.Size)
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []string{}
	}
	return &PagesListOutput{Body: pages}, nil
}
