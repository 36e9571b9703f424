package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/danielgtaylor/huma/v2"

	"github.com/oaiiae/addressbook/birthdays"
	ds "github.com/oaiiae/addressbook/datastores"
)

type Birthdays struct {
	Store        ds.ContactsStore
	Clock        clock.Clock
	ErrorHandler func(context.Context, error)
}

type BirthdaysDayModel struct {
	Day   string   `json:"day"   example:"Monday"`
	Names []string `json:"names" doc:"contacts to greet on that day"`
}

type BirthdaysWeekOutput struct {
	Body []BirthdaysDayModel
}

func (h *Birthdays) RegisterWeek(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/",
		handlerWithErrorHandler(h.week, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
		func(o *huma.Operation) { o.Summary = "Birthdays of the coming week" },
	)
}

func (h *Birthdays) week(ctx context.Context, _ *struct{}) (*BirthdaysWeekOutput, error) {
	people, err := h.Store.People(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if h.Clock != nil {
		now = h.Clock.Now()
	}

	body := []BirthdaysDayModel{}
	for day, names := range birthdays.PerWeek(people, now).Days() {
		body = append(body, BirthdaysDayModel{Day: day.String(), Names: names})
	}
	return &BirthdaysWeekOutput{Body: body}, nil
}
