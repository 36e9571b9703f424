package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/danielgtaylor/huma/v2"

	"github.com/oaiiae/addressbook/contacts"
	ds "github.com/oaiiae/addressbook/datastores"
)

type Contacts struct {
	Store        ds.ContactsStore
	Clock        clock.Clock
	ErrorHandler func(context.Context, error)
}

type ContactModel struct {
	Name string `json:"name" readOnly:"true" example:"john"`

	Phones         []string `json:"phones"                   doc:"ten digit phone numbers"`
	Birthday       string   `json:"birthday,omitempty"       example:"29-04-1992" doc:"birthday as DD-MM-YYYY"`
	DaysToBirthday *int     `json:"daysToBirthday,omitempty" readOnly:"true"      doc:"days until the next birthday"`
}

func (h *Contacts) model(r *contacts.Record) ContactModel {
	m := ContactModel{Name: r.Name(), Phones: []string{}}
	for _, p := range r.Phones() {
		m.Phones = append(m.Phones, p.Value())
	}
	if b, ok := r.Birthday(); ok {
		m.Birthday = b.String()
	}
	if days, ok := r.DaysToBirthday(h.now()); ok {
		m.DaysToBirthday = &days
	}
	return m
}

func (h *Contacts) models(rs []*contacts.Record) []ContactModel {
	body := make([]ContactModel, 0, len(rs))
	for _, r := range rs {
		body = append(body, h.model(r))
	}
	return body
}

func (h *Contacts) now() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock.Now()
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactsListOutput struct {
	Body []ContactModel
}

func (h *Contacts) list(ctx context.Context, input *struct {
	Query  string `query:"q"      example:"john"           doc:"only contacts with this in their name (any case) or phone number"`
	Offset int    `query:"offset" minimum:"0" default:"0"  doc:"number of contacts to skip"`
	Length int    `query:"length" minimum:"1" default:"50" doc:"maximum number of contacts"`
}) (*ContactsListOutput, error) {
	if input.Query == "" {
		rs, err := h.Store.List(ctx, input.Offset, input.Length)
		if err != nil {
			return nil, err
		}
		return &ContactsListOutput{Body: h.models(rs)}, nil
	}

	rs, err := h.Store.Search(ctx, input.Query)
	if err != nil {
		return nil, err
	}
	rs = rs[min(input.Offset, len(rs)):]
	rs = rs[:min(input.Length, len(rs))]
	return &ContactsListOutput{Body: h.models(rs)}, nil
}

func (h *Contacts) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/{name}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

type ContactsGetOutput struct {
	Body ContactModel
}

func (h *Contacts) get(ctx context.Context, input *struct {
	Name string `path:"name" doc:"name of the contact to get"`
}) (*ContactsGetOutput, error) {
	r, err := h.Store.Get(ctx, input.Name)
	if err != nil {
		return nil, statusError(err)
	}
	return &ContactsGetOutput{Body: h.model(r)}, nil
}

func (h *Contacts) RegisterPut(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/{name}",
		handlerWithErrorHandler(h.put, h.ErrorHandler),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) put(ctx context.Context, input *struct {
	Name string `path:"name" doc:"name of the contact to put"`
	Body ContactModel
}) (*ContactsGetOutput, error) {
	r := contacts.NewRecord(input.Name)
	for _, p := range input.Body.Phones {
		if err := r.AddPhone(p); err != nil {
			return nil, statusError(err)
		}
	}
	if input.Body.Birthday != "" {
		if err := r.AddBirthday(input.Body.Birthday); err != nil {
			return nil, statusError(err)
		}
	}
	if err := h.Store.Put(ctx, r); err != nil {
		return nil, err
	}
	return &ContactsGetOutput{Body: h.model(r)}, nil
}

func (h *Contacts) RegisterDel(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/{name}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

func (h *Contacts) del(ctx context.Context, input *struct {
	Name string `path:"name" doc:"name of the contact to delete"`
}) (*struct{}, error) {
	return nil, h.Store.Delete(ctx, input.Name)
}

type PhoneModel struct {
	Phone string `json:"phone" example:"1234567890" doc:"ten digit phone number"`
}

func (h *Contacts) RegisterAddPhone(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/{name}/phones",
		handlerWithErrorHandler(h.addPhone, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
		opDefaultStatus(http.StatusCreated),
	)
}

func (h *Contacts) addPhone(ctx context.Context, input *struct {
	Name string `path:"name" doc:"name of the contact"`
	Body PhoneModel
}) (*ContactsGetOutput, error) {
	return h.update(ctx, input.Name, func(r *contacts.Record) error { return r.AddPhone(input.Body.Phone) })
}

func (h *Contacts) RegisterEditPhone(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/{name}/phones/{phone}",
		handlerWithErrorHandler(h.editPhone, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) editPhone(ctx context.Context, input *struct {
	Name  string `path:"name"  doc:"name of the contact"`
	Phone string `path:"phone" doc:"phone number to replace"`
	Body  PhoneModel
}) (*ContactsGetOutput, error) {
	return h.update(ctx, input.Name, func(r *contacts.Record) error { return r.EditPhone(input.Phone, input.Body.Phone) })
}

func (h *Contacts) RegisterRemovePhone(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/{name}/phones/{phone}",
		handlerWithErrorHandler(h.removePhone, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) removePhone(ctx context.Context, input *struct {
	Name  string `path:"name"  doc:"name of the contact"`
	Phone string `path:"phone" doc:"phone number to remove"`
}) (*ContactsGetOutput, error) {
	return h.update(ctx, input.Name, func(r *contacts.Record) error { r.RemovePhone(input.Phone); return nil })
}

type BirthdayModel struct {
	Birthday string `json:"birthday" example:"29-04-1992" doc:"birthday as DD-MM-YYYY"`
}

func (h *Contacts) RegisterPutBirthday(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/{name}/birthday",
		handlerWithErrorHandler(h.putBirthday, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) putBirthday(ctx context.Context, input *struct {
	Name string `path:"name" doc:"name of the contact"`
	Body BirthdayModel
}) (*ContactsGetOutput, error) {
	return h.update(ctx, input.Name, func(r *contacts.Record) error { return r.AddBirthday(input.Body.Birthday) })
}

func (h *Contacts) RegisterGetBirthday(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/{name}/birthday",
		handlerWithErrorHandler(h.getBirthday, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

type ContactsGetBirthdayOutput struct {
	Body struct {
		Birthday       string `json:"birthday"       example:"29-04-1992"`
		DaysToBirthday int    `json:"daysToBirthday" doc:"days until the next birthday, 0 when it is today"`
	}
}

func (h *Contacts) getBirthday(ctx context.Context, input *struct {
	Name string `path:"name" doc:"name of the contact"`
}) (*ContactsGetBirthdayOutput, error) {
	r, err := h.Store.Get(ctx, input.Name)
	if err != nil {
		return nil, statusError(err)
	}
	b, ok := r.Birthday()
	if !ok {
		return nil, huma.Error404NotFound("birthday not set")
	}
	days, _ := r.DaysToBirthday(h.now())
	output := &ContactsGetBirthdayOutput{}
	output.Body.Birthday = b.String()
	output.Body.DaysToBirthday = days
	return output, nil
}

func (h *Contacts) update(ctx context.Context, name string, do func(*contacts.Record) error) (*ContactsGetOutput, error) {
	r, err := h.Store.Update(ctx, name, do)
	if err != nil {
		return nil, statusError(err)
	}
	return &ContactsGetOutput{Body: h.model(r)}, nil
}

// statusError maps store and validation errors to HTTP errors.
func statusError(err error) error {
	switch {
	case errors.Is(err, ds.ErrObjectNotFound):
		return huma.Error404NotFound("contact not found", err)
	case errors.Is(err, contacts.ErrPhoneNotFound):
		return huma.Error404NotFound("phone not found", err)
	case errors.Is(err, contacts.ErrValidation), errors.Is(err, contacts.ErrInvalidBirthday):
		return huma.Error422UnprocessableEntity(err.Error(), err)
	default:
		return err
	}
}
