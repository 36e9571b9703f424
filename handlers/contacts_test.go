package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/addressbook/contacts"
	ds "github.com/oaiiae/addressbook/datastores"
)

func newTestAPI(t *testing.T) (humatest.TestAPI, *[]error) {
	t.Helper()
	book := contacts.NewAddressBook(contacts.WithLogger(slog.New(slog.DiscardHandler)))
	john := contacts.NewRecord("John")
	require.NoError(t, john.AddPhone("1234567890"))
	require.NoError(t, john.AddPhone("5555555555"))
	require.NoError(t, john.AddBirthday("19-10-1992"))
	book.AddRecord(john)
	jane := contacts.NewRecord("Jane")
	require.NoError(t, jane.AddPhone("9876543210"))
	book.AddRecord(jane)

	clk := clock.NewMock()
	clk.Set(time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)) // a sunday

	var errs []error
	store := ds.NewContactsBook(book, "")
	onError := func(_ context.Context, err error) { errs = append(errs, err) }

	_, api := humatest.New(t)
	huma.AutoRegister(huma.NewGroup(api, "/contacts"), &Contacts{Store: store, Clock: clk, ErrorHandler: onError})
	huma.AutoRegister(huma.NewGroup(api, "/pages"), &Pages{Store: store, ErrorHandler: onError})
	huma.AutoRegister(huma.NewGroup(api, "/birthdays"), &Birthdays{Store: store, Clock: clk, ErrorHandler: onError})
	return api, &errs
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestContactsList(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/contacts/")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	list := decode[[]ContactModel](t, resp.Body.Bytes())
	require.Len(t, list, 2)
	assert.Equal(t, "John", list[0].Name)
	assert.Equal(t, "Jane", list[1].Name)

	resp = api.Get("/contacts/?offset=1&length=5")
	require.Equal(t, http.StatusOK, resp.Code)
	list = decode[[]ContactModel](t, resp.Body.Bytes())
	require.Len(t, list, 1)
	assert.Equal(t, "Jane", list[0].Name)
}

func TestContactsGet(t *testing.T) {
	api, errs := newTestAPI(t)

	resp := api.Get("/contacts/John")
	require.Equal(t, http.StatusOK, resp.Code)
	john := decode[ContactModel](t, resp.Body.Bytes())
	assert.Equal(t, []string{"1234567890", "5555555555"}, john.Phones)
	assert.Equal(t, "19-10-1992", john.Birthday)
	require.NotNil(t, john.DaysToBirthday)
	assert.Equal(t, 1, *john.DaysToBirthday)

	resp = api.Get("/contacts/Jane")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, decode[ContactModel](t, resp.Body.Bytes()).DaysToBirthday)

	resp = api.Get("/contacts/Nobody")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	require.Len(t, *errs, 1)
	var statusErr huma.StatusError
	require.ErrorAs(t, (*errs)[0], &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.GetStatus())
}

func TestContactsPut(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Put("/contacts/Jim", map[string]any{
		"phones":   []string{"7777777777"},
		"birthday": "10-12-1995",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = api.Get("/contacts/Jim")
	require.Equal(t, http.StatusOK, resp.Code)
	jim := decode[ContactModel](t, resp.Body.Bytes())
	assert.Equal(t, []string{"7777777777"}, jim.Phones)
	assert.Equal(t, "10-12-1995", jim.Birthday)

	resp = api.Put("/contacts/Bad", map[string]any{"phones": []string{"12"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	resp = api.Put("/contacts/Bad", map[string]any{"phones": []string{}, "birthday": "1995-12-10"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, http.StatusNotFound, api.Get("/contacts/Bad").Code)
}

func TestContactsDelete(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Delete("/contacts/Jane")
	assert.Less(t, resp.Code, 300)
	assert.Equal(t, http.StatusNotFound, api.Get("/contacts/Jane").Code)

	resp = api.Delete("/contacts/Jane")
	assert.Less(t, resp.Code, 300)
}

func TestContactsPhones(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Post("/contacts/Jane/phones", map[string]any{"phone": "1112223333"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, []string{"9876543210", "1112223333"}, decode[ContactModel](t, resp.Body.Bytes()).Phones)

	resp = api.Post("/contacts/Nobody/phones", map[string]any{"phone": "1112223333"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = api.Post("/contacts/Jane/phones", map[string]any{"phone": "111-222-33"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = api.Put("/contacts/John/phones/1234567890", map[string]any{"phone": "1112223333"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, []string{"1112223333", "5555555555"}, decode[ContactModel](t, resp.Body.Bytes()).Phones)

	resp = api.Put("/contacts/John/phones/1234567890", map[string]any{"phone": "1112223333"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = api.Put("/contacts/John/phones/5555555555", map[string]any{"phone": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = api.Delete("/contacts/John/phones/5555555555")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"1112223333"}, decode[ContactModel](t, resp.Body.Bytes()).Phones)

	// removing a missing phone is not an error
	resp = api.Delete("/contacts/John/phones/5555555555")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestContactsBirthday(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Put("/contacts/Jane/birthday", map[string]any{"birthday": "18-10-1990"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	jane := decode[ContactModel](t, resp.Body.Bytes())
	assert.Equal(t, "18-10-1990", jane.Birthday)
	require.NotNil(t, jane.DaysToBirthday)
	assert.Equal(t, 0, *jane.DaysToBirthday)

	resp = api.Put("/contacts/Jane/birthday", map[string]any{"birthday": "1990-10-18"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestContactsGetBirthday(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/contacts/John/birthday")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	body := decode[map[string]any](t, resp.Body.Bytes())
	assert.Equal(t, "19-10-1992", body["birthday"])
	assert.EqualValues(t, 1, body["daysToBirthday"])

	resp = api.Get("/contacts/Jane/birthday")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Get("/contacts/Nobody/birthday")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestContactsSearch(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/contacts/?q=JAN")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	found := decode[[]ContactModel](t, resp.Body.Bytes())
	require.Len(t, found, 1)
	assert.Equal(t, "Jane", found[0].Name)

	resp = api.Get("/contacts/?q=5")
	require.Equal(t, http.StatusOK, resp.Code)
	found = decode[[]ContactModel](t, resp.Body.Bytes())
	require.Len(t, found, 2)

	resp = api.Get("/contacts/?q=5&offset=1&length=5")
	require.Equal(t, http.StatusOK, resp.Code)
	found = decode[[]ContactModel](t, resp.Body.Bytes())
	require.Len(t, found, 1)
	assert.Equal(t, "Jane", found[0].Name)

	resp = api.Get("/contacts/?q=zzz")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[[]ContactModel](t, resp.Body.Bytes()))
}

func TestContactsAnyName(t *testing.T) {
	api, _ := newTestAPI(t)

	for _, name := range []string{"search", "pages"} {
		resp := api.Put("/contacts/"+name, map[string]any{"phones": []string{"1112223333"}})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		resp = api.Get("/contacts/" + name)
		require.Equal(t, http.StatusOK, resp.Code, name)
		assert.Equal(t, name, decode[ContactModel](t, resp.Body.Bytes()).Name)
	}
}

func TestPages(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/pages/?size=1")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	pages := decode[[]string](t, resp.Body.Bytes())
	require.Len(t, pages, 2)
	assert.Contains(t, pages[1], "1: Contact name: Jane")

	resp = api.Get("/pages/")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[[]string](t, resp.Body.Bytes()), 1)

	assert.Equal(t, http.StatusUnprocessableEntity, api.Get("/pages/?size=0").Code)
}

func TestBirthdaysWeek(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/birthdays/")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t,
		[]BirthdaysDayModel{{Day: "Monday", Names: []string{"John"}}},
		decode[[]BirthdaysDayModel](t, resp.Body.Bytes()))
}
