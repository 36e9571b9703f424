package birthdays

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/addressbook/contacts"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestPerWeek(t *testing.T) {
	people := []Person{
		{"Sasha", date(2023, time.November, 9)},
		{"Alex", date(2023, time.November, 11)},
		{"Oleksander", date(2023, time.November, 12)},
		{"Shura", date(2023, time.November, 13)},
		{"AlexSashka", date(2023, time.November, 6)},
		{"Saniok", date(2023, time.November, 7)},
		{"Shyrik", date(2023, time.November, 8)},
		{"Sashka", date(2023, time.November, 10)},
		{"Later", date(2023, time.November, 14)},
		{"Earlier", date(2023, time.November, 5)},
	}

	// a monday
	week := PerWeek(people, date(2023, time.November, 6).Add(15*time.Hour))
	assert.Equal(t, Week{
		time.Monday:    {"Alex", "Oleksander", "Shura", "AlexSashka"},
		time.Tuesday:   {"Saniok"},
		time.Wednesday: {"Shyrik"},
		time.Thursday:  {"Sasha"},
		time.Friday:    {"Sashka"},
	}, week)
}

func TestPerWeekEmpty(t *testing.T) {
	assert.Empty(t, PerWeek(nil, time.Now()))
	assert.Equal(t, "", PerWeek(nil, time.Now()).String())
}

func TestPerWeekAcrossYears(t *testing.T) {
	people := []Person{
		{"NewYear", date(1990, time.January, 2)}, // a saturday in 2027
		{"Twelfth", date(1985, time.January, 6)},
		{"TooLate", date(1985, time.January, 7)},
	}

	week := PerWeek(people, date(2026, time.December, 30))
	assert.Equal(t, Week{
		time.Monday:    {"NewYear"},
		time.Wednesday: {"Twelfth"},
	}, week)
}

func TestWeekString(t *testing.T) {
	week := Week{
		time.Friday: {"Sashka"},
		time.Monday: {"Alex", "Shura"},
	}
	assert.Equal(t, "Monday: Alex, Shura\nFriday: Sashka\n", week.String())
}

func TestFromBook(t *testing.T) {
	book := contacts.NewAddressBook()
	for _, c := range []struct{ name, birthday string }{
		{"John", "19-10-1992"},
		{"Jane", ""},
		{"Jim", "22-10-2001"},
	} {
		r := contacts.NewRecord(c.name)
		if c.birthday != "" {
			require.NoError(t, r.AddBirthday(c.birthday))
		}
		book.AddRecord(r)
	}

	people := FromBook(book)
	require.Len(t, people, 2)
	assert.Equal(t, "John", people[0].Name)
	assert.Equal(t, "Jim", people[1].Name)

	clk := clock.NewMock()
	clk.Set(date(2026, time.October, 18)) // a sunday

	assert.Equal(t, Week{
		time.Monday:   {"John"},
		time.Thursday: {"Jim"},
	}, PerWeek(people, clk.Now()))
}
