// Package birthdays groups upcoming birthdays by the weekday they are
// greeted on.
package birthdays

import (
	"iter"
	"strings"
	"time"

	"github.com/oaiiae/addressbook/contacts"
)

// Window is how far ahead of today birthdays are collected, inclusive.
const Window = 7 * 24 * time.Hour

type Person struct {
	Name     string
	Birthday time.Time
}

// Week maps a working day to the names greeted on it.
type Week map[time.Weekday][]string

var workdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// PerWeek collects the people whose next birthday falls between today and
// a week from today, both included. Weekend birthdays are greeted on Monday.
func PerWeek(people []Person, today time.Time) Week {
	week := Week{}
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(Window)
	for _, p := range people {
		next := contacts.NextBirthday(p.Birthday, today)
		if next.After(end) {
			continue
		}
		day := next.Weekday()
		if day == time.Saturday || day == time.Sunday {
			day = time.Monday
		}
		week[day] = append(week[day], p.Name)
	}
	return week
}

// FromBook lists the people of book who have a birthday, in book order.
func FromBook(book *contacts.AddressBook) []Person {
	var people []Person
	for name, r := range book.All() {
		if b, ok := r.Birthday(); ok {
			people = append(people, Person{Name: name, Birthday: b.Value()})
		}
	}
	return people
}

// Days yields the days that have names, Monday first.
func (w Week) Days() iter.Seq2[time.Weekday, []string] {
	return func(yield func(time.Weekday, []string) bool) {
		for _, day := range workdays {
			if names, ok := w[day]; ok && !yield(day, names) {
				return
			}
		}
	}
}

func (w Week) String() string {
	var b strings.Builder
	for day, names := range w.Days() {
		b.WriteString(day.String())
		b.WriteString(": ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}
