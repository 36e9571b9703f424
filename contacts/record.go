package contacts

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Record is one contact: a name, its phones in insertion order and an
// optional birthday. Phones and birthday change only through its methods.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

func NewRecord(name string) *Record {
	return &Record{name: NewName(name)}
}

func (r *Record) Name() string { return r.name.Value() }

// Phones returns a copy of the record's phones.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

func (r *Record) AddPhone(number string) error {
	p, err := NewPhone(number)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// AddBirthday sets the birthday, replacing any previous one.
func (r *Record) AddBirthday(date string) error {
	b, err := NewBirthday(date)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

func (r *Record) FindPhone(number string) (Phone, bool) {
	i := r.phoneIndex(number)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// RemovePhone drops the first phone equal to number, if any.
func (r *Record) RemovePhone(number string) {
	if i := r.phoneIndex(number); i >= 0 {
		r.phones = slices.Delete(r.phones, i, i+1)
	}
}

// EditPhone replaces the first phone equal to oldNumber with newNumber.
// It fails with [ErrPhoneNotFound] when oldNumber is absent.
func (r *Record) EditPhone(oldNumber, newNumber string) error {
	i := r.phoneIndex(oldNumber)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, oldNumber)
	}
	return r.phones[i].Set(newNumber)
}

// DaysToBirthday returns the number of days from the date of now to the next
// birthday, zero when it is today. It reports false when no birthday is set.
func (r *Record) DaysToBirthday(now time.Time) (int, bool) {
	if r.birthday == nil {
		return 0, false
	}
	return DaysBetween(now, NextBirthday(r.birthday.Value(), now)), true
}

func (r *Record) String() string {
	numbers := make([]string, len(r.phones))
	for i, p := range r.phones {
		numbers[i] = p.String()
	}
	birthday := "no"
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s",
		r.name, strings.Join(numbers, "; "), birthday)
}

func (r *Record) phoneIndex(number string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool { return p.Value() == number })
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := &Record{name: r.name, phones: slices.Clone(r.phones)}
	if r.birthday != nil {
		b := *r.birthday
		c.birthday = &b
	}
	return c
}
