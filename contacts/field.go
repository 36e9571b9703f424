// Package contacts holds the address book: validated fields, records keyed
// by name and the book that owns them, with snapshot persistence.
package contacts

import (
	"errors"
	"fmt"
	"time"
)

// BirthdayLayout is the only accepted textual form of a birthday (DD-MM-YYYY).
const BirthdayLayout = "02-01-2006"

const phoneLength = 10

var (
	ErrValidation      = errors.New("invalid phone number")
	ErrInvalidBirthday = errors.New("invalid birthday format")
	ErrPhoneNotFound   = errors.New("phone not found")
)

// Field is a named holder of a single value.
// Specialised fields embed it and validate in both constructor and setter.
type Field[T any] struct {
	value T
}

func (f Field[T]) Value() T { return f.value }

func (f Field[T]) String() string { return fmt.Sprint(f.value) }

// Name identifies a [Record]. It accepts any text.
type Name struct{ Field[string] }

func NewName(raw string) Name { return Name{Field[string]{raw}} }

// Phone holds exactly ten decimal digits.
type Phone struct{ Field[string] }

func NewPhone(raw string) (Phone, error) {
	var p Phone
	if err := p.Set(raw); err != nil {
		return Phone{}, err
	}
	return p, nil
}

// Set replaces the number, leaving it untouched when raw is invalid.
func (p *Phone) Set(raw string) error {
	v, err := ValidatePhone(raw)
	if err != nil {
		return err
	}
	p.value = v
	return nil
}

// ValidatePhone returns raw unchanged if it is ten decimal digits.
// No punctuation is stripped.
func ValidatePhone(raw string) (string, error) {
	if len(raw) != phoneLength {
		return "", fmt.Errorf("%w: %q", ErrValidation, raw)
	}
	for i := range len(raw) {
		if raw[i] < '0' || raw[i] > '9' {
			return "", fmt.Errorf("%w: %q", ErrValidation, raw)
		}
	}
	return raw, nil
}

// Birthday is a calendar date stored at midnight UTC.
type Birthday struct{ Field[time.Time] }

func NewBirthday(raw string) (Birthday, error) {
	var b Birthday
	if err := b.Set(raw); err != nil {
		return Birthday{}, err
	}
	return b, nil
}

func (b *Birthday) Set(raw string) error {
	v, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	b.value = v
	return nil
}

func (b Birthday) String() string { return b.value.Format(BirthdayLayout) }

// ParseBirthday parses raw as DD-MM-YYYY. Day and month must be two digits
// and in range, the year four digits.
func ParseBirthday(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(BirthdayLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, raw)
	}
	return t, nil
}

// NextBirthday returns the first occurrence of birthday's month and day on or
// after the calendar date of now, at midnight UTC. A 29 February birthday
// lands on 1 March in non-leap years.
func NextBirthday(birthday, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

// DaysBetween counts whole calendar days from the date of a to the date of b.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24) //nolint: mnd // hours per day in UTC
}
