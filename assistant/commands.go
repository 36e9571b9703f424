package assistant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/oaiiae/addressbook/birthdays"
	"github.com/oaiiae/addressbook/contacts"
)

type command = func(args []string) (string, error)

var (
	errExit                = errors.New("exit")
	errNeedName            = errors.New("missing name")
	errNeedNameAndPhone    = errors.New("missing name or phone")
	errNeedNameAndBirthday = errors.New("missing name or birthday")
	errNeedQuery           = errors.New("missing query")
	errPageSize            = errors.New("invalid page size")
	errContactNotFound     = errors.New("contact not found")
)

func (b *Bot) routes() map[string]command {
	return map[string]command{
		"hello":     b.hello,
		"good bye":  b.exit,
		"close":     b.exit,
		"exit":      b.exit,
		"show all":  b.showAll,
		"add":       withArgs(2, errNeedNameAndPhone, b.add),
		"change":    withArgs(3, errNeedNameAndPhone, b.change), //nolint: mnd // name old new
		"phone":     withArgs(1, errNeedName, b.phone),
		"delete":    withArgs(1, errNeedName, b.delete),
		"birthday":  withArgs(2, errNeedNameAndBirthday, b.birthday),
		"days":      withArgs(1, errNeedName, b.days),
		"search":    withArgs(1, errNeedQuery, b.search),
		"birthdays": b.birthdays,
		"pages":     b.pages,
	}
}

// withArgs fails with err when fewer than n arguments are given.
func withArgs(n int, err error, cmd command) command {
	return func(args []string) (string, error) {
		if len(args) < n {
			return "", err
		}
		return cmd(args)
	}
}

func (b *Bot) find(name string) (*contacts.Record, error) {
	r, ok := b.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errContactNotFound, name)
	}
	return r, nil
}

func (b *Bot) hello([]string) (string, error) { return "How can I help you?", nil }

func (b *Bot) exit([]string) (string, error) { return "", errExit }

func (b *Bot) showAll([]string) (string, error) {
	if b.book.Len() == 0 {
		return "No contacts", nil
	}
	var s strings.Builder
	s.WriteString("Contacts:")
	for _, r := range b.book.All() {
		s.WriteString("\n")
		s.WriteString(r.String())
	}
	return s.String(), nil
}

// add creates the contact when it does not exist yet.
func (b *Bot) add(args []string) (string, error) {
	name, number := args[0], args[1]
	r, ok := b.book.Find(name)
	if !ok {
		r = contacts.NewRecord(name)
	}
	if err := r.AddPhone(number); err != nil {
		return "", err
	}
	b.book.AddRecord(r)
	return fmt.Sprintf("contact %s with number %s added", name, number), nil
}

func (b *Bot) change(args []string) (string, error) {
	name, oldNumber, newNumber := args[0], args[1], args[2]
	r, err := b.find(name)
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(oldNumber, newNumber); err != nil {
		return "", err
	}
	return fmt.Sprintf("contact %s changed number %s to %s", name, oldNumber, newNumber), nil
}

func (b *Bot) phone(args []string) (string, error) {
	r, err := b.find(args[0])
	if err != nil {
		return "", err
	}
	phones := r.Phones()
	if len(phones) == 0 {
		return fmt.Sprintf("contact %s has no number", r.Name()), nil
	}
	numbers := make([]string, len(phones))
	for i, p := range phones {
		numbers[i] = p.String()
	}
	return fmt.Sprintf("contact %s has number %s", r.Name(), strings.Join(numbers, "; ")), nil
}

func (b *Bot) delete(args []string) (string, error) {
	if _, err := b.find(args[0]); err != nil {
		return "", err
	}
	b.book.Delete(args[0])
	return fmt.Sprintf("contact %s deleted", args[0]), nil
}

func (b *Bot) birthday(args []string) (string, error) {
	r, err := b.find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("contact %s has birthday %s", r.Name(), args[1]), nil
}

func (b *Bot) days(args []string) (string, error) {
	r, err := b.find(args[0])
	if err != nil {
		return "", err
	}
	days, ok := r.DaysToBirthday(b.clock.Now())
	switch {
	case !ok:
		return fmt.Sprintf("contact %s has no birthday", r.Name()), nil
	case days == 0:
		return fmt.Sprintf("contact %s has birthday today", r.Name()), nil
	default:
		return fmt.Sprintf("%d days to %s's birthday", days, r.Name()), nil
	}
}

func (b *Bot) search(args []string) (string, error) {
	found := b.book.Search(strings.Join(args, " "))
	if found.Len() == 0 {
		return "No matching records found.", nil
	}
	var s strings.Builder
	s.WriteString("Search results:")
	for _, r := range found.All() {
		s.WriteString("\n")
		s.WriteString(r.String())
	}
	return s.String(), nil
}

func (b *Bot) birthdays([]string) (string, error) {
	week := birthdays.PerWeek(birthdays.FromBook(b.book), b.clock.Now())
	if len(week) == 0 {
		return "No birthdays this week", nil
	}
	return strings.TrimSuffix(week.String(), "\n"), nil
}

func (b *Bot) pages(args []string) (string, error) {
	size := contacts.DefaultPageSize
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return "", fmt.Errorf("%w: %q", errPageSize, args[0])
		}
		size = n
	}
	if b.book.Len() == 0 {
		return "No contacts", nil
	}
	var s strings.Builder
	for page := range b.book.Iterator(size) {
		s.WriteString(page)
	}
	return strings.TrimSuffix(s.String(), "\n"), nil
}
