// Package assistant is a line oriented bot answering commands about the
// contacts of an address book.
package assistant

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/oaiiae/addressbook/contacts"
)

const Prompt = "enter command: "

// Bot dispatches a command line to its handler. It is not safe for
// concurrent use, like the book it works on.
type Bot struct {
	book     *contacts.AddressBook
	clock    clock.Clock
	logger   *slog.Logger
	commands map[string]command
}

type Option func(*Bot)

func WithClock(clk clock.Clock) Option { return func(b *Bot) { b.clock = clk } }

func WithLogger(logger *slog.Logger) Option { return func(b *Bot) { b.logger = logger } }

func New(book *contacts.AddressBook, opts ...Option) *Bot {
	b := &Bot{
		book:   book,
		clock:  clock.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.commands = b.routes()
	return b
}

// Handle runs one command line and returns the reply. done reports that
// the user asked to leave.
func (b *Bot) Handle(line string) (reply string, done bool) {
	cmd, args, ok := b.parse(line)
	if !ok {
		return "Unknown command", false
	}
	reply, err := cmd(args)
	if errors.Is(err, errExit) {
		return "Good bye!", true
	}
	if err != nil {
		return b.replyTo(err), false
	}
	return reply, false
}

// Run answers the lines read from in until an exit command, the end of in
// or the cancellation of ctx.
func (b *Bot) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, Prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}

		reply, done := b.Handle(scanner.Text())
		if _, err := fmt.Fprintln(out, reply); err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// parse tries the first two words as a command before the first one alone.
func (b *Bot) parse(line string) (command, []string, bool) {
	fields := strings.Fields(line)
	if len(fields) >= 2 { //nolint: mnd // two-word commands
		if cmd, ok := b.commands[strings.ToLower(fields[0]+" "+fields[1])]; ok {
			return cmd, fields[2:], true
		}
	}
	if len(fields) >= 1 {
		if cmd, ok := b.commands[strings.ToLower(fields[0])]; ok {
			return cmd, fields[1:], true
		}
	}
	return nil, nil, false
}

func (b *Bot) replyTo(err error) string {
	switch {
	case errors.Is(err, errNeedNameAndPhone):
		return "Give me name and phone please"
	case errors.Is(err, errNeedNameAndBirthday):
		return "Give me name and birthday please"
	case errors.Is(err, errNeedName):
		return "Give me name"
	case errors.Is(err, errNeedQuery):
		return "Give me something to search for"
	case errors.Is(err, errPageSize):
		return "Give me a page size"
	case errors.Is(err, errContactNotFound):
		return "Contact not found"
	case errors.Is(err, contacts.ErrValidation),
		errors.Is(err, contacts.ErrInvalidBirthday),
		errors.Is(err, contacts.ErrPhoneNotFound):
		return err.Error()
	default:
		b.logger.Error("command failed", "err", err)
		return "Something went wrong"
	}
}
