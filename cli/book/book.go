// Package book opens the address book snapshot used by the commands and
// keeps it saved while the server runs.
package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/oaiiae/addressbook/contacts"
	"github.com/oaiiae/addressbook/datastores"
)

type SnapshotOptions struct {
	Book     string        `short:"b" doc:"address book snapshot file"              default:"address_book.bin"`
	Autosave time.Duration `          doc:"save the address book this often, 0 disables" default:"1m"`
}

// Open loads the snapshot, starting empty when there is none yet.
func Open(ctx context.Context, options *SnapshotOptions, logger *slog.Logger) (*datastores.ContactsBook, error) {
	store := datastores.NewContactsBook(contacts.NewAddressBook(contacts.WithLogger(logger)), options.Book)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	logger.Info("address book opened", "path", options.Book, "records", store.Len())
	return store, nil
}

// Autosave saves store on every tick of clk until ctx is done, then saves
// a last time.
func Autosave(
	ctx context.Context,
	options *SnapshotOptions,
	store *datastores.ContactsBook,
	clk clock.Clock,
	logger *slog.Logger,
) error {
	if options.Autosave > 0 {
		ticker := clk.Ticker(options.Autosave)
		defer ticker.Stop()
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
				if err := store.Save(ctx); err != nil {
					logger.Warn("could not save address book", "path", options.Book, "err", err)
				}
			}
		}
	} else {
		<-ctx.Done()
	}

	if err := store.Save(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	logger.Info("address book saved", "path", options.Book, "records", store.Len())
	return nil
}
