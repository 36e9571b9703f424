package book

import (
	"io"
	"log/slog"

	"github.com/oaiiae/addressbook/contacts"
)

// Load reads the snapshot into a plain address book for the commands that
// work on it directly.
func Load(options *SnapshotOptions, logger *slog.Logger) (*contacts.AddressBook, error) {
	book := contacts.NewAddressBook(contacts.WithLogger(logger))
	if err := book.LoadFromFile(options.Book); err != nil {
		return nil, err
	}
	return book, nil
}

// Import merges the YAML records of r into the snapshot and returns the
// number of records it then holds.
func Import(options *SnapshotOptions, r io.Reader, logger *slog.Logger) (int, error) {
	book, err := Load(options, logger)
	if err != nil {
		return 0, err
	}
	if err := book.ReadYAML(r); err != nil {
		return 0, err
	}
	if err := book.SaveToFile(options.Book); err != nil {
		return 0, err
	}
	return book.Len(), nil
}

// Export writes the snapshot's records to w as YAML.
func Export(options *SnapshotOptions, w io.Writer, logger *slog.Logger) error {
	book, err := Load(options, logger)
	if err != nil {
		return err
	}
	return book.WriteYAML(w)
}
