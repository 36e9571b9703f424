package contacts

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the book as a YAML list of records.
func (b *AddressBook) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint: mnd // conventional
	if err := enc.Encode(b.entries()); err != nil {
		return err
	}
	return enc.Close()
}

// ReadYAML adds or replaces the records listed in r. Every value is
// validated before the book is touched.
func (b *AddressBook) ReadYAML(r io.Reader) error {
	var es []entry
	if err := yaml.NewDecoder(r).Decode(&es); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	records, keys, err := recordsFrom(es)
	if err != nil {
		return err
	}
	for _, k := range keys {
		b.AddRecord(records[k])
	}
	return nil
}
