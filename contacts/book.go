package contacts

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultPageSize is used by [AddressBook.Iterator] for non-positive sizes.
const DefaultPageSize = 2

const pageSeparator = "--------------------------------------------------\n"

// AddressBook owns records keyed by name. Iteration follows the order in
// which names were first added. It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	keys    []string
	logger  *slog.Logger
}

type Option func(*AddressBook)

// WithLogger sets the logger used to report recoverable conditions.
func WithLogger(logger *slog.Logger) Option {
	return func(b *AddressBook) { b.logger = logger }
}

func NewAddressBook(opts ...Option) *AddressBook {
	b := &AddressBook{
		records: make(map[string]*Record),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddRecord stores r under its name, replacing any record already there.
// A replaced name keeps its iteration position.
func (b *AddressBook) AddRecord(r *Record) {
	name := r.Name()
	if _, ok := b.records[name]; !ok {
		b.keys = append(b.keys, name)
	}
	b.records[name] = r
}

func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes name from the book. Absent names are ignored.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	b.keys = slices.DeleteFunc(b.keys, func(k string) bool { return k == name })
}

func (b *AddressBook) Len() int { return len(b.keys) }

func (b *AddressBook) Names() []string { return slices.Clone(b.keys) }

// All yields every name and record in iteration order.
func (b *AddressBook) All() iter.Seq2[string, *Record] {
	return func(yield func(string, *Record) bool) {
		for _, k := range b.keys {
			if !yield(k, b.records[k]) {
				return
			}
		}
	}
}

// Page returns up to length records starting at offset, in iteration order.
func (b *AddressBook) Page(offset, length int) []*Record {
	offset = max(offset, 0)
	end := min(offset+max(length, 0), len(b.keys))
	if offset >= end {
		return nil
	}
	page := make([]*Record, 0, end-offset)
	for _, k := range b.keys[offset:end] {
		page = append(page, b.records[k])
	}
	return page
}

// Search returns a book holding every record whose name contains query,
// ignoring case, or which has a phone containing query verbatim.
func (b *AddressBook) Search(query string) *AddressBook {
	fold := cases.Fold()
	folded := fold.String(query)

	found := NewAddressBook(WithLogger(b.logger))
	for name, r := range b.All() {
		if strings.Contains(fold.String(name), folded) || r.hasPhoneContaining(query) {
			found.AddRecord(r)
		}
	}
	return found
}

// Iterator yields text pages of up to pageSize records. Each page starts
// with a separator line; records are numbered from zero across all pages.
// A book of k records yields ceil(k/pageSize) pages and an empty book none.
func (b *AddressBook) Iterator(pageSize int) iter.Seq[string] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return func(yield func(string) bool) {
		var page strings.Builder
		id := 0
		for _, r := range b.All() {
			if id%pageSize == 0 {
				page.Reset()
				page.WriteString(pageSeparator)
			}
			fmt.Fprintf(&page, "%d: %s\n", id, r)
			id++
			if id%pageSize == 0 && !yield(page.String()) {
				return
			}
		}
		if id%pageSize != 0 {
			yield(page.String())
		}
	}
}

func (r *Record) hasPhoneContaining(query string) bool {
	return slices.ContainsFunc(r.phones, func(p Phone) bool { return strings.Contains(p.Value(), query) })
}
