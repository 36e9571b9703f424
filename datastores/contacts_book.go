package datastores

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/oaiiae/addressbook/birthdays"
	"github.com/oaiiae/addressbook/contacts"
)

// ContactsBook implements [ContactsStore] over an address book persisted
// to a snapshot file. Records handed out are copies.
type ContactsBook struct {
	mu   sync.Mutex
	book *contacts.AddressBook
	path string
}

var _ ContactsStore = (*ContactsBook)(nil)

// NewContactsBook serves book, saving to and loading from path.
// An empty path disables persistence.
func NewContactsBook(book *contacts.AddressBook, path string) *ContactsBook {
	return &ContactsBook{book: book, path: path}
}

func (s *ContactsBook) List(_ context.Context, offset, length int) ([]*contacts.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clones(s.book.Page(offset, length)), nil
}

func (s *ContactsBook) Get(_ context.Context, name string) (*contacts.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrObjectNotFound, name)
	}
	return r.Clone(), nil
}

func (s *ContactsBook) Put(_ context.Context, r *contacts.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book.AddRecord(r.Clone())
	return nil
}

func (s *ContactsBook) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book.Delete(name)
	return nil
}

// Update applies do to a copy of the named record and stores the copy
// only when do succeeds.
func (s *ContactsBook) Update(_ context.Context, name string, do func(*contacts.Record) error) (*contacts.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrObjectNotFound, name)
	}
	c := r.Clone()
	if err := do(c); err != nil {
		return nil, err
	}
	s.book.AddRecord(c)
	return c.Clone(), nil
}

func (s *ContactsBook) Search(_ context.Context, query string) ([]*contacts.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []*contacts.Record
	for _, r := range s.book.Search(query).All() {
		found = append(found, r.Clone())
	}
	return found, nil
}

func (s *ContactsBook) Pages(_ context.Context, size int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Collect(s.book.Iterator(size)), nil
}

func (s *ContactsBook) People(_ context.Context) ([]birthdays.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return birthdays.FromBook(s.book), nil
}

func (s *ContactsBook) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Len()
}

// Save writes the snapshot file.
func (s *ContactsBook) Save(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.SaveToFile(s.path)
}

// Load replaces the records with the snapshot file, if there is one.
func (s *ContactsBook) Load(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.LoadFromFile(s.path)
}

func clones(rs []*contacts.Record) []*contacts.Record {
	out := make([]*contacts.Record, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}
