package datastores

import (
	"context"
	"errors"

	"github.com/oaiiae/addressbook/birthdays"
	"github.com/oaiiae/addressbook/contacts"
)

type ContactsStore interface {
	List(ctx context.Context, offset, length int) ([]*contacts.Record, error)
	Get(ctx context.Context, name string) (*contacts.Record, error)
	Put(ctx context.Context, r *contacts.Record) error
	Delete(ctx context.Context, name string) error
	Update(ctx context.Context, name string, do func(*contacts.Record) error) (*contacts.Record, error)
	Search(ctx context.Context, query string) ([]*contacts.Record, error)
	Pages(ctx context.Context, size int) ([]string, error)
	People(ctx context.Context) ([]birthdays.Person, error)
	Len() int
}

var ErrObjectNotFound = errors.New("store: object not found")
