package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/libruary/libruary/internal/database/books"
	"github.com/libruary/libruary/internal/entities"
)

// LookupClient fetches volume metadata for an ISBN from an external catalog.
type LookupClient interface {
	LookupISBN(ctx context.Context, isbn string) (*Volume, error)
}

// BookStore is the slice of the books repository the resolver needs.
type BookStore interface {
	GetByISBN(isbn string) (*entities.Book, error)
	Create(book *entities.Book) error
}

// Resolver looks up books by ISBN, hitting the local store first and falling
// back to the external catalog, persisting what it finds.
type Resolver struct {
	client LookupClient
	store  BookStore
}

// NewResolver creates a resolver over the given catalog client and store.
func NewResolver(client LookupClient, store BookStore) *Resolver {
	return &Resolver{
		client: client,
		store:  store,
	}
}

// ResolveByISBN returns the stored book for an ISBN, fetching and persisting
// it from the catalog on a local miss. Two concurrent resolutions of the same
// absent ISBN race to insert; the loser re-reads the winner's row instead of
// failing, so exactly one book per ISBN ever exists.
func (r *Resolver) ResolveByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	normalized := NormalizeISBN(isbn)
	if normalized == "" {
		return nil, ErrInvalidISBN
	}

	book, err := r.store.GetByISBN(normalized)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, books.ErrNotFound) {
		return nil, fmt.Errorf("look up book: %w", err)
	}

	vol, err := r.client.LookupISBN(ctx, normalized)
	if err != nil {
		return nil, err
	}

	book = &entities.Book{
		ISBN:          normalized,
		Title:         vol.Title,
		Author:        vol.Author,
		Language:      vol.Language,
		Image:         vol.Image,
		Pages:         vol.Pages,
		Publisher:     vol.Publisher,
		PublishedDate: vol.PublishedDate,
	}

	if err := r.store.Create(book); err != nil {
		if errors.Is(err, books.ErrDuplicateISBN) {
			return r.store.GetByISBN(normalized)
		}
		return nil, fmt.Errorf("persist book: %w", err)
	}

	return book, nil
}
