package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is a durable key/value table. Values are opaque bytes; the typed
// Store layers JSON documents on top.
type Repository interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, in Entry) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, filter EntryListFilter) ([]Entry, error)
}
