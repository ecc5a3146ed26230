package db

import (
	"context"
	"errors"
	"time"
)

// ErrStaleWrite is returned when a document was changed after the caller loaded it
var ErrStaleWrite = errors.New("stale write: document has been modified")

// ErrNotFound is returned when no document has the id
var ErrNotFound = errors.New("document not found")

// Document is a versioned, opaque JSON blob
type Document struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Version int64     `json:"version"`
	Data    []byte    `json:"data"`
	Updated time.Time `json:"updated"`
}

// Store persists documents with optimistic concurrency
type Store interface {
	// Save writes data and returns the new version
	// expectedVersion is the version the caller loaded, or 0 to create the document
	// ErrStaleWrite is returned if the stored version does not match
	Save(ctx context.Context, id, kind string, data []byte, expectedVersion int64) (int64, error)

	// Load returns the document or ErrNotFound
	Load(ctx context.Context, id string) (*Document, error)

	// List returns every document of a kind, ordered by id
	List(ctx context.Context, kind string) ([]*Document, error)
}
