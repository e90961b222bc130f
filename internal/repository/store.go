// Package repository handles all interactions with the document store.
//
// Every entity is a schema-less document in a named collection. A
// DocumentStore driver (postgres, firestore or memory) persists documents;
// Collection gives the services a typed view of one collection.
package repository

import (
	"context"
	"errors"
	"maps"
	"time"
)

// ErrNotFound is returned when an id does not resolve in its collection.
// Every driver returns it from Get, Update and Delete.
var ErrNotFound = errors.New("document not found")

// Order is the order List returns documents in.
type Order int

const (
	// OrderInserted lists oldest first.
	OrderInserted Order = iota
	// OrderNewestFirst lists most recent first.
	OrderNewestFirst
)

// Reserved keys. Drivers own them; client data never sets them.
const (
	fieldID        = "id"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// Document is one stored record.
type Document struct {
	ID        string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentStore persists documents. Ids and timestamps are assigned by the
// store. Concurrent writes to the same id are last-write-wins.
type DocumentStore interface {
	Insert(ctx context.Context, collection string, data map[string]any) (*Document, error)
	List(ctx context.Context, collection string, order Order) ([]Document, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	// Update merges fields into the document and refreshes UpdatedAt.
	Update(ctx context.Context, collection, id string, fields map[string]any) (*Document, error)
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// sanitize copies data without the reserved keys.
func sanitize(data map[string]any) map[string]any {
	out := maps.Clone(data)
	if out == nil {
		out = map[string]any{}
	}
	delete(out, fieldID)
	delete(out, fieldCreatedAt)
	delete(out, fieldUpdatedAt)
	return out
}
