// Package database defines the record store used by the animals API and the
// backends that implement it.
package database

import (
	"context"
	"errors"
	"time"

	"animal-finder-api-server/internal/models"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Operator is a predicate comparison understood by every backend.
type Operator string

const (
	OpEqual Operator = "=="
	OpIn    Operator = "in"
)

// Predicate restricts a query to documents whose Field satisfies Op against Value.
// For OpIn, Value is a []string.
type Predicate struct {
	Field string
	Op    Operator
	Value interface{}
}

// Cursor is the position of a document in the createdAt-descending order.
// Ties on CreatedAt are broken by ID, also descending.
type Cursor struct {
	ID        string
	CreatedAt time.Time
}

// Query is a bounded scan ordered by createdAt descending.
type Query struct {
	Predicates []Predicate
	// Limit caps the number of returned documents. Zero means no limit.
	Limit int
	// After, when set, starts the scan strictly after that position.
	After *Cursor
}

// Update replaces the listed top-level fields of one document.
type Update struct {
	ID     string
	Fields map[string]interface{}
}

// Batch is a set of writes committed atomically. A reference to a missing
// document fails the whole batch.
type Batch struct {
	Updates []Update
	Deletes []string
}

// Store is a remote ordered document collection.
type Store interface {
	// Get returns the document with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (models.Animal, error)
	// Add inserts a new document, stamping id and createdAt, and returns the id.
	Add(ctx context.Context, fields models.Animal) (string, error)
	// MergeUpdate sets the given fields on an existing document.
	MergeUpdate(ctx context.Context, id string, fields models.Animal) error
	Query(ctx context.Context, q Query) ([]models.Animal, error)
	// ScanAll returns every document, newest first.
	ScanAll(ctx context.Context) ([]models.Animal, error)
	// Count returns the number of documents using the backend's aggregate.
	Count(ctx context.Context) (int64, error)
	Commit(ctx context.Context, b Batch) error
	Close(ctx context.Context) error
}
