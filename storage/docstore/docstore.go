// Package docstore defines the document-database collaborator contract: a
// schemaless store of JSON documents grouped in collections, queried with
// equality filters only. Query results carry NO ordering guarantee; callers
// sort client-side.
package docstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Record is a stored document along with its key.
type Record struct {
	ID   string
	Data []byte // JSON
}

// Filter is an equality predicate on a top-level document field. Values are
// compared by their JSON string representation.
type Filter struct {
	Field string
	Value interface{}
}

func Where(field string, value interface{}) Filter {
	return Filter{Field: field, Value: value}
}

type Store interface {
	// Add stores doc under a store-assigned key and returns it.
	Add(ctx context.Context, collection string, doc interface{}) (string, error)
	// Set creates or fully replaces the document at id.
	Set(ctx context.Context, collection, id string, doc interface{}) error
	// Get returns ErrNotFound for an absent id.
	Get(ctx context.Context, collection, id string) (Record, error)
	// Update merges fields into the existing document; ErrNotFound if absent.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// Delete removes the document; deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Query returns all documents matching every filter, in no particular order.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Record, error)

	Close() error
}
