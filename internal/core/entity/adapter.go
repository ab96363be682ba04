package entity

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by an Adapter when a collection has never
// been persisted. Callers fall back to their seed collection.
var ErrNoSnapshot = errors.New("no snapshot for collection")

// Adapter reads and writes a named collection to durable local storage
// as an opaque serialized snapshot. Each store owns exactly one
// collection key; keys are never shared between stores.
type Adapter interface {
	// Load returns the last persisted snapshot for the collection, or
	// ErrNoSnapshot if none exists.
	Load(ctx context.Context, collection string) ([]byte, error)

	// Save replaces the persisted snapshot for the collection.
	Save(ctx context.Context, collection string, snapshot []byte) error
}
