// Package entity provides the generic persisted collection store that
// backs the task, room, and resource collections. Mutations are
// write-through: every create, update, and delete persists the full
// collection synchronously. The in-memory copy is the source of truth;
// a persist failure is reported but never fatal.
package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/studydesk/studydesk/internal/core/logging"
)

// Record is any collection element with a unique key.
type Record interface {
	Key() string
}

// Placement controls where newly created records land in the collection.
type Placement int

const (
	// Append places new records at the end (tasks, rooms).
	Append Placement = iota
	// Prepend places new records at the front (resources show newest first).
	Prepend
)

// Options configures a Store.
type Options[R Record] struct {
	// Placement for created records. Defaults to Append.
	Placement Placement

	// NewID allocates ids for created records. Required for Create.
	NewID func() string

	// AssignID returns a copy of r with the given id set as its key.
	// Required for Create; also used by Update to pin the key so a
	// patch cannot reassign a record's identity.
	AssignID func(r R, id string) R

	// Defaults fills unset fields on a created record (e.g. a task's
	// status defaulting to pending). Optional.
	Defaults func(r R) R

	// OnPersistError is invoked when a write-through persist fails.
	// The store keeps serving the in-memory collection. Optional.
	OnPersistError func(error)
}

// Store is an in-memory ordered collection of records mirrored to an
// Adapter on every mutation. It is safe for concurrent use, though the
// intended deployment has a single mutator.
type Store[R Record] struct {
	mu         sync.RWMutex
	collection string
	records    []R
	adapter    Adapter
	opts       Options[R]
	log        zerolog.Logger
}

// NewStore builds a store for the named collection, loading its contents
// from the adapter. A missing or unparseable snapshot falls back to the
// caller-supplied seed collection.
func NewStore[R Record](ctx context.Context, collection string, adapter Adapter, seed []R, opts Options[R]) (*Store[R], error) {
	s := &Store[R]{
		collection: collection,
		adapter:    adapter,
		opts:       opts,
		log:        logging.Component("entity").With().Str("collection", collection).Logger(),
	}

	if err := s.seed(ctx, seed); err != nil {
		return nil, err
	}

	return s, nil
}

// seed loads the persisted snapshot, falling back to the seed collection
// when the snapshot is absent or cannot be decoded.
func (s *Store[R]) seed(ctx context.Context, seed []R) error {
	raw, err := s.adapter.Load(ctx, s.collection)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		return s.replaceAll(ctx, seed)
	case err != nil:
		s.log.Warn().Err(err).Msg("failed to load snapshot, using seed collection")
		return s.replaceAll(ctx, seed)
	}

	var records []R
	if err := json.Unmarshal(raw, &records); err != nil {
		s.log.Warn().Err(err).Msg("unparseable snapshot, using seed collection")
		return s.replaceAll(ctx, seed)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

// replaceAll swaps the full collection contents and persists them.
// Only used at store initialization.
func (s *Store[R]) replaceAll(ctx context.Context, records []R) error {
	s.mu.Lock()
	s.records = slices.Clone(records)
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// List returns the current collection contents in insertion order.
// The returned slice is a copy.
func (s *Store[R]) List() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Len returns the number of records.
func (s *Store[R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Store[R]) Get(id string) (R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.Key() == id {
			return r, nil
		}
	}

	var zero R
	return zero, fmt.Errorf("get %q: %w", id, ErrNotFound)
}

// Create assigns an id, applies collection defaults, places the record
// per the store's placement policy, and persists the collection.
func (s *Store[R]) Create(ctx context.Context, r R) (R, error) {
	var zero R
	if s.opts.NewID == nil || s.opts.AssignID == nil {
		return zero, errors.New("store is not configured for creation")
	}

	s.mu.Lock()
	r = s.opts.AssignID(r, s.opts.NewID())
	if s.opts.Defaults != nil {
		r = s.opts.Defaults(r)
	}

	for _, existing := range s.records {
		if existing.Key() == r.Key() {
			s.mu.Unlock()
			return zero, fmt.Errorf("create %q: %w", r.Key(), ErrDuplicate)
		}
	}

	if s.opts.Placement == Prepend {
		s.records = append([]R{r}, s.records...)
	} else {
		s.records = append(s.records, r)
	}
	s.mu.Unlock()

	s.persist(ctx)
	return r, nil
}

// Update applies patch to the record with the given id and persists the
// collection. The record's key is preserved regardless of what the
// patch returns. Returns ErrNotFound if the id is absent.
func (s *Store[R]) Update(ctx context.Context, id string, patch func(R) R) (R, error) {
	var zero R

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return zero, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}

	updated := patch(s.records[idx])
	if s.opts.AssignID != nil {
		updated = s.opts.AssignID(updated, id)
	}
	s.records[idx] = updated
	s.mu.Unlock()

	s.persist(ctx)
	return updated, nil
}

// Delete removes the record with the given id and persists the
// remainder. Returns ErrNotFound if the id is absent.
func (s *Store[R]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}

	s.records = append(s.records[:idx], s.records[idx+1:]...)
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

func (s *Store[R]) indexLocked(id string) int {
	for i, r := range s.records {
		if r.Key() == id {
			return i
		}
	}
	return -1
}

// persist writes the full collection through the adapter. Failures are
// logged and reported via OnPersistError; the in-memory collection
// remains authoritative for the rest of the session.
func (s *Store[R]) persist(ctx context.Context) {
	ctx = logging.WithCollection(ctx, s.collection)

	s.mu.RLock()
	raw, err := json.MarshalIndent(s.records, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		s.reportPersistError(ctx, fmt.Errorf("marshal %s: %w", s.collection, err))
		return
	}

	if err := s.adapter.Save(ctx, s.collection, raw); err != nil {
		s.reportPersistError(ctx, fmt.Errorf("save %s: %w", s.collection, err))
	}
}

func (s *Store[R]) reportPersistError(ctx context.Context, err error) {
	s.log.Error().Ctx(ctx).Err(err).Msg("write-through persist failed, serving from memory")
	if s.opts.OnPersistError != nil {
		s.opts.OnPersistError(err)
	}
}
