// Package stores contains SQLite-backed store implementations.
package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/studydesk/studydesk/internal/core/entity"
	"github.com/studydesk/studydesk/internal/data/db"
)

// SnapshotStore implements entity.Adapter using SQLite. Each collection
// maps to one row in the snapshots table.
type SnapshotStore struct {
	db  *db.DB
	now func() time.Time
}

var _ entity.Adapter = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new SQLite-backed snapshot store.
func NewSnapshotStore(db *db.DB) *SnapshotStore {
	return &SnapshotStore{db: db, now: time.Now}
}

// Load returns the raw snapshot for a collection. Returns
// entity.ErrNoSnapshot when the collection has never been saved.
func (s *SnapshotStore) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE collection = ?`, collection,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", collection, err)
	}

	return data, nil
}

// Save creates or replaces the snapshot for a collection.
func (s *SnapshotStore) Save(ctx context.Context, collection string, snapshot []byte) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO snapshots (collection, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (collection) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		collection, snapshot, s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", collection, err)
	}

	return nil
}
