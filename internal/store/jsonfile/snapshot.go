// Package jsonfile persists collection snapshots as one JSON file per
// collection under a data directory.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/studydesk/studydesk/internal/core/entity"
)

// SnapshotStore implements entity.Adapter on top of flat JSON files.
// Each collection maps to <dataDir>/<collection>.json.
type SnapshotStore struct {
	dataDir string
	mu      sync.RWMutex
}

// NewSnapshotStore creates a snapshot store rooted at dataDir.
func NewSnapshotStore(dataDir string) *SnapshotStore {
	return &SnapshotStore{dataDir: dataDir}
}

// Load returns the raw snapshot for a collection. Returns
// entity.ErrNoSnapshot when the collection has never been saved.
func (s *SnapshotStore) Load(ctx context.Context, collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrNoSnapshot
		}
		return nil, fmt.Errorf("read snapshot %q: %w", collection, err)
	}

	if len(data) == 0 {
		return nil, entity.ErrNoSnapshot
	}

	return data, nil
}

// Save writes the raw snapshot for a collection atomically.
func (s *SnapshotStore) Save(ctx context.Context, collection string, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := s.path(collection)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, snapshot, 0o644); err != nil {
		return fmt.Errorf("write snapshot %q: %w", collection, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit snapshot %q: %w", collection, err)
	}

	return nil
}

func (s *SnapshotStore) path(collection string) string {
	return filepath.Join(s.dataDir, collection+".json")
}
