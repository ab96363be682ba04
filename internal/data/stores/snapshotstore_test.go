package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydesk/studydesk/internal/core/entity"
	"github.com/studydesk/studydesk/internal/data/db"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()

	database, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return NewSnapshotStore(database)
}

func TestSnapshotStore_missing_collection(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "tasks")
	assert.ErrorIs(t, err, entity.ErrNoSnapshot)
}

func TestSnapshotStore_round_trip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	payload := []byte(`[{"id":"t-1"}]`)
	require.NoError(t, s.Save(ctx, "tasks", payload))

	got, err := s.Load(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Collections are independent rows.
	_, err = s.Load(ctx, "rooms")
	assert.ErrorIs(t, err, entity.ErrNoSnapshot)
}

func TestSnapshotStore_upsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tasks", []byte(`[1]`)))
	require.NoError(t, s.Save(ctx, "tasks", []byte(`[1,2]`)))

	got, err := s.Load(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)
}

func TestSnapshotStore_reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	database, err := db.Open(dir)
	require.NoError(t, err)
	s := NewSnapshotStore(database)
	require.NoError(t, s.Save(ctx, "tasks", []byte(`[1]`)))
	require.NoError(t, database.Close())

	database, err = db.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	got, err := NewSnapshotStore(database).Load(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)
}
