package entity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Tag  string `json:"tag,omitempty"`
}

func (n note) Key() string { return n.ID }

// memAdapter is an in-memory Adapter for tests.
type memAdapter struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	failSave  bool
	saves     int
}

func newMemAdapter() *memAdapter {
	return &memAdapter{snapshots: map[string][]byte{}}
}

func (m *memAdapter) Load(_ context.Context, collection string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.snapshots[collection]
	if !ok {
		return nil, ErrNoSnapshot
	}
	return raw, nil
}

func (m *memAdapter) Save(_ context.Context, collection string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.failSave {
		return errors.New("disk full")
	}
	m.snapshots[collection] = snapshot
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func noteOptions() Options[note] {
	return Options[note]{
		NewID:    sequentialIDs(),
		AssignID: func(n note, id string) note { n.ID = id; return n },
		Defaults: func(n note) note {
			if n.Tag == "" {
				n.Tag = "default"
			}
			return n
		},
	}
}

func newNoteStore(t *testing.T, adapter Adapter, seed []note, opts Options[note]) *Store[note] {
	t.Helper()
	s, err := NewStore(context.Background(), "notes", adapter, seed, opts)
	require.NoError(t, err, "NewStore")
	return s
}

func TestStore_seeds_when_snapshot_missing(t *testing.T) {
	adapter := newMemAdapter()
	seed := []note{{ID: "a", Text: "first"}, {ID: "b", Text: "second"}}

	s := newNoteStore(t, adapter, seed, noteOptions())

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)

	// Seeding persists the seed so a reload sees the same contents.
	reloaded := newNoteStore(t, adapter, nil, noteOptions())
	assert.Equal(t, got, reloaded.List())
}

func TestStore_seeds_when_snapshot_unparseable(t *testing.T) {
	adapter := newMemAdapter()
	adapter.snapshots["notes"] = []byte("{not json")

	s := newNoteStore(t, adapter, []note{{ID: "a", Text: "seeded"}}, noteOptions())

	got := s.List()
	require.Len(t, got, 1)
	assert.Equal(t, "seeded", got[0].Text)
}

func TestStore_Create(t *testing.T) {
	t.Run("assigns id and defaults", func(t *testing.T) {
		adapter := newMemAdapter()
		s := newNoteStore(t, adapter, nil, noteOptions())

		created, err := s.Create(context.Background(), note{Text: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "id-001", created.ID)
		assert.Equal(t, "default", created.Tag, "unset fields take collection defaults")

		got := s.List()
		require.Len(t, got, 1)
		assert.Equal(t, created, got[0])
	})

	t.Run("appends by default", func(t *testing.T) {
		s := newNoteStore(t, newMemAdapter(), []note{{ID: "seed", Text: "old"}}, noteOptions())

		_, err := s.Create(context.Background(), note{Text: "new"})
		require.NoError(t, err)

		got := s.List()
		require.Len(t, got, 2)
		assert.Equal(t, "old", got[0].Text)
		assert.Equal(t, "new", got[1].Text)
	})

	t.Run("prepends when configured", func(t *testing.T) {
		opts := noteOptions()
		opts.Placement = Prepend
		s := newNoteStore(t, newMemAdapter(), []note{{ID: "seed", Text: "old"}}, opts)

		_, err := s.Create(context.Background(), note{Text: "new"})
		require.NoError(t, err)

		got := s.List()
		require.Len(t, got, 2)
		assert.Equal(t, "new", got[0].Text)
	})

	t.Run("ids unique among existing", func(t *testing.T) {
		s := newNoteStore(t, newMemAdapter(), nil, noteOptions())

		seen := map[string]bool{}
		for range 10 {
			created, err := s.Create(context.Background(), note{Text: "x"})
			require.NoError(t, err)
			assert.False(t, seen[created.ID], "duplicate id %q", created.ID)
			seen[created.ID] = true
		}
	})

	t.Run("rejects colliding id", func(t *testing.T) {
		opts := noteOptions()
		opts.NewID = func() string { return "same" }
		s := newNoteStore(t, newMemAdapter(), nil, opts)

		_, err := s.Create(context.Background(), note{Text: "one"})
		require.NoError(t, err)

		_, err = s.Create(context.Background(), note{Text: "two"})
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.Equal(t, 1, s.Len())
	})
}

func TestStore_Update(t *testing.T) {
	t.Run("patches matching record only", func(t *testing.T) {
		seed := []note{{ID: "a", Text: "alpha", Tag: "x"}, {ID: "b", Text: "beta", Tag: "y"}}
		s := newNoteStore(t, newMemAdapter(), seed, noteOptions())

		updated, err := s.Update(context.Background(), "a", func(n note) note {
			n.Text = "changed"
			return n
		})
		require.NoError(t, err)
		assert.Equal(t, "changed", updated.Text)
		assert.Equal(t, "x", updated.Tag, "unpatched fields untouched")

		got := s.List()
		assert.Equal(t, "beta", got[1].Text, "other records untouched")
	})

	t.Run("preserves record key", func(t *testing.T) {
		s := newNoteStore(t, newMemAdapter(), []note{{ID: "a", Text: "alpha"}}, noteOptions())

		updated, err := s.Update(context.Background(), "a", func(n note) note {
			n.ID = "hijacked"
			return n
		})
		require.NoError(t, err)
		assert.Equal(t, "a", updated.ID, "a patch cannot reassign a record's identity")
	})

	t.Run("not found", func(t *testing.T) {
		s := newNoteStore(t, newMemAdapter(), nil, noteOptions())

		_, err := s.Update(context.Background(), "missing", func(n note) note { return n })
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_Delete(t *testing.T) {
	t.Run("removes record", func(t *testing.T) {
		seed := []note{{ID: "a"}, {ID: "b"}, {ID: "c"}}
		s := newNoteStore(t, newMemAdapter(), seed, noteOptions())

		require.NoError(t, s.Delete(context.Background(), "b"))

		got := s.List()
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	})

	t.Run("not found", func(t *testing.T) {
		s := newNoteStore(t, newMemAdapter(), nil, noteOptions())
		assert.ErrorIs(t, s.Delete(context.Background(), "missing"), ErrNotFound)
	})
}

func TestStore_round_trip_through_adapter(t *testing.T) {
	adapter := newMemAdapter()
	s := newNoteStore(t, adapter, nil, noteOptions())

	ctx := context.Background()
	for _, text := range []string{"one", "two", "three"} {
		_, err := s.Create(ctx, note{Text: text})
		require.NoError(t, err)
	}

	reloaded := newNoteStore(t, adapter, nil, noteOptions())
	assert.Equal(t, s.List(), reloaded.List(), "reload must yield a field-for-field, order-preserved copy")
}

func TestStore_persist_failure_keeps_memory_authoritative(t *testing.T) {
	adapter := newMemAdapter()
	var reported []error
	opts := noteOptions()
	opts.OnPersistError = func(err error) { reported = append(reported, err) }

	s := newNoteStore(t, adapter, nil, opts)

	adapter.failSave = true
	created, err := s.Create(context.Background(), note{Text: "survives"})
	require.NoError(t, err, "persist failure must not fail the mutation")
	require.Len(t, reported, 1)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "survives", got.Text)
}

func TestStore_write_through_persists_every_mutation(t *testing.T) {
	adapter := newMemAdapter()
	s := newNoteStore(t, adapter, nil, noteOptions())
	base := adapter.saves

	ctx := context.Background()
	created, err := s.Create(ctx, note{Text: "a"})
	require.NoError(t, err)
	_, err = s.Update(ctx, created.ID, func(n note) note { n.Text = "b"; return n })
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, created.ID))

	assert.Equal(t, base+3, adapter.saves, "each mutation persists independently")
}

func TestStore_List_returns_copy(t *testing.T) {
	s := newNoteStore(t, newMemAdapter(), []note{{ID: "a", Text: "alpha"}}, noteOptions())

	got := s.List()
	got[0].Text = "mutated"

	assert.Equal(t, "alpha", s.List()[0].Text)
}
