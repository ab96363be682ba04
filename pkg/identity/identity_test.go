package identity

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_Next_unique(t *testing.T) {
	a := NewAllocator()

	seen := make(map[string]bool)
	for range 1000 {
		id := a.Next()
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestAllocator_Next_monotonic_with_frozen_clock(t *testing.T) {
	// Even when the clock never advances, ids must remain unique and
	// sort in issue order.
	frozen := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	a := NewAllocatorWithClock(func() time.Time { return frozen })

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = a.Next()
	}

	assert.True(t, sort.StringsAreSorted(ids), "ids issued under a frozen clock must still sort in issue order")
}
