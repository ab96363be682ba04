// Package identity provides monotonic, collision-resistant record identifiers.
//
// Identifiers are ULIDs: time-ordered, so records created later sort after
// records created earlier, but unique even when the wall clock does not
// advance between calls.
package identity

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Allocator issues unique, lexicographically sortable identifiers.
// It is safe for concurrent use.
type Allocator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewAllocator creates an allocator backed by the OS entropy source.
func NewAllocator() *Allocator {
	return &Allocator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewAllocatorWithClock creates an allocator using the given clock.
// Used in tests to produce deterministic timestamp components.
func NewAllocatorWithClock(now func() time.Time) *Allocator {
	return &Allocator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     now,
	}
}

// Next returns the next identifier.
func (a *Allocator) Next() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(a.now()), a.entropy).String()
}
