package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer collects scheduled callbacks so tests can fire them manually.
type fakeTimer struct {
	scheduled []*fakeEntry
}

type fakeEntry struct {
	d        time.Duration
	fn       func()
	canceled bool
}

func (ft *fakeTimer) timerFunc() TimerFunc {
	return func(d time.Duration, fn func()) func() {
		e := &fakeEntry{d: d, fn: fn}
		ft.scheduled = append(ft.scheduled, e)
		return func() { e.canceled = true }
	}
}

// fire runs all callbacks scheduled for a duration <= elapsed that have
// not been canceled.
func (ft *fakeTimer) fire(elapsed time.Duration) {
	for _, e := range ft.scheduled {
		if !e.canceled && e.d <= elapsed {
			e.fn()
		}
	}
}

func TestQueue_Push_auto_dismisses_after_duration(t *testing.T) {
	ft := &fakeTimer{}
	q := NewQueue(WithTimer(ft.timerFunc()))

	id := q.Push("Task created successfully", KindSuccess, 3*time.Second)
	require.NotEmpty(t, id)
	require.Equal(t, 1, q.Len())

	ft.fire(3 * time.Second)
	assert.Equal(t, 0, q.Len(), "notification must be removed when its countdown elapses")

	// The timer firing again (or a late manual dismiss) is a no-op.
	ft.fire(3 * time.Second)
	q.Dismiss(id)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_manual_dismiss_cancels_timer(t *testing.T) {
	ft := &fakeTimer{}
	q := NewQueue(WithTimer(ft.timerFunc()))

	id := q.Push("saved", KindInfo, 3*time.Second)
	q.Dismiss(id)
	assert.Equal(t, 0, q.Len())

	require.Len(t, ft.scheduled, 1)
	assert.True(t, ft.scheduled[0].canceled, "manual dismissal must cancel the pending timer")
}

func TestQueue_zero_duration_never_auto_dismisses(t *testing.T) {
	ft := &fakeTimer{}
	q := NewQueue(WithTimer(ft.timerFunc()))

	id := q.Push("sticky", KindWarning, 0)
	assert.Empty(t, ft.scheduled, "no timer for duration 0")

	ft.fire(time.Hour)
	assert.Equal(t, 1, q.Len())

	q.Dismiss(id)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_duplicates_are_independent(t *testing.T) {
	ft := &fakeTimer{}
	q := NewQueue(WithTimer(ft.timerFunc()))

	// Identical messages get distinct ids; dismissing one leaves the
	// other's countdown untouched.
	a := q.Push("Code executed successfully", KindSuccess, 3*time.Second)
	b := q.Push("Code executed successfully", KindSuccess, 3*time.Second)
	require.NotEqual(t, a, b)
	require.Equal(t, 2, q.Len())

	q.Dismiss(a)
	assert.Equal(t, 1, q.Len())
	assert.False(t, ft.scheduled[1].canceled, "second timer must still be pending")

	active := q.Active()
	require.Len(t, active, 1)
	assert.Equal(t, b, active[0].ID)
}

func TestQueue_helpers_set_kind(t *testing.T) {
	q := NewQueue(WithTimer((&fakeTimer{}).timerFunc()))

	q.Successf("done %d", 1)
	q.Errorf("boom")
	q.Infof("fyi")
	q.Warnf("careful")

	active := q.Active()
	require.Len(t, active, 4)
	assert.Equal(t, KindSuccess, active[0].Kind)
	assert.Equal(t, "done 1", active[0].Message)
	assert.Equal(t, KindError, active[1].Kind)
	assert.Equal(t, KindInfo, active[2].Kind)
	assert.Equal(t, KindWarning, active[3].Kind)
}

func TestQueue_subscriber_sees_changes(t *testing.T) {
	ft := &fakeTimer{}
	q := NewQueue(WithTimer(ft.timerFunc()))

	var last []Notification
	calls := 0
	q.Subscribe(func(ns []Notification) {
		last = ns
		calls++
	})

	q.Push("one", KindInfo, 0)
	require.Equal(t, 1, calls)
	require.Len(t, last, 1)

	q.Dismiss(last[0].ID)
	assert.Equal(t, 2, calls)
	assert.Empty(t, last)
}

func TestQueue_Close_cancels_pending_timers(t *testing.T) {
	ft := &fakeTimer{}
	q := NewQueue(WithTimer(ft.timerFunc()))

	q.Push("a", KindInfo, time.Second)
	q.Push("b", KindInfo, time.Second)
	q.Close()

	require.Len(t, ft.scheduled, 2)
	for _, e := range ft.scheduled {
		assert.True(t, e.canceled)
	}

	// Closed queue ignores further pushes.
	assert.Empty(t, q.Push("late", KindInfo, 0))
	assert.Equal(t, 0, q.Len())
}
