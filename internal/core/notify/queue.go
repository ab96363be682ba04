package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/studydesk/studydesk/pkg/identity"
)

// TimerFunc schedules fn to run once after d and returns a cancel
// function. Cancel is a no-op if the timer already fired.
type TimerFunc func(d time.Duration, fn func()) (cancel func())

func afterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Subscriber is invoked with a snapshot of the active notifications
// whenever the queue changes.
type Subscriber func([]Notification)

type entry struct {
	n      Notification
	cancel func()
}

// Queue is an in-memory ordered sequence of active notifications, each
// with an independent auto-expiry timer. Dismissal is idempotent:
// dismissing an id that is no longer active is a no-op. The Queue is
// safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	active []entry
	subs   []Subscriber
	closed bool

	timer           TimerFunc
	now             func() time.Time
	ids             *identity.Allocator
	defaultDuration time.Duration
}

// Option configures a Queue.
type Option func(*Queue)

// WithTimer replaces the timer factory. Tests use this to control when
// expiry callbacks fire.
func WithTimer(t TimerFunc) Option {
	return func(q *Queue) { q.timer = t }
}

// WithClock replaces the queue's clock.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// WithDefaultDuration overrides the countdown applied by the Pushf
// helpers and by Push when called with a negative duration.
func WithDefaultDuration(d time.Duration) Option {
	return func(q *Queue) { q.defaultDuration = d }
}

// NewQueue creates an empty notification queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		timer:           afterFunc,
		now:             time.Now,
		ids:             identity.NewAllocator(),
		defaultDuration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Subscribe registers a callback invoked on every queue change.
func (q *Queue) Subscribe(fn Subscriber) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.subs = append(q.subs, fn)
}

// Push enqueues a notification and starts its expiry countdown.
// A duration of 0 disables the countdown (manual dismissal only); a
// negative duration selects the queue's default. Returns the assigned
// id, or empty string if the queue is closed.
func (q *Queue) Push(message string, kind Kind, duration time.Duration) string {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}

	if duration < 0 {
		duration = q.defaultDuration
	}

	n := Notification{
		ID:        q.ids.Next(),
		Kind:      kind,
		Message:   message,
		CreatedAt: q.now(),
		Duration:  duration,
	}

	e := entry{n: n}
	if duration > 0 {
		id := n.ID
		e.cancel = q.timer(duration, func() { q.Dismiss(id) })
	}
	q.active = append(q.active, e)
	q.mu.Unlock()

	q.notifySubscribers()
	return n.ID
}

// Successf enqueues a success notification with the default countdown.
func (q *Queue) Successf(format string, args ...any) string {
	return q.Push(fmt.Sprintf(format, args...), KindSuccess, -1)
}

// Errorf enqueues an error notification with the default countdown.
func (q *Queue) Errorf(format string, args ...any) string {
	return q.Push(fmt.Sprintf(format, args...), KindError, -1)
}

// Infof enqueues an info notification with the default countdown.
func (q *Queue) Infof(format string, args ...any) string {
	return q.Push(fmt.Sprintf(format, args...), KindInfo, -1)
}

// Warnf enqueues a warning notification with the default countdown.
func (q *Queue) Warnf(format string, args ...any) string {
	return q.Push(fmt.Sprintf(format, args...), KindWarning, -1)
}

// Dismiss removes the notification with the given id and cancels its
// timer. Dismissing an id that is not active is a no-op; dismissing one
// notification never affects another's countdown.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	idx := -1
	for i, e := range q.active {
		if e.n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return
	}

	if cancel := q.active[idx].cancel; cancel != nil {
		cancel()
	}
	q.active = append(q.active[:idx], q.active[idx+1:]...)
	q.mu.Unlock()

	q.notifySubscribers()
}

// Active returns a snapshot of the active notifications, oldest first.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// Len returns the number of active notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.active)
}

// Close cancels all pending timers and drops the active notifications.
// Further pushes are no-ops. Called when the owning view is torn down
// so late timer callbacks cannot touch destroyed state.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	for _, e := range q.active {
		if e.cancel != nil {
			e.cancel()
		}
	}
	q.active = nil
	q.subs = nil
	q.mu.Unlock()
}

func (q *Queue) snapshotLocked() []Notification {
	out := make([]Notification, len(q.active))
	for i, e := range q.active {
		out[i] = e.n
	}
	return out
}

func (q *Queue) notifySubscribers() {
	q.mu.Lock()
	subs := make([]Subscriber, len(q.subs))
	copy(subs, q.subs)
	snapshot := q.snapshotLocked()
	q.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
