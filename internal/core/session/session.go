// Package session implements the in-memory state of an open room view:
// a code buffer, an append-only execution log driven by a simulated run
// step, a chat transcript, a presence roster, and a local mute flag.
//
// A Session exists only while its room view is open and is discarded on
// close; nothing here is persisted. The run step is a scripted
// simulation of execution: it suspends for a fixed latency, appends a
// fixed pair of log lines, and always succeeds. The same non-reentrancy
// and teardown contract would hold if a real execution backend replaced
// the timer.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/studydesk/studydesk/internal/core/notify"
	"github.com/studydesk/studydesk/pkg/identity"
)

// State is the run state of the session.
type State string

const (
	// StateIdle means no run is in progress.
	StateIdle State = "idle"
	// StateRunning means a run has been triggered and its completion is
	// pending. Run requests in this state are no-ops, never queued.
	StateRunning State = "running"
)

// Execution log lines. The sentinel line is what ClearLog resets to.
const (
	LogSentinel    = "$ Ready to run code..."
	logLineRunning = "$ Running code..."
	logLineDone    = "$ Code executed successfully"
)

// DefaultRunLatency is the simulated execution time for a run.
const DefaultRunLatency = 500 * time.Millisecond

// DefaultLocalUser is the display name attached to locally sent chat
// messages when none is configured.
const DefaultLocalUser = "You"

// ChatMessage is one entry in a session's chat transcript.
type ChatMessage struct {
	ID     string
	Author string
	Text   string
	SentAt time.Time
}

// Participant is one entry in a session's presence roster.
type Participant struct {
	ID             string
	DisplayName    string
	AvatarInitials string
	Online         bool
}

// Session is the live state of one open room. All methods are safe for
// concurrent use, though the intended deployment has a single mutator
// (the local user's UI loop).
type Session struct {
	mu sync.Mutex

	roomID    string
	localUser string
	buffer    string
	logLines  []string
	chat      []ChatMessage
	roster    []Participant
	muted     bool
	state     State
	closed    bool

	cancelRun func()

	notifier   *notify.Queue
	timer      notify.TimerFunc
	runLatency time.Duration
	now        func() time.Time
	ids        *identity.Allocator
	onChange   func()
}

// Option configures a Session.
type Option func(*Session)

// WithLocalUser sets the author name for locally sent chat messages.
func WithLocalUser(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.localUser = name
		}
	}
}

// WithBuffer sets the initial code buffer contents.
func WithBuffer(text string) Option {
	return func(s *Session) { s.buffer = text }
}

// WithRoster replaces the seeded presence roster.
func WithRoster(roster []Participant) Option {
	return func(s *Session) { s.roster = roster }
}

// WithChat replaces the seeded chat transcript.
func WithChat(chat []ChatMessage) Option {
	return func(s *Session) { s.chat = chat }
}

// WithRunLatency overrides the simulated execution time.
func WithRunLatency(d time.Duration) Option {
	return func(s *Session) { s.runLatency = d }
}

// WithTimer replaces the timer factory. Tests use this to fire run
// completions deterministically.
func WithTimer(t notify.TimerFunc) Option {
	return func(s *Session) { s.timer = t }
}

// WithClock replaces the session's clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// OnChange registers a callback invoked after every state change, so a
// UI can re-render. The callback runs outside the session lock.
func OnChange(fn func()) Option {
	return func(s *Session) { s.onChange = fn }
}

// New opens a session for the given room. Exactly one session should
// exist per open room view; Close discards it.
func New(roomID string, notifier *notify.Queue, opts ...Option) *Session {
	s := &Session{
		roomID:     roomID,
		localUser:  DefaultLocalUser,
		buffer:     SeedBuffer,
		logLines:   []string{LogSentinel},
		chat:       SeedChat(),
		roster:     SeedRoster(),
		state:      StateIdle,
		notifier:   notifier,
		timer:      defaultTimer,
		runLatency: DefaultRunLatency,
		now:        time.Now,
		ids:        identity.NewAllocator(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func defaultTimer(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// RoomID returns the id of the room this session belongs to.
func (s *Session) RoomID() string {
	return s.roomID
}

// State returns the current run state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Running reports whether a run is in progress.
func (s *Session) Running() bool {
	return s.State() == StateRunning
}

// Buffer returns the code buffer contents.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// EditBuffer replaces the code buffer. Valid in any state: editing
// while a run is in progress neither cancels nor restarts the run.
func (s *Session) EditBuffer(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.buffer = text
	s.mu.Unlock()

	s.fireChange()
}

// LineCount returns the number of lines in the code buffer.
func (s *Session) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Count(s.buffer, "\n") + 1
}

// CharCount returns the number of non-whitespace characters in the
// code buffer.
func (s *Session) CharCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.buffer {
		if !isSpace(r) {
			count++
		}
	}
	return count
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Run triggers a simulated execution. Valid only from Idle: a call
// while Running is a no-op and returns false. After the configured
// latency the session appends the run output to the execution log,
// returns to Idle, and enqueues one success notification.
func (s *Session) Run() bool {
	s.mu.Lock()
	if s.closed || s.state == StateRunning {
		s.mu.Unlock()
		return false
	}
	s.state = StateRunning
	s.cancelRun = s.timer(s.runLatency, s.completeRun)
	s.mu.Unlock()

	s.fireChange()
	return true
}

func (s *Session) completeRun() {
	s.mu.Lock()
	if s.closed || s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.logLines = append(s.logLines, logLineRunning, logLineDone)
	s.state = StateIdle
	s.cancelRun = nil
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Successf("Code executed successfully")
	}
	s.fireChange()
}

// Log returns a copy of the execution log lines.
func (s *Session) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.logLines))
	copy(out, s.logLines)
	return out
}

// ClearLog resets the execution log to its sentinel line. Valid in any
// state and does not affect a run in progress.
func (s *Session) ClearLog() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.logLines = []string{LogSentinel}
	s.mu.Unlock()

	s.fireChange()
}

// SendMessage appends a chat message authored by the local user. A
// message that is empty after trimming is a no-op: nothing is appended
// and no error is surfaced. Returns the appended message and true, or
// the zero message and false for the no-op case.
func (s *Session) SendMessage(text string) (ChatMessage, bool) {
	if strings.TrimSpace(text) == "" {
		return ChatMessage{}, false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ChatMessage{}, false
	}
	msg := ChatMessage{
		ID:     s.ids.Next(),
		Author: s.localUser,
		Text:   text,
		SentAt: s.now(),
	}
	s.chat = append(s.chat, msg)
	s.mu.Unlock()

	s.fireChange()
	return msg, true
}

// Chat returns a copy of the chat transcript, oldest first.
func (s *Session) Chat() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// Roster returns a copy of the presence roster.
func (s *Session) Roster() []Participant {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Participant, len(s.roster))
	copy(out, s.roster)
	return out
}

// OnlineCount returns the number of roster participants currently online.
func (s *Session) OnlineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, p := range s.roster {
		if p.Online {
			count++
		}
	}
	return count
}

// Muted returns the local mute flag.
func (s *Session) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// ToggleMute flips the local mute flag and enqueues an informational
// notification reflecting the new state. Purely local: no other
// participant's state is affected.
func (s *Session) ToggleMute() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.muted
	}
	s.muted = !s.muted
	muted := s.muted
	s.mu.Unlock()

	if s.notifier != nil {
		if muted {
			s.notifier.Infof("Microphone muted")
		} else {
			s.notifier.Infof("Microphone unmuted")
		}
	}
	s.fireChange()
	return muted
}

// Close discards the session. A pending run timer is cancelled, and a
// completion callback that has already been scheduled becomes a no-op,
// so tearing down the view mid-run never touches destroyed state.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancelRun != nil {
		s.cancelRun()
		s.cancelRun = nil
	}
	s.mu.Unlock()
}

func (s *Session) fireChange() {
	if s.onChange != nil {
		s.onChange()
	}
}
