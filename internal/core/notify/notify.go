// Package notify defines user-facing notifications and the ephemeral
// queue that carries them. Notifications are never persisted; they exist
// only for the lifetime of the queue that holds them.
package notify

import "time"

// Kind represents the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// DefaultDuration is the auto-dismiss countdown applied when the caller
// does not specify one.
const DefaultDuration = 3 * time.Second

// Notification is a single user-facing status message.
// A Duration of 0 means the notification never auto-dismisses.
type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}
