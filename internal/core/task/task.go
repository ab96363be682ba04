// Package task defines the task domain model.
package task

import (
	"github.com/studydesk/studydesk/internal/core/query"
)

// Priority classifies how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Collection is the persistence key for the task store.
const Collection = "tasks"

// Task is a single user-managed task record.
// DueDate is an optional calendar date in YYYY-MM-DD form.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	DueDate     string   `json:"due_date,omitempty"`
}

// Key returns the task's unique id.
func (t Task) Key() string { return t.ID }

// Toggled returns the status a toggle action moves this task to:
// completed tasks go back to pending, everything else completes.
func (t Task) Toggled() Status {
	if t.Status == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Defaults fills unset fields on a new task.
func Defaults(t Task) Task {
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return t
}

// ValidPriority reports whether p is one of the closed priority values.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the closed status values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Filter field names accepted by QuerySpec.
const (
	FilterStatus   = "status"
	FilterPriority = "priority"
)

// QuerySpec exposes tasks to the query engine: free text matches title
// and description; status and priority filter by exact value.
func QuerySpec() query.Spec[Task] {
	return query.Spec[Task]{
		Text: func(t Task) []string {
			return []string{t.Title, t.Description}
		},
		Fields: map[string]func(Task) string{
			FilterStatus:   func(t Task) string { return string(t.Status) },
			FilterPriority: func(t Task) string { return string(t.Priority) },
		},
	}
}
