// Package stats aggregates dashboard counters from collection snapshots.
// Collection is a pure read; it holds no state of its own.
package stats

import (
	"time"

	"github.com/studydesk/studydesk/internal/core/resource"
	"github.com/studydesk/studydesk/internal/core/room"
	"github.com/studydesk/studydesk/internal/core/task"
)

// recentWindow is how far back an upload counts as "recent".
const recentWindow = 7 * 24 * time.Hour

// TaskStats summarizes the task collection.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// RoomStats summarizes the room collection. Active rooms are those with
// more than one participant.
type RoomStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// ResourceStats summarizes the resource collection.
type ResourceStats struct {
	Total  int `json:"total"`
	Recent int `json:"recent"`
}

// Summary is the full dashboard rollup.
type Summary struct {
	Tasks     TaskStats     `json:"tasks"`
	Rooms     RoomStats     `json:"rooms"`
	Resources ResourceStats `json:"resources"`
}

// Collect computes a summary over the given snapshots as of now.
func Collect(tasks []task.Task, rooms []room.Room, resources []resource.Resource, now time.Time) Summary {
	var s Summary

	s.Tasks.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case task.StatusPending:
			s.Tasks.Pending++
		case task.StatusInProgress:
			s.Tasks.InProgress++
		case task.StatusCompleted:
			s.Tasks.Completed++
		}
	}

	s.Rooms.Total = len(rooms)
	for _, r := range rooms {
		if r.ParticipantCount > 1 {
			s.Rooms.Active++
		}
	}

	s.Resources.Total = len(resources)
	cutoff := now.Add(-recentWindow)
	for _, r := range resources {
		uploaded, err := time.Parse("2006-01-02", r.UploadedAt)
		if err != nil {
			continue
		}
		if !uploaded.Before(cutoff) {
			s.Resources.Recent++
		}
	}

	return s
}
