// Package room defines the collaboration room record.
//
// A room record is the persisted directory entry for a room; the live
// state of an open room (code buffer, chat, roster) lives in the
// session package and is never persisted.
package room

import (
	"github.com/studydesk/studydesk/pkg/randid"
)

// Collection is the persistence key for the room store.
const Collection = "rooms"

// idTokenLength is the random token length in generated room ids.
const idTokenLength = 8

// Room is a collaboration room directory entry. Rooms are created once
// and never updated; no delete path exists in the current design.
type Room struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ParticipantCount int    `json:"participants"`
	CreatedAt        string `json:"created_at"`
}

// Key returns the room's unique id.
func (r Room) Key() string { return r.ID }

// NewID generates a shareable room identifier of the form
// "room-xxxxxxxx". Random tokens replace the wall-clock-derived ids the
// app originally used, so two rooms created in the same instant cannot
// collide.
func NewID() string {
	return "room-" + randid.Generate(idTokenLength)
}

// Defaults fills unset fields on a new room. Every room starts with the
// creator as its only participant.
func Defaults(r Room) Room {
	if r.ParticipantCount < 1 {
		r.ParticipantCount = 1
	}
	return r
}
