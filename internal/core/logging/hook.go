package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts room_id and collection from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if roomID := GetRoomID(ctx); roomID != "" {
		e.Str("room_id", roomID)
	}

	if collection := GetCollection(ctx); collection != "" {
		e.Str("collection", collection)
	}
}
