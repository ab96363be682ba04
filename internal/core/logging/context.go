package logging

import "context"

type contextKey string

const (
	roomIDKey     contextKey = "room_id"
	collectionKey contextKey = "collection"
)

// WithRoomID adds a room ID to the context.
func WithRoomID(ctx context.Context, roomID string) context.Context {
	return context.WithValue(ctx, roomIDKey, roomID)
}

// WithCollection adds a collection name to the context.
func WithCollection(ctx context.Context, collection string) context.Context {
	return context.WithValue(ctx, collectionKey, collection)
}

// GetRoomID retrieves the room ID from the context.
// Returns empty string if not present.
func GetRoomID(ctx context.Context) string {
	if id, ok := ctx.Value(roomIDKey).(string); ok {
		return id
	}
	return ""
}

// GetCollection retrieves the collection name from the context.
// Returns empty string if not present.
func GetCollection(ctx context.Context) string {
	if c, ok := ctx.Value(collectionKey).(string); ok {
		return c
	}
	return ""
}
