package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_RoomID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRoomID(ctx), "background context has no room id")

	ctx = WithRoomID(ctx, "room-abc123")
	assert.Equal(t, "room-abc123", GetRoomID(ctx))
}

func TestContext_Collection(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetCollection(ctx))

	ctx = WithCollection(ctx, "tasks")
	assert.Equal(t, "tasks", GetCollection(ctx))

	// Values are independent.
	assert.Empty(t, GetRoomID(ctx))
}
