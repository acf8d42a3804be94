package postgres

import (
	"context"
	"os"
	"testing"

	"bridgeroom/internal/domain"
	"bridgeroom/internal/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *RoomStore {
	t.Helper()
	dsn := os.Getenv("BRIDGE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BRIDGE_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Ping(ctx))
	require.NoError(t, Migrate(ctx, db))
	return NewRoomStore(db)
}

func TestRoomStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	room := domain.Room{
		RoomID:  uuid.NewString(),
		OwnerID: "owner",
		Seats:   domain.Seats{}.With(domain.South, "owner"),
		State:   domain.StateWaiting,
		Version: 1,
	}
	require.NoError(t, store.Create(ctx, room))
	assert.ErrorIs(t, store.Create(ctx, room), ports.ErrRoomExists)

	got, err := store.Get(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, room, got)

	next := got
	next.Seats = next.Seats.With(domain.North, "alice")
	next.Version = 2
	require.NoError(t, store.Replace(ctx, next, 1))
	assert.ErrorIs(t, store.Replace(ctx, next, 1), ports.ErrVersionConflict)

	got, err = store.Get(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, "alice", got.Seats.At(domain.North))
}

func TestRoomStoreMissing(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ports.ErrRoomNotFound)

	ghost := domain.Room{RoomID: uuid.NewString(), State: domain.StateWaiting, Version: 2}
	assert.ErrorIs(t, store.Replace(ctx, ghost, 1), ports.ErrRoomNotFound)
}
