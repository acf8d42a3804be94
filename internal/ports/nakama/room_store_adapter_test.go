package nakama

import (
	"context"
	"testing"

	"bridgeroom/internal/domain"
	"bridgeroom/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom(id string, version int64) domain.Room {
	return domain.Room{
		RoomID:  id,
		OwnerID: "owner",
		Seats:   domain.Seats{}.With(domain.South, "owner"),
		State:   domain.StateWaiting,
		Version: version,
	}
}

func TestNakamaRoomStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	store := NewNakamaRoomStore(storage)

	require.NoError(t, store.Create(ctx, testRoom("r1", 1)))
	assert.ErrorIs(t, store.Create(ctx, testRoom("r1", 1)), ports.ErrRoomExists)

	require.NotNil(t, storage.lastWrite)
	assert.Equal(t, roomCollection, storage.lastWrite.Collection)
	assert.Equal(t, "*", storage.lastWrite.Version)
	assert.Equal(t, runtime.STORAGE_PERMISSION_NO_READ, storage.lastWrite.PermissionRead)
	assert.Equal(t, runtime.STORAGE_PERMISSION_NO_WRITE, storage.lastWrite.PermissionWrite)
	assert.Empty(t, storage.lastWrite.UserID)

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, testRoom("r1", 1), got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrRoomNotFound)
}

func TestNakamaRoomStoreReplace(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	store := NewNakamaRoomStore(storage)
	require.NoError(t, store.Create(ctx, testRoom("r1", 1)))

	next := testRoom("r1", 2)
	next.RoomName = "renamed"
	require.NoError(t, store.Replace(ctx, next, 1))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, "renamed", got.RoomName)

	assert.ErrorIs(t, store.Replace(ctx, testRoom("r1", 2), 1), ports.ErrVersionConflict)
	assert.ErrorIs(t, store.Replace(ctx, testRoom("missing", 2), 1), ports.ErrRoomNotFound)
}

func TestNakamaRoomStoreReplaceLosesRace(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	store := NewNakamaRoomStore(storage)
	require.NoError(t, store.Create(ctx, testRoom("r1", 1)))

	// Another writer commits between our read and our write.
	storage.beforeWrite = func() {
		require.NoError(t, NewNakamaRoomStore(storage).Replace(ctx, testRoom("r1", 2), 1))
	}
	assert.ErrorIs(t, store.Replace(ctx, testRoom("r1", 2), 1), ports.ErrVersionConflict)
}

func TestNakamaRoomStoreFailures(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	store := NewNakamaRoomStore(storage)
	require.NoError(t, store.Create(ctx, testRoom("r1", 1)))

	storage.readErr = errStorageDown
	_, err := store.Get(ctx, "r1")
	assert.ErrorIs(t, err, errStorageDown)
	assert.NotErrorIs(t, err, ports.ErrRoomNotFound)

	storage.readErr = nil
	storage.writeErr = errStorageDown
	err = store.Replace(ctx, testRoom("r1", 2), 1)
	assert.ErrorIs(t, err, errStorageDown)
	assert.NotErrorIs(t, err, ports.ErrVersionConflict)
}
