package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bridgeroom/internal/domain"
	"bridgeroom/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// storageEngine is the slice of runtime.NakamaModule the room store needs.
type storageEngine interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaRoomStore keeps rooms as system-owned storage objects.
//
// Nakama object versions are opaque hashes, so the adapter reads the current object, checks the
// room version it carries, and writes back with the object version it read. A concurrent writer
// changes the object version and the write is rejected with runtime.ErrStorageRejectedVersion.
type NakamaRoomStore struct {
	nk storageEngine
}

// NewNakamaRoomStore creates a new room store adapter.
func NewNakamaRoomStore(nk storageEngine) *NakamaRoomStore {
	return &NakamaRoomStore{nk: nk}
}

// Create writes the room only if no object exists under its id.
func (s *NakamaRoomStore) Create(ctx context.Context, room domain.Room) error {
	err := s.write(ctx, room, "*")
	if errors.Is(err, runtime.ErrStorageRejectedVersion) {
		return ports.ErrRoomExists
	}
	return err
}

// Get loads a room.
func (s *NakamaRoomStore) Get(ctx context.Context, roomID string) (domain.Room, error) {
	room, _, err := s.read(ctx, roomID)
	return room, err
}

// Replace writes the room if the stored room version equals expectedVersion.
func (s *NakamaRoomStore) Replace(ctx context.Context, room domain.Room, expectedVersion int64) error {
	current, objectVersion, err := s.read(ctx, room.RoomID)
	if err != nil {
		return err
	}
	if current.Version != expectedVersion {
		return ports.ErrVersionConflict
	}
	err = s.write(ctx, room, objectVersion)
	if errors.Is(err, runtime.ErrStorageRejectedVersion) {
		return ports.ErrVersionConflict
	}
	return err
}

func (s *NakamaRoomStore) read(ctx context.Context, roomID string) (domain.Room, string, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: roomCollection,
		Key:        roomID,
	}})
	if err != nil {
		return domain.Room{}, "", fmt.Errorf("failed to read room %s: %w", roomID, err)
	}
	if len(objects) == 0 {
		return domain.Room{}, "", ports.ErrRoomNotFound
	}

	var room domain.Room
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &room); err != nil {
		return domain.Room{}, "", fmt.Errorf("failed to unmarshal room %s: %w", roomID, err)
	}
	return room, objects[0].GetVersion(), nil
}

func (s *NakamaRoomStore) write(ctx context.Context, room domain.Room, objectVersion string) error {
	value, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}
	_, err = s.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      roomCollection,
		Key:             room.RoomID,
		Value:           string(value),
		Version:         objectVersion,
		PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return err
		}
		return fmt.Errorf("failed to write room %s: %w", room.RoomID, err)
	}
	return nil
}

var _ ports.RoomStore = (*NakamaRoomStore)(nil)
