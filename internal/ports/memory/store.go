// Package memory provides an in-process RoomStore for tests and local runs.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"bridgeroom/internal/domain"
	"bridgeroom/internal/ports"
)

type record struct {
	version int64
	data    []byte
}

// RoomStore keeps serialized rooms in a map guarded by a mutex.
// Rooms are stored as JSON so callers never share memory with the stored copy.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]record
}

// NewRoomStore returns an empty store.
func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]record)}
}

// Create stores a new room.
func (s *RoomStore) Create(ctx context.Context, room domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.RoomID]; ok {
		return ports.ErrRoomExists
	}
	s.rooms[room.RoomID] = record{version: room.Version, data: data}
	return nil
}

// Get loads a room.
func (s *RoomStore) Get(ctx context.Context, roomID string) (domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return domain.Room{}, err
	}
	s.mu.Lock()
	rec, ok := s.rooms[roomID]
	s.mu.Unlock()
	if !ok {
		return domain.Room{}, ports.ErrRoomNotFound
	}

	var room domain.Room
	if err := json.Unmarshal(rec.data, &room); err != nil {
		return domain.Room{}, fmt.Errorf("failed to unmarshal room %s: %w", roomID, err)
	}
	return room, nil
}

// Replace swaps in the room if the stored version equals expectedVersion.
func (s *RoomStore) Replace(ctx context.Context, room domain.Room, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rooms[room.RoomID]
	if !ok {
		return ports.ErrRoomNotFound
	}
	if rec.version != expectedVersion {
		return ports.ErrVersionConflict
	}
	s.rooms[room.RoomID] = record{version: room.Version, data: data}
	return nil
}

var _ ports.RoomStore = (*RoomStore)(nil)
