package ports

import (
	"context"
	"errors"

	"bridgeroom/internal/domain"
)

var (
	// ErrRoomNotFound is returned when no room exists for the id.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomExists is returned by Create when the id is already taken.
	ErrRoomExists = errors.New("room already exists")
	// ErrVersionConflict is returned by Replace when the stored version differs from the expected one.
	ErrVersionConflict = errors.New("room version conflict")
)

// RoomStore is the durable repository of room aggregates.
// Implementations must apply Replace atomically: the write succeeds only if the stored version
// still equals expectedVersion.
type RoomStore interface {
	// Create persists a new room. Returns ErrRoomExists if the id is taken.
	Create(ctx context.Context, room domain.Room) error

	// Get loads a room. Returns ErrRoomNotFound if absent.
	Get(ctx context.Context, roomID string) (domain.Room, error)

	// Replace overwrites the room if its stored version equals expectedVersion.
	// Returns ErrVersionConflict on a version mismatch and ErrRoomNotFound if absent.
	Replace(ctx context.Context, room domain.Room, expectedVersion int64) error
}
