package ports

import (
	"context"

	"bridgeroom/internal/domain"
)

// EventKind identifies a room event for client dispatch.
type EventKind string

// Event is a committed room change with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means every seated human
}

// RoomNotifier fans committed room events out to connected players.
type RoomNotifier interface {
	// NotifyRoom delivers events for the committed room. Delivery is best effort: failures are
	// logged by the adapter and never reported to the caller.
	NotifyRoom(ctx context.Context, room domain.Room, events []Event)
}
