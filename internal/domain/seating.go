package domain

import (
	"fmt"
	"math/rand"
)

// RoomOptions carries the informational fields supplied at creation.
type RoomOptions struct {
	RoomName  string
	IsPrivate bool
}

// NewRoom creates a waiting room with the owner seated uniformly at random.
func NewRoom(roomID, ownerID string, opts RoomOptions, rng *rand.Rand) (Room, error) {
	if roomID == "" {
		return Room{}, fmt.Errorf("%w: room id is required", ErrValidation)
	}
	if ownerID == "" {
		return Room{}, fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	if IsRobot(ownerID) {
		return Room{}, fmt.Errorf("%w: owner id %q is reserved", ErrValidation, ownerID)
	}
	seat := SeatOrder[rng.Intn(len(SeatOrder))]
	return Room{
		RoomID:    roomID,
		OwnerID:   ownerID,
		RoomName:  opts.RoomName,
		IsPrivate: opts.IsPrivate,
		Seats:     Seats{}.With(seat, ownerID),
		State:     StateWaiting,
	}, nil
}

// JoinRoom seats userID at the requested seat, or at a random empty seat when requested is "".
func JoinRoom(room Room, userID, requested string, rng *rand.Rand) (Room, error) {
	if userID == "" {
		return Room{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if IsRobot(userID) {
		return Room{}, fmt.Errorf("%w: user id %q is reserved", ErrValidation, userID)
	}
	if _, seated := room.Seats.SeatOf(userID); seated {
		return Room{}, ErrAlreadySeated
	}
	if room.State != StateWaiting {
		return Room{}, fmt.Errorf("%w: cannot join a %s room", ErrWrongState, room.State)
	}

	var seat Seat
	if requested != "" {
		parsed, err := ParseSeat(requested)
		if err != nil {
			return Room{}, err
		}
		if room.Seats.At(parsed) != "" {
			return Room{}, fmt.Errorf("%w: %s", ErrSeatTaken, parsed)
		}
		seat = parsed
	} else {
		empty := room.Seats.Empty()
		if len(empty) == 0 {
			return Room{}, ErrNoSeatsAvailable
		}
		seat = empty[rng.Intn(len(empty))]
	}

	next := room.Clone()
	next.Seats = next.Seats.With(seat, userID)
	return next, nil
}

// FillWithRobots assigns the seat's robot sentinel to every empty seat.
func FillWithRobots(room Room) Room {
	next := room.Clone()
	for _, seat := range next.Seats.Empty() {
		next.Seats = next.Seats.With(seat, RobotID(seat))
	}
	return next
}

// SeatOf resolves the seat held by userID.
func SeatOf(room Room, userID string) (Seat, error) {
	seat, ok := room.Seats.SeatOf(userID)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotSeated, userID)
	}
	return seat, nil
}
