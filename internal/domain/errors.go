package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrInvalidSeat       = errors.New("invalid seat")
	ErrSeatTaken         = errors.New("seat already taken")
	ErrNoSeatsAvailable  = errors.New("no seats available")
	ErrNotOwner          = errors.New("actor is not room owner")
	ErrWrongState        = errors.New("room is in the wrong state")
	ErrWrongPhase        = errors.New("room is in the wrong phase")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNotSeated         = errors.New("user is not seated in room")
	ErrInvalidBid        = errors.New("invalid bid")
	ErrInvalidCardFormat = errors.New("invalid card format")
	ErrCardNotInHand     = errors.New("card not in hand")
	ErrMustFollowSuit    = errors.New("must follow suit")
	ErrInvalidDeal       = errors.New("invalid deal")
)

// ErrAlreadySeated is a Conflict: the user already holds a seat in the room.
var ErrAlreadySeated = fmt.Errorf("%w: user already seated", ErrConflict)
