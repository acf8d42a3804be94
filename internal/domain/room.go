package domain

import "fmt"

// StartRoom fills empty seats with robots, deals the given hands and opens the auction with
// the occupant of seat N to call first.
func StartRoom(room Room, requesterID string, hands Hands) (Room, error) {
	if requesterID == "" || requesterID != room.OwnerID {
		return Room{}, ErrNotOwner
	}
	if room.State != StateWaiting {
		return Room{}, fmt.Errorf("%w: room is already %s", ErrWrongState, room.State)
	}
	if err := validateDeal(hands); err != nil {
		return Room{}, err
	}

	next := FillWithRobots(room)
	dealt := hands.clone()
	for i := range dealt {
		SortHand(dealt[i])
	}
	next.State = StateBidding
	next.GameData = &GameData{
		Phase: PhaseBidding,
		Bidding: &BiddingState{
			Turn:  next.Seats.At(North),
			Bids:  []Bid{},
			Hands: dealt,
		},
	}
	return next, nil
}
