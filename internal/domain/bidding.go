package domain

import "fmt"

// SubmitBid appends the actor's call to the auction and closes it after three trailing passes.
// The next leader is always the occupant of seat N, whether or not a contract was reached.
func SubmitBid(room Room, actorID, call string) (Room, error) {
	if room.State != StateBidding || room.GameData == nil || room.GameData.Bidding == nil {
		return Room{}, fmt.Errorf("%w: cannot bid in a %s room", ErrWrongPhase, room.State)
	}
	bidding := room.GameData.Bidding
	if actorID == "" || bidding.Turn != actorID {
		return Room{}, ErrNotYourTurn
	}
	parsed, err := ParseCall(call)
	if err != nil {
		return Room{}, err
	}
	seat, err := SeatOf(room, actorID)
	if err != nil {
		return Room{}, err
	}

	next := room.Clone()
	nb := next.GameData.Bidding
	nb.Bids = append(nb.Bids, Bid{Seat: seat, Call: parsed})
	nb.Turn = next.Seats.At(seat.Next())

	if !auctionClosed(nb.Bids) {
		return next, nil
	}

	next.State = StatePlaying
	next.GameData = &GameData{
		Phase: PhasePlaying,
		Playing: &PlayingState{
			Turn:    next.Seats.At(North),
			Auction: Auction{Bids: nb.Bids, Contract: resolveContract(nb.Bids)},
			Hands:   nb.Hands,
		},
	}
	return next, nil
}
