package domain

import "fmt"

// PlayCard applies the actor's card to the current trick, resolving the trick on its fourth play
// and completing the hand after the thirteenth trick.
func PlayCard(room Room, actorID, code string) (Room, error) {
	if room.State != StatePlaying || room.GameData == nil || room.GameData.Playing == nil {
		return Room{}, fmt.Errorf("%w: cannot play in a %s room", ErrWrongPhase, room.State)
	}
	playing := room.GameData.Playing
	if actorID == "" || playing.Turn != actorID {
		return Room{}, ErrNotYourTurn
	}
	card, err := ParseCard(code)
	if err != nil {
		return Room{}, err
	}
	seat, err := SeatOf(room, actorID)
	if err != nil {
		return Room{}, err
	}
	hand := playing.Hands.Of(seat)
	if !containsCard(hand, card) {
		return Room{}, fmt.Errorf("%w: %s", ErrCardNotInHand, card)
	}
	if err := checkFollowSuit(hand, playing.CurrentTrick, card); err != nil {
		return Room{}, err
	}

	next := room.Clone()
	np := next.GameData.Playing
	np.Hands[seat.Index()] = removeCard(np.Hands.Of(seat), card)
	np.CurrentTrick = append(np.CurrentTrick, Play{Seat: seat, Card: card})
	np.Turn = next.Seats.At(seat.Next())

	if len(np.CurrentTrick) < len(SeatOrder) {
		return next, nil
	}

	winner := TrickWinner(np.CurrentTrick)
	np.Tricks = append(np.Tricks, Trick{Cards: np.CurrentTrick, Winner: winner})
	np.CurrentTrick = nil
	np.Turn = next.Seats.At(winner)

	if len(np.Tricks) < TricksPerHand {
		return next, nil
	}

	next.State = StateCompleted
	next.GameData = &GameData{
		Phase:     PhaseCompleted,
		Completed: &CompletedState{Auction: np.Auction, Tricks: np.Tricks},
	}
	return next, nil
}

// LegalCards returns the cards in hand that may be played onto the current trick.
func LegalCards(hand []Card, currentTrick []Play) []Card {
	if len(currentTrick) == 0 {
		return append([]Card{}, hand...)
	}
	lead := currentTrick[0].Card.Suit
	if !holdsSuit(hand, lead) {
		return append([]Card{}, hand...)
	}
	var out []Card
	for _, c := range hand {
		if c.Suit == lead {
			out = append(out, c)
		}
	}
	return out
}

func checkFollowSuit(hand []Card, currentTrick []Play, card Card) error {
	if len(currentTrick) == 0 {
		return nil
	}
	lead := currentTrick[0].Card.Suit
	if card.Suit != lead && holdsSuit(hand, lead) {
		return fmt.Errorf("%w: lead suit is %s", ErrMustFollowSuit, lead)
	}
	return nil
}

// TrickWinner returns the seat that played the highest card of the lead suit. There are no trumps.
func TrickWinner(plays []Play) Seat {
	if len(plays) == 0 {
		return ""
	}
	lead := plays[0].Card.Suit
	best := plays[0]
	for _, p := range plays[1:] {
		if p.Card.Suit == lead && p.Card.Rank > best.Card.Rank {
			best = p
		}
	}
	return best.Seat
}
