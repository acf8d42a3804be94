package bot

import (
	"bridgeroom/internal/domain"
)

// PassiveBot never bids and always plays its lowest legal card.
type PassiveBot struct{}

func (b *PassiveBot) CalculateBid(room domain.Room, seat domain.Seat) (domain.Call, error) {
	return domain.CallPass, nil
}

func (b *PassiveBot) CalculateCard(room domain.Room, seat domain.Seat) (domain.Card, error) {
	legal, err := legalCards(room, seat)
	if err != nil {
		return domain.Card{}, err
	}
	return lowest(legal), nil
}

// lowest returns the lowest-ranked card, breaking ties by suit order.
func lowest(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < best.Rank || (c.Rank == best.Rank && suitRank(c.Suit) < suitRank(best.Suit)) {
			best = c
		}
	}
	return best
}

func suitRank(s domain.Suit) int {
	for i, suit := range domain.Suits {
		if suit == s {
			return i
		}
	}
	return -1
}
