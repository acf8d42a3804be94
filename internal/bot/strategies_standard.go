package bot

import (
	"errors"
	"fmt"
	"strconv"

	"bridgeroom/internal/bot/brain"
	"bridgeroom/internal/bot/internal"
	"bridgeroom/internal/domain"
)

var errNoHand = errors.New("no hand in progress")

// StandardBot opens with a sound hand and plays cheaply to win tricks.
type StandardBot struct {
	Tuning Tuning
}

// CalculateBid opens one of the longest suit when nobody has bid and the hand holds enough
// high card points. Every other call is a pass.
func (b *StandardBot) CalculateBid(room domain.Room, seat domain.Seat) (domain.Call, error) {
	if room.State != domain.StateBidding || room.GameData == nil || room.GameData.Bidding == nil {
		return "", errNoHand
	}
	for _, bid := range room.GameData.Bidding.Bids {
		if bid.Call != domain.CallPass {
			return domain.CallPass, nil
		}
	}

	profile := internal.ProfileHand(room.HandOf(seat))
	if profile.HighCardPoints < b.Tuning.OpeningPoints {
		return domain.CallPass, nil
	}
	level := b.Tuning.OpeningLevel
	if level < 1 || level > 7 {
		level = 1
	}
	return domain.ParseCall(strconv.Itoa(level) + string(profile.LongestSuit()))
}

// CalculateCard wins the trick with the cheapest card that beats the table, otherwise plays low.
// On lead it cashes a master card when it holds one, else leads the top of its longest suit.
func (b *StandardBot) CalculateCard(room domain.Room, seat domain.Seat) (domain.Card, error) {
	legal, err := legalCards(room, seat)
	if err != nil {
		return domain.Card{}, err
	}
	trick := room.GameData.Playing.CurrentTrick

	if len(trick) == 0 {
		mem := brain.NewMemoryFromRoom(room, seat)
		if masters := mem.Masters(legal); len(masters) > 0 {
			return highest(masters), nil
		}
		profile := internal.ProfileHand(legal)
		return highest(profile.CardsOf(profile.LongestSuit())), nil
	}

	lead := trick[0].Card.Suit
	best := trick[0].Card
	for _, p := range trick[1:] {
		if p.Card.Suit == lead && p.Card.Rank > best.Rank {
			best = p.Card
		}
	}

	var winners []domain.Card
	for _, c := range legal {
		if c.Suit == lead && c.Rank > best.Rank {
			winners = append(winners, c)
		}
	}
	if len(winners) > 0 {
		return lowest(winners), nil
	}
	return lowest(legal), nil
}

func highest(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > best.Rank || (c.Rank == best.Rank && suitRank(c.Suit) > suitRank(best.Suit)) {
			best = c
		}
	}
	return best
}

func legalCards(room domain.Room, seat domain.Seat) ([]domain.Card, error) {
	if room.State != domain.StatePlaying || room.GameData == nil || room.GameData.Playing == nil {
		return nil, errNoHand
	}
	legal := domain.LegalCards(room.HandOf(seat), room.GameData.Playing.CurrentTrick)
	if len(legal) == 0 {
		return nil, fmt.Errorf("seat %s holds no cards", seat)
	}
	return legal, nil
}
