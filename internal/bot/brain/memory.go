package brain

import (
	"bridgeroom/internal/domain"
)

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown CardStatus = iota // held by another seat
	StatusMine                      // in the bot's hand
	StatusPlayed                    // already on the table
)

// GameMemory is the bot's view of the deck, rebuilt from the room for each decision.
type GameMemory struct {
	// DeckStatus tracks all 52 cards. Index = suit*13 + rank.
	DeckStatus [52]CardStatus
}

// NewMemory initializes a fresh memory state.
func NewMemory() *GameMemory {
	return &GameMemory{}
}

// NewMemoryFromRoom marks the seat's hand and every card already played in the room.
func NewMemoryFromRoom(room domain.Room, seat domain.Seat) *GameMemory {
	m := NewMemory()
	m.MarkMine(room.HandOf(seat))
	if room.GameData == nil || room.GameData.Playing == nil {
		return m
	}
	for _, trick := range room.GameData.Playing.Tricks {
		for _, p := range trick.Cards {
			m.MarkPlayed(p.Card)
		}
	}
	for _, p := range room.GameData.Playing.CurrentTrick {
		m.MarkPlayed(p.Card)
	}
	return m
}

// MarkMine records the cards currently in the bot's hand.
func (m *GameMemory) MarkMine(cards []domain.Card) {
	for _, c := range cards {
		if i := cardToIndex(c); i >= 0 {
			m.DeckStatus[i] = StatusMine
		}
	}
}

// MarkPlayed records cards that have been played on the table.
func (m *GameMemory) MarkPlayed(cards ...domain.Card) {
	for _, c := range cards {
		if i := cardToIndex(c); i >= 0 {
			m.DeckStatus[i] = StatusPlayed
		}
	}
}

// IsMaster reports whether no other seat still holds a higher card of the same suit.
func (m *GameMemory) IsMaster(c domain.Card) bool {
	for r := c.Rank + 1; r <= domain.RankAce; r++ {
		if m.DeckStatus[cardToIndex(domain.Card{Rank: r, Suit: c.Suit})] == StatusUnknown {
			return false
		}
	}
	return true
}

// Masters filters cards down to those that are currently masters.
func (m *GameMemory) Masters(cards []domain.Card) []domain.Card {
	var out []domain.Card
	for _, c := range cards {
		if m.IsMaster(c) {
			out = append(out, c)
		}
	}
	return out
}

func cardToIndex(c domain.Card) int {
	for i, s := range domain.Suits {
		if s == c.Suit && c.Rank >= domain.RankTwo && c.Rank <= domain.RankAce {
			return i*13 + int(c.Rank)
		}
	}
	return -1
}
