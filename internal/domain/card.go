package domain

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
)

// Suit is one of the four card suits.
type Suit string

const (
	Clubs    Suit = "C"
	Diamonds Suit = "D"
	Hearts   Suit = "H"
	Spades   Suit = "S"
)

// Suits lists suits in ascending order.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// Rank is a card rank from 2 (0) to ace (12).
type Rank int

const (
	RankTwo Rank = iota
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

var rankCodes = [13]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

func (r Rank) String() string {
	if r < RankTwo || r > RankAce {
		return "?"
	}
	return rankCodes[r]
}

// Card is a single playing card. Its wire form is rank followed by suit, e.g. "10H" or "AS".
type Card struct {
	Rank Rank
	Suit Suit
}

// ParseCard validates a card code against the rank x suit grammar.
func ParseCard(code string) (Card, error) {
	if len(code) < 2 || len(code) > 3 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardFormat, code)
	}
	suit := Suit(code[len(code)-1:])
	switch suit {
	case Clubs, Diamonds, Hearts, Spades:
	default:
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardFormat, code)
	}
	rankCode := code[:len(code)-1]
	for i, rc := range rankCodes {
		if rc == rankCode {
			return Card{Rank: Rank(i), Suit: suit}, nil
		}
	}
	return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardFormat, code)
}

func (c Card) String() string {
	return c.Rank.String() + string(c.Suit)
}

// MarshalText encodes the card as its code.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a card code.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// NewDeck returns an ordered 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := RankTwo; r <= RankAce; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortHand orders cards by suit then ascending rank.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cardPower(cards[i]) < cardPower(cards[j])
	})
}

func cardPower(c Card) int {
	return suitIndex(c.Suit)*13 + int(c.Rank)
}

func suitIndex(s Suit) int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}
	return -1
}

// Hands maps each seat (by SeatOrder index) to the cards it holds.
type Hands [4][]Card

// Of returns the hand held at seat.
func (h Hands) Of(seat Seat) []Card {
	return h[seat.Index()]
}

// clone deep-copies every hand.
func (h Hands) clone() Hands {
	var out Hands
	for i, cards := range h {
		if cards != nil {
			out[i] = append([]Card{}, cards...)
		}
	}
	return out
}

// MarshalJSON encodes hands as a compass-keyed object.
func (h Hands) MarshalJSON() ([]byte, error) {
	m := make(map[Seat][]Card, len(h))
	for i, cards := range h {
		m[SeatOrder[i]] = cards
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes a compass-keyed object of card codes.
func (h *Hands) UnmarshalJSON(data []byte) error {
	var m map[string][]Card
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Hands
	for k, cards := range m {
		seat, err := ParseSeat(k)
		if err != nil {
			return err
		}
		out[seat.Index()] = cards
	}
	*h = out
	return nil
}

// Deal splits a 52-card deck into four sorted hands of 13, N first.
func Deal(deck []Card) (Hands, error) {
	if len(deck) != 52 {
		return Hands{}, fmt.Errorf("%w: deck has %d cards", ErrInvalidDeal, len(deck))
	}
	var hands Hands
	for i := range hands {
		hand := append([]Card{}, deck[i*13:(i+1)*13]...)
		SortHand(hand)
		hands[i] = hand
	}
	return hands, nil
}

// DealRandom shuffles a fresh deck with rng and deals it.
func DealRandom(rng *rand.Rand) Hands {
	hands, _ := Deal(ShuffleDeck(rng, NewDeck()))
	return hands
}

// validateDeal checks that the hands hold 13 cards each and form a complete deck.
func validateDeal(hands Hands) error {
	seen := make(map[Card]bool, 52)
	for i, hand := range hands {
		if len(hand) != 13 {
			return fmt.Errorf("%w: seat %s holds %d cards", ErrInvalidDeal, SeatOrder[i], len(hand))
		}
		for _, c := range hand {
			if c.Rank < RankTwo || c.Rank > RankAce || suitIndex(c.Suit) < 0 {
				return fmt.Errorf("%w: malformed card %v", ErrInvalidDeal, c)
			}
			if seen[c] {
				return fmt.Errorf("%w: duplicate card %s", ErrInvalidDeal, c)
			}
			seen[c] = true
		}
	}
	return nil
}

func containsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

func holdsSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// removeCard returns a new hand without card.
func removeCard(hand []Card, card Card) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if c != card {
			out = append(out, c)
		}
	}
	return out
}
