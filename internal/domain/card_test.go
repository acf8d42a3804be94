package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		code    string
		want    Card
		wantErr bool
	}{
		{code: "2C", want: Card{Rank: RankTwo, Suit: Clubs}},
		{code: "10H", want: Card{Rank: RankTen, Suit: Hearts}},
		{code: "QD", want: Card{Rank: RankQueen, Suit: Diamonds}},
		{code: "AS", want: Card{Rank: RankAce, Suit: Spades}},
		{code: "", wantErr: true},
		{code: "A", wantErr: true},
		{code: "1H", wantErr: true},
		{code: "TH", wantErr: true},
		{code: "11S", wantErr: true},
		{code: "ah", wantErr: true},
		{code: "AX", wantErr: true},
		{code: "10HH", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseCard(tt.code)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCardFormat) {
					t.Fatalf("expected ErrInvalidCardFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got.String() != tt.code {
				t.Errorf("String() = %q, want %q", got.String(), tt.code)
			}
		})
	}
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(deck))
	}
	seen := map[Card]bool{}
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card %s", c)
		}
		seen[c] = true
	}
}

func TestDealRandom(t *testing.T) {
	hands := DealRandom(rand.New(rand.NewSource(99)))
	if err := validateDeal(hands); err != nil {
		t.Fatalf("random deal is invalid: %v", err)
	}
	for i, hand := range hands {
		for j := 1; j < len(hand); j++ {
			if cardPower(hand[j-1]) > cardPower(hand[j]) {
				t.Fatalf("hand %s not sorted: %v", SeatOrder[i], hand)
			}
		}
	}
}

func TestValidateDeal(t *testing.T) {
	good, err := Deal(NewDeck())
	if err != nil {
		t.Fatal(err)
	}
	if err := validateDeal(good); err != nil {
		t.Fatalf("ordered deal rejected: %v", err)
	}

	short := good.clone()
	short[0] = short[0][:12]
	if err := validateDeal(short); !errors.Is(err, ErrInvalidDeal) {
		t.Errorf("expected ErrInvalidDeal for short hand, got %v", err)
	}

	dup := good.clone()
	dup[1][0] = dup[0][0]
	if err := validateDeal(dup); !errors.Is(err, ErrInvalidDeal) {
		t.Errorf("expected ErrInvalidDeal for duplicate card, got %v", err)
	}

	if _, err := Deal(NewDeck()[:40]); !errors.Is(err, ErrInvalidDeal) {
		t.Errorf("expected ErrInvalidDeal for short deck, got %v", err)
	}
}
