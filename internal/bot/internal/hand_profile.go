package internal

import "bridgeroom/internal/domain"

// HandProfile summarizes a hand for bidding and lead decisions.
type HandProfile struct {
	TotalCards     int
	HighCardPoints int
	SuitLengths    map[domain.Suit]int
	bySuit         map[domain.Suit][]domain.Card
}

// highCardPoints uses the 4-3-2-1 count for A, K, Q, J.
var highCardPoints = map[domain.Rank]int{
	domain.RankAce:   4,
	domain.RankKing:  3,
	domain.RankQueen: 2,
	domain.RankJack:  1,
}

// ProfileHand counts high card points and groups the hand by suit.
func ProfileHand(hand []domain.Card) HandProfile {
	profile := HandProfile{
		TotalCards:  len(hand),
		SuitLengths: make(map[domain.Suit]int, 4),
		bySuit:      make(map[domain.Suit][]domain.Card, 4),
	}
	for _, c := range hand {
		profile.HighCardPoints += highCardPoints[c.Rank]
		profile.SuitLengths[c.Suit]++
		profile.bySuit[c.Suit] = append(profile.bySuit[c.Suit], c)
	}
	return profile
}

// LongestSuit returns the suit with the most cards. Ties go to the higher-ranking suit.
func (p HandProfile) LongestSuit() domain.Suit {
	best := domain.Suit("")
	bestLen := 0
	for _, s := range domain.Suits {
		if n := p.SuitLengths[s]; n > 0 && n >= bestLen {
			best, bestLen = s, n
		}
	}
	return best
}

// CardsOf returns the profiled cards of one suit.
func (p HandProfile) CardsOf(s domain.Suit) []domain.Card {
	return p.bySuit[s]
}
