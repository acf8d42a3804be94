package bot

import (
	"bridgeroom/internal/domain"
)

// BotLevel selects the strategy driving robot seats.
type BotLevel string

const (
	BotLevelPassive  BotLevel = "passive"
	BotLevelStandard BotLevel = "standard"
)

// Move is a robot decision: a call while bidding, a card while playing.
type Move struct {
	Call domain.Call
	Card domain.Card
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	CalculateBid(room domain.Room, seat domain.Seat) (domain.Call, error)
	CalculateCard(room domain.Room, seat domain.Seat) (domain.Card, error)
}
