package bot

import (
	"fmt"

	"bridgeroom/internal/domain"
)

// Agent is the robot occupying one seat.
type Agent struct {
	Seat     domain.Seat
	Strategy Brain
}

// NewAgent resolves the seat held by a robot sentinel.
func NewAgent(room domain.Room, occupant string, strategy Brain) (*Agent, error) {
	if !domain.IsRobot(occupant) {
		return nil, fmt.Errorf("occupant %q is not a robot", occupant)
	}
	seat, ok := room.Seats.SeatOf(occupant)
	if !ok {
		return nil, fmt.Errorf("robot %q is not seated", occupant)
	}
	return &Agent{Seat: seat, Strategy: strategy}, nil
}

// Play asks the strategy for a move suited to the room's state. A strategy error or an illegal
// suggestion falls back to a pass or the lowest legal card, so a robot never stalls the table.
func (a *Agent) Play(room domain.Room) (Move, error) {
	switch room.State {
	case domain.StateBidding:
		call, err := a.Strategy.CalculateBid(room, a.Seat)
		if err != nil {
			return Move{Call: domain.CallPass}, nil
		}
		if _, err := domain.ParseCall(string(call)); err != nil {
			return Move{Call: domain.CallPass}, nil
		}
		return Move{Call: call}, nil
	case domain.StatePlaying:
		legal := domain.LegalCards(room.HandOf(a.Seat), room.GameData.Playing.CurrentTrick)
		if len(legal) == 0 {
			return Move{}, fmt.Errorf("seat %s has no card to play", a.Seat)
		}
		card, err := a.Strategy.CalculateCard(room, a.Seat)
		if err != nil || !containsCard(legal, card) {
			return Move{Card: lowest(legal)}, nil
		}
		return Move{Card: card}, nil
	default:
		return Move{}, fmt.Errorf("robot cannot act in a %s room", room.State)
	}
}

func containsCard(cards []domain.Card, card domain.Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}
