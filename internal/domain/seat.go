package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Seat is one of the four compass positions at the table.
type Seat string

const (
	North Seat = "N"
	East  Seat = "E"
	South Seat = "S"
	West  Seat = "W"
)

// SeatOrder is the fixed rotation used for turns: N -> E -> S -> W -> N.
var SeatOrder = [4]Seat{North, East, South, West}

// robotPrefix marks the sentinel occupant ids assigned to empty seats at game start.
const robotPrefix = "robot-"

// ParseSeat validates a seat code.
func ParseSeat(s string) (Seat, error) {
	switch seat := Seat(s); seat {
	case North, East, South, West:
		return seat, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSeat, s)
	}
}

// Index returns the seat's position in SeatOrder, or -1 for an unknown seat.
func (s Seat) Index() int {
	for i, seat := range SeatOrder {
		if seat == s {
			return i
		}
	}
	return -1
}

// Next returns the seat that acts after s.
func (s Seat) Next() Seat {
	return SeatOrder[(s.Index()+1)%len(SeatOrder)]
}

// RobotID returns the deterministic robot sentinel for a seat.
func RobotID(seat Seat) string {
	return robotPrefix + string(seat)
}

// IsRobot reports whether the occupant id is a robot sentinel.
func IsRobot(occupant string) bool {
	return strings.HasPrefix(occupant, robotPrefix)
}

// Seats holds the occupant id of each seat in SeatOrder; "" means empty.
type Seats [4]string

// At returns the occupant of a seat.
func (s Seats) At(seat Seat) string {
	i := seat.Index()
	if i < 0 {
		return ""
	}
	return s[i]
}

// With returns a copy of s with the seat assigned to occupant.
func (s Seats) With(seat Seat, occupant string) Seats {
	s[seat.Index()] = occupant
	return s
}

// SeatOf returns the seat held by occupant.
func (s Seats) SeatOf(occupant string) (Seat, bool) {
	if occupant == "" {
		return "", false
	}
	for i, id := range s {
		if id == occupant {
			return SeatOrder[i], true
		}
	}
	return "", false
}

// Empty lists the unoccupied seats in rotation order.
func (s Seats) Empty() []Seat {
	var out []Seat
	for i, id := range s {
		if id == "" {
			out = append(out, SeatOrder[i])
		}
	}
	return out
}

// Humans lists occupants that are neither empty nor robots.
func (s Seats) Humans() []string {
	var out []string
	for _, id := range s {
		if id != "" && !IsRobot(id) {
			out = append(out, id)
		}
	}
	return out
}

// Full reports whether every seat is occupied.
func (s Seats) Full() bool {
	return len(s.Empty()) == 0
}

// MarshalJSON encodes seats as a compass-keyed object.
func (s Seats) MarshalJSON() ([]byte, error) {
	m := make(map[Seat]string, len(s))
	for i, id := range s {
		m[SeatOrder[i]] = id
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes a compass-keyed object, rejecting unknown seats.
func (s *Seats) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Seats
	for k, id := range m {
		seat, err := ParseSeat(k)
		if err != nil {
			return err
		}
		out[seat.Index()] = id
	}
	*s = out
	return nil
}
