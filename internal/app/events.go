package app

import (
	"bridgeroom/internal/domain"
	"bridgeroom/internal/ports"
)

const (
	EventRoomCreated    ports.EventKind = "room_created"
	EventPlayerJoined   ports.EventKind = "player_joined"
	EventGameStarted    ports.EventKind = "game_started"
	EventHandDealt      ports.EventKind = "hand_dealt"
	EventBidMade        ports.EventKind = "bid_made"
	EventAuctionClosed  ports.EventKind = "auction_closed"
	EventCardPlayed     ports.EventKind = "card_played"
	EventTrickCompleted ports.EventKind = "trick_completed"
	EventHandCompleted  ports.EventKind = "hand_completed"
)

type RoomCreatedPayload struct {
	RoomID  string      `json:"room_id"`
	OwnerID string      `json:"owner_id"`
	Seat    domain.Seat `json:"seat"`
}

type PlayerJoinedPayload struct {
	UserID string      `json:"user_id"`
	Seat   domain.Seat `json:"seat"`
}

type GameStartedPayload struct {
	Seats           domain.Seats `json:"seats"`
	FirstTurnUserID string       `json:"first_turn_user_id"`
}

type HandDealtPayload struct {
	Seat domain.Seat   `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type BidMadePayload struct {
	Seat           domain.Seat `json:"seat"`
	Call           domain.Call `json:"call"`
	NextTurnUserID string      `json:"next_turn_user_id"`
}

type AuctionClosedPayload struct {
	Contract     *domain.Contract `json:"contract,omitempty"`
	LeaderUserID string           `json:"leader_user_id"`
}

type CardPlayedPayload struct {
	Seat           domain.Seat `json:"seat"`
	Card           domain.Card `json:"card"`
	NextTurnUserID string      `json:"next_turn_user_id"`
}

type TrickCompletedPayload struct {
	Trick  int         `json:"trick"`
	Winner domain.Seat `json:"winner"`
}

type HandCompletedPayload struct {
	TricksWon map[domain.Seat]int `json:"tricks_won"`
}

func roomCreatedEvents(room domain.Room) []ports.Event {
	seat, _ := room.Seats.SeatOf(room.OwnerID)
	return []ports.Event{{
		Kind:    EventRoomCreated,
		Payload: RoomCreatedPayload{RoomID: room.RoomID, OwnerID: room.OwnerID, Seat: seat},
	}}
}

func playerJoinedEvents(room domain.Room, userID string) []ports.Event {
	seat, _ := room.Seats.SeatOf(userID)
	return []ports.Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{UserID: userID, Seat: seat},
	}}
}

// gameStartedEvents announces the start and sends each human their hand privately.
func gameStartedEvents(room domain.Room) []ports.Event {
	events := []ports.Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Seats: room.Seats, FirstTurnUserID: room.Turn()},
	}}
	for _, userID := range room.Seats.Humans() {
		seat, _ := room.Seats.SeatOf(userID)
		events = append(events, ports.Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: room.HandOf(seat)},
			Recipients: []string{userID},
		})
	}
	return events
}

func bidEvents(next domain.Room, seat domain.Seat, call domain.Call) []ports.Event {
	events := []ports.Event{{
		Kind:    EventBidMade,
		Payload: BidMadePayload{Seat: seat, Call: call, NextTurnUserID: next.Turn()},
	}}
	if next.State == domain.StatePlaying {
		events = append(events, ports.Event{
			Kind: EventAuctionClosed,
			Payload: AuctionClosedPayload{
				Contract:     next.GameData.Playing.Auction.Contract,
				LeaderUserID: next.Turn(),
			},
		})
	}
	return events
}

func cardEvents(prev, next domain.Room, seat domain.Seat, card domain.Card) []ports.Event {
	events := []ports.Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: seat, Card: card, NextTurnUserID: next.Turn()},
	}}

	before := len(prev.GameData.Playing.Tricks)
	tricks := completedTricks(next)
	if len(tricks) > before {
		events = append(events, ports.Event{
			Kind:    EventTrickCompleted,
			Payload: TrickCompletedPayload{Trick: len(tricks), Winner: tricks[len(tricks)-1].Winner},
		})
	}
	if next.State == domain.StateCompleted {
		won := make(map[domain.Seat]int, len(domain.SeatOrder))
		for _, seat := range domain.SeatOrder {
			won[seat] = 0
		}
		for _, t := range tricks {
			won[t.Winner]++
		}
		events = append(events, ports.Event{
			Kind:    EventHandCompleted,
			Payload: HandCompletedPayload{TricksWon: won},
		})
	}
	return events
}

func completedTricks(room domain.Room) []domain.Trick {
	switch {
	case room.GameData == nil:
		return nil
	case room.GameData.Playing != nil:
		return room.GameData.Playing.Tricks
	case room.GameData.Completed != nil:
		return room.GameData.Completed.Tricks
	}
	return nil
}
