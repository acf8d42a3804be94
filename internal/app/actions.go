package app

import (
	"context"
	"fmt"

	"bridgeroom/internal/domain"
)

// Request is one client action. ActorID comes from the authenticated session, never the payload.
type Request struct {
	Action    string `json:"-"`
	ActorID   string `json:"-"`
	RoomID    string `json:"room_id,omitempty"`
	RoomName  string `json:"room_name,omitempty"`
	IsPrivate bool   `json:"is_private,omitempty"`
	Seat      string `json:"seat,omitempty"`
	Call      string `json:"call,omitempty"`
	Card      string `json:"card,omitempty"`
}

type actionHandler func(s *Service, ctx context.Context, req Request) (domain.Room, error)

var actions = map[string]actionHandler{
	ActionCreateRoom: func(s *Service, ctx context.Context, req Request) (domain.Room, error) {
		return s.CreateRoom(ctx, req.ActorID, domain.RoomOptions{RoomName: req.RoomName, IsPrivate: req.IsPrivate})
	},
	ActionJoinRoom: func(s *Service, ctx context.Context, req Request) (domain.Room, error) {
		return s.JoinRoom(ctx, req.RoomID, req.ActorID, req.Seat)
	},
	ActionStartRoom: func(s *Service, ctx context.Context, req Request) (domain.Room, error) {
		return s.StartRoom(ctx, req.RoomID, req.ActorID)
	},
	ActionMakeBid: func(s *Service, ctx context.Context, req Request) (domain.Room, error) {
		return s.SubmitBid(ctx, req.RoomID, req.ActorID, req.Call)
	},
	ActionPlayCard: func(s *Service, ctx context.Context, req Request) (domain.Room, error) {
		return s.PlayCard(ctx, req.RoomID, req.ActorID, req.Card)
	},
	ActionGetRoom: func(s *Service, ctx context.Context, req Request) (domain.Room, error) {
		return s.GetRoom(ctx, req.RoomID)
	},
}

// Actions lists the action names Dispatch accepts.
func Actions() []string {
	return []string{ActionCreateRoom, ActionJoinRoom, ActionStartRoom, ActionMakeBid, ActionPlayCard, ActionGetRoom}
}

// Dispatch runs the handler registered for req.Action.
func (s *Service) Dispatch(ctx context.Context, req Request) (domain.Room, error) {
	handler, ok := actions[req.Action]
	if !ok {
		return domain.Room{}, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
	return handler(s, ctx, req)
}
