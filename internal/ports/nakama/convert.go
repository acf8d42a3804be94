package nakama

import (
	"encoding/json"

	"bridgeroom/internal/domain"
)

type roomResponse struct {
	Room domain.Room `json:"room"`
}

// roomView hides every hand except the viewer's own.
func roomView(room domain.Room, viewerID string) domain.Room {
	view := room.Clone()
	if view.GameData == nil {
		return view
	}
	var hands *domain.Hands
	switch {
	case view.GameData.Bidding != nil:
		hands = &view.GameData.Bidding.Hands
	case view.GameData.Playing != nil:
		hands = &view.GameData.Playing.Hands
	default:
		return view
	}
	for i, seat := range domain.SeatOrder {
		if view.Seats.At(seat) != viewerID {
			hands[i] = nil
		}
	}
	return view
}

func encodeRoom(room domain.Room, viewerID string) (string, error) {
	data, err := json.Marshal(roomResponse{Room: roomView(room, viewerID)})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
