package nakama

import (
	"context"
	"encoding/json"

	"bridgeroom/internal/domain"
	"bridgeroom/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// notificationSender is the slice of runtime.NakamaModule the notifier needs.
type notificationSender interface {
	NotificationsSend(ctx context.Context, notifications []*runtime.NotificationSend) error
}

// NakamaRoomNotifier delivers room events as Nakama notifications.
type NakamaRoomNotifier struct {
	nk     notificationSender
	logger runtime.Logger
}

// NewNakamaRoomNotifier creates a new notifier adapter.
func NewNakamaRoomNotifier(nk notificationSender, logger runtime.Logger) *NakamaRoomNotifier {
	return &NakamaRoomNotifier{nk: nk, logger: logger}
}

// NotifyRoom sends every event to its recipients, or to every seated human when none are named.
// Robots never receive notifications.
func (n *NakamaRoomNotifier) NotifyRoom(ctx context.Context, room domain.Room, events []ports.Event) {
	logger := n.logger.WithField("room_id", room.RoomID)

	var batch []*runtime.NotificationSend
	for _, event := range events {
		code, ok := notificationCodes[event.Kind]
		if !ok {
			logger.Warn("Notifier: no notification code for event %s", event.Kind)
			continue
		}
		content, err := eventContent(room, event)
		if err != nil {
			logger.Error("Notifier: failed to encode %s: %v", event.Kind, err)
			continue
		}

		recipients := event.Recipients
		if len(recipients) == 0 {
			recipients = room.Seats.Humans()
		}
		for _, userID := range recipients {
			if domain.IsRobot(userID) {
				continue
			}
			batch = append(batch, &runtime.NotificationSend{
				UserID:     userID,
				Subject:    string(event.Kind),
				Content:    content,
				Code:       code,
				Persistent: false,
			})
		}
	}
	if len(batch) == 0 {
		return
	}

	if err := n.nk.NotificationsSend(ctx, batch); err != nil {
		logger.Error("Notifier: failed to send %d notifications: %v", len(batch), err)
	}
}

// eventContent flattens the payload into the notification content map and stamps the room id
// and committed version.
func eventContent(room domain.Room, event ports.Event) (map[string]interface{}, error) {
	content := map[string]interface{}{}
	if event.Payload != nil {
		data, err := json.Marshal(event.Payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &content); err != nil {
			return nil, err
		}
	}
	content["room_id"] = room.RoomID
	content["version"] = room.Version
	return content, nil
}

var _ ports.RoomNotifier = (*NakamaRoomNotifier)(nil)
