package nakama

import (
	"bridgeroom/internal/app"
	"bridgeroom/internal/ports"
)

// RPC ids. Room actions reuse the app action names.
const (
	RpcCreateRoom = app.ActionCreateRoom
	RpcJoinRoom   = app.ActionJoinRoom
	RpcStartRoom  = app.ActionStartRoom
	RpcMakeBid    = app.ActionMakeBid
	RpcPlayCard   = app.ActionPlayCard
	RpcGetRoom    = app.ActionGetRoom

	// RpcRoomVoiceToken issues a Vivox token for the caller's room channel.
	RpcRoomVoiceToken = "room_voice_token"
)

// Storage layout for rooms: system-owned objects, unreadable by clients.
const (
	roomCollection = "bridge_rooms"
	configPath     = "data/bridge_config.json"
)

// Notification codes for server -> client room events. Nakama reserves codes <= 0.
const (
	NotifyRoomCreated    = 101
	NotifyPlayerJoined   = 102
	NotifyGameStarted    = 103
	NotifyHandDealt      = 104 // sent privately
	NotifyBidMade        = 105
	NotifyAuctionClosed  = 106
	NotifyCardPlayed     = 107
	NotifyTrickCompleted = 108
	NotifyHandCompleted  = 109
)

var notificationCodes = map[ports.EventKind]int{
	app.EventRoomCreated:    NotifyRoomCreated,
	app.EventPlayerJoined:   NotifyPlayerJoined,
	app.EventGameStarted:    NotifyGameStarted,
	app.EventHandDealt:      NotifyHandDealt,
	app.EventBidMade:        NotifyBidMade,
	app.EventAuctionClosed:  NotifyAuctionClosed,
	app.EventCardPlayed:     NotifyCardPlayed,
	app.EventTrickCompleted: NotifyTrickCompleted,
	app.EventHandCompleted:  NotifyHandCompleted,
}
