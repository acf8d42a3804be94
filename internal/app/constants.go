package app

import "time"

// Action names accepted by Dispatch. Nakama registers one RPC per name.
const (
	ActionCreateRoom = "create_room"
	ActionJoinRoom   = "join_room"
	ActionStartRoom  = "start_room"
	ActionMakeBid    = "make_bid"
	ActionPlayCard   = "play_card"
	ActionGetRoom    = "get_room"
)

const (
	// DefaultMaxCommitAttempts bounds the read-compute-replace loop before a conflict is surfaced.
	DefaultMaxCommitAttempts = 3
	// DefaultStoreTimeout bounds every single store call.
	DefaultStoreTimeout = 2 * time.Second
)

// maxRobotMoves caps robot turns driven after one committed action: a full hand of plays plus
// a generous auction.
const maxRobotMoves = 4*13 + 64
