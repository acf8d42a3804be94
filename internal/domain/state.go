package domain

// RoomState is the lifecycle state of a room.
type RoomState string

const (
	StateWaiting   RoomState = "waiting"
	StateBidding   RoomState = "bidding"
	StatePlaying   RoomState = "playing"
	StateCompleted RoomState = "completed"
)

// GamePhase names the GameData variant that is present.
type GamePhase string

const (
	PhaseBidding   GamePhase = "bidding"
	PhasePlaying   GamePhase = "playing"
	PhaseCompleted GamePhase = "completed"
)

// TricksPerHand is the number of tricks in a complete hand.
const TricksPerHand = 13

// Play is one card played by one seat.
type Play struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// Trick is four plays in play order plus the winning seat.
type Trick struct {
	Cards  []Play `json:"cards"`
	Winner Seat   `json:"winner"`
}

// BiddingState is the game data valid during the auction.
type BiddingState struct {
	Turn  string `json:"turn"`
	Bids  []Bid  `json:"bids"`
	Hands Hands  `json:"hands"`
}

// PlayingState is the game data valid during card play.
type PlayingState struct {
	Turn         string  `json:"turn"`
	Auction      Auction `json:"auction"`
	Hands        Hands   `json:"hands"`
	CurrentTrick []Play  `json:"current_trick"`
	Tricks       []Trick `json:"tricks"`
}

// CompletedState is the game data of a finished hand.
type CompletedState struct {
	Auction Auction `json:"auction"`
	Tricks  []Trick `json:"tricks"`
}

// GameData holds exactly the variant named by Phase.
type GameData struct {
	Phase     GamePhase       `json:"phase"`
	Bidding   *BiddingState   `json:"bidding,omitempty"`
	Playing   *PlayingState   `json:"playing,omitempty"`
	Completed *CompletedState `json:"completed,omitempty"`
}

// Room is the shared aggregate mutated by every action. Version increases by one on each commit.
type Room struct {
	RoomID    string    `json:"room_id"`
	OwnerID   string    `json:"owner_id"`
	RoomName  string    `json:"room_name,omitempty"`
	IsPrivate bool      `json:"is_private"`
	Seats     Seats     `json:"seats"`
	State     RoomState `json:"state"`
	GameData  *GameData `json:"game_data,omitempty"`
	Version   int64     `json:"version"`
	CreatedAt int64     `json:"created_at"`
	UpdatedAt int64     `json:"updated_at"`
}

// Turn returns the occupant id whose action is awaited, or "" outside bidding and playing.
func (r Room) Turn() string {
	if r.GameData == nil {
		return ""
	}
	switch {
	case r.State == StateBidding && r.GameData.Bidding != nil:
		return r.GameData.Bidding.Turn
	case r.State == StatePlaying && r.GameData.Playing != nil:
		return r.GameData.Playing.Turn
	}
	return ""
}

// HandOf returns the cards currently held by seat, or nil when no hand is in progress.
func (r Room) HandOf(seat Seat) []Card {
	if r.GameData == nil {
		return nil
	}
	switch {
	case r.GameData.Bidding != nil:
		return r.GameData.Bidding.Hands.Of(seat)
	case r.GameData.Playing != nil:
		return r.GameData.Playing.Hands.Of(seat)
	}
	return nil
}

// Clone returns a deep copy so transitions never alias the caller's slices.
func (r Room) Clone() Room {
	out := r
	if r.GameData != nil {
		gd := cloneGameData(*r.GameData)
		out.GameData = &gd
	}
	return out
}

func cloneGameData(gd GameData) GameData {
	out := GameData{Phase: gd.Phase}
	if gd.Bidding != nil {
		out.Bidding = &BiddingState{
			Turn:  gd.Bidding.Turn,
			Bids:  cloneBids(gd.Bidding.Bids),
			Hands: gd.Bidding.Hands.clone(),
		}
	}
	if gd.Playing != nil {
		out.Playing = &PlayingState{
			Turn:         gd.Playing.Turn,
			Auction:      cloneAuction(gd.Playing.Auction),
			Hands:        gd.Playing.Hands.clone(),
			CurrentTrick: clonePlays(gd.Playing.CurrentTrick),
			Tricks:       cloneTricks(gd.Playing.Tricks),
		}
	}
	if gd.Completed != nil {
		out.Completed = &CompletedState{
			Auction: cloneAuction(gd.Completed.Auction),
			Tricks:  cloneTricks(gd.Completed.Tricks),
		}
	}
	return out
}

func cloneBids(bids []Bid) []Bid {
	if bids == nil {
		return nil
	}
	return append([]Bid{}, bids...)
}

func clonePlays(plays []Play) []Play {
	if plays == nil {
		return nil
	}
	return append([]Play{}, plays...)
}

func cloneTricks(tricks []Trick) []Trick {
	if tricks == nil {
		return nil
	}
	out := make([]Trick, len(tricks))
	for i, t := range tricks {
		out[i] = Trick{Cards: clonePlays(t.Cards), Winner: t.Winner}
	}
	return out
}

func cloneAuction(a Auction) Auction {
	out := Auction{Bids: cloneBids(a.Bids)}
	if a.Contract != nil {
		c := *a.Contract
		out.Contract = &c
	}
	return out
}
