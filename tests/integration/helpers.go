package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-go/v2"
)

const (
	ServerKey = "defaultkey"
	Host      = "127.0.0.1"
	Port      = 7350
)

// Room mirrors the JSON room returned by the room RPCs.
type Room struct {
	RoomID   string            `json:"room_id"`
	OwnerID  string            `json:"owner_id"`
	Seats    map[string]string `json:"seats"`
	State    string            `json:"state"`
	Version  int64             `json:"version"`
	GameData *struct {
		Phase   string `json:"phase"`
		Bidding *struct {
			Turn  string              `json:"turn"`
			Hands map[string][]string `json:"hands"`
		} `json:"bidding"`
	} `json:"game_data"`
}

type TestClient struct {
	Client  *nakama.Client
	Session *nakama.Session
	UserID  string
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()
	if os.Getenv("BRIDGE_INTEGRATION") == "" {
		t.Skip("set BRIDGE_INTEGRATION=1 with a Nakama server on 127.0.0.1:7350")
	}
	client := nakama.NewClient(ServerKey, Host, Port, false)

	// Create unique ID
	deviceID := fmt.Sprintf("test_device_%d", time.Now().UnixNano())

	session, err := client.AuthenticateDevice(context.Background(), deviceID, true, "")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}

	return &TestClient{
		Client:  client,
		Session: session,
		UserID:  session.UserId,
	}
}

// Call invokes a room RPC and decodes the returned room.
func (tc *TestClient) Call(t *testing.T, rpcID string, payload any) (Room, error) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, rpcID, string(body))
	if err != nil {
		return Room{}, err
	}

	var resp struct {
		Room Room `json:"room"`
	}
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil {
		t.Fatalf("RPC %s returned invalid JSON: %v", rpcID, err)
	}
	return resp.Room, nil
}

// MustCall is Call that fails the test on error.
func (tc *TestClient) MustCall(t *testing.T, rpcID string, payload any) Room {
	t.Helper()
	room, err := tc.Call(t, rpcID, payload)
	if err != nil {
		t.Fatalf("RPC %s failed: %v", rpcID, err)
	}
	return room
}
