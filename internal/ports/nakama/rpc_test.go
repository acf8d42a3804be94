package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"bridgeroom/internal/app"
	"bridgeroom/internal/domain"
	"bridgeroom/internal/ports/memory"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRPCService(t *testing.T, opts app.Options) *app.Service {
	t.Helper()
	return app.NewService(memory.NewRoomStore(), nil, rand.New(rand.NewSource(7)), opts)
}

func userCtx(userID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
}

func callRoomRPC(t *testing.T, svc *app.Service, action, userID, payload string) (domain.Room, error) {
	t.Helper()
	raw, err := actionRPC(svc, action)(userCtx(userID), noopLogger{}, nil, nil, payload)
	if err != nil {
		return domain.Room{}, err
	}
	var resp roomResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return resp.Room, nil
}

func requireCode(t *testing.T, err error, code int) {
	t.Helper()
	var rtErr *runtime.Error
	require.True(t, errors.As(err, &rtErr), "expected runtime error, got %v", err)
	assert.Equal(t, code, int(rtErr.Code), "message: %s", rtErr.Message)
}

func TestRoomRPCFlow(t *testing.T) {
	svc := newRPCService(t, app.Options{})

	room, err := callRoomRPC(t, svc, RpcCreateRoom, "owner", `{"room_name":"Table 1"}`)
	require.NoError(t, err)
	assert.Equal(t, "owner", room.OwnerID)
	assert.Equal(t, "Table 1", room.RoomName)
	assert.Equal(t, int64(1), room.Version)
	_, err = domain.SeatOf(room, "owner")
	require.NoError(t, err)

	payload := fmt.Sprintf(`{"room_id":%q}`, room.RoomID)
	joined, err := callRoomRPC(t, svc, RpcJoinRoom, "alice", payload)
	require.NoError(t, err)
	assert.Equal(t, int64(2), joined.Version)

	started, err := callRoomRPC(t, svc, RpcStartRoom, "owner", payload)
	require.NoError(t, err)
	require.Equal(t, domain.StateBidding, started.State)
	assert.True(t, started.Seats.Full())

	// Each player sees only their own hand.
	ownerSeat, _ := domain.SeatOf(started, "owner")
	for _, seat := range domain.SeatOrder {
		hand := started.GameData.Bidding.Hands.Of(seat)
		if seat == ownerSeat {
			assert.Len(t, hand, 13)
		} else {
			assert.Empty(t, hand, "seat %s should be hidden", seat)
		}
	}

	got, err := callRoomRPC(t, svc, RpcGetRoom, "alice", payload)
	require.NoError(t, err)
	aliceSeat, _ := domain.SeatOf(got, "alice")
	assert.Len(t, got.GameData.Bidding.Hands.Of(aliceSeat), 13)
	assert.Empty(t, got.GameData.Bidding.Hands.Of(ownerSeat))
}

func TestRoomRPCErrors(t *testing.T) {
	svc := newRPCService(t, app.Options{})
	room, err := callRoomRPC(t, svc, RpcCreateRoom, "owner", "")
	require.NoError(t, err)
	ownerSeat, _ := domain.SeatOf(room, "owner")
	payload := fmt.Sprintf(`{"room_id":%q}`, room.RoomID)

	tests := []struct {
		name    string
		action  string
		userID  string
		payload string
		code    int
	}{
		{name: "Malformed payload", action: RpcJoinRoom, userID: "alice", payload: `{"room_id":`, code: codeInvalidArgument},
		{name: "Missing room id", action: RpcGetRoom, userID: "alice", payload: `{}`, code: codeInvalidArgument},
		{name: "Unknown room", action: RpcGetRoom, userID: "alice", payload: `{"room_id":"nope"}`, code: codeNotFound},
		{name: "Invalid seat", action: RpcJoinRoom, userID: "alice", payload: fmt.Sprintf(`{"room_id":%q,"seat":"X"}`, room.RoomID), code: codeInvalidArgument},
		{name: "Seat taken", action: RpcJoinRoom, userID: "alice", payload: fmt.Sprintf(`{"room_id":%q,"seat":%q}`, room.RoomID, ownerSeat), code: codeFailedPrecondition},
		{name: "Already seated", action: RpcJoinRoom, userID: "owner", payload: payload, code: codeAborted},
		{name: "Not owner", action: RpcStartRoom, userID: "alice", payload: payload, code: codePermissionDenied},
		{name: "Bid before start", action: RpcMakeBid, userID: "owner", payload: fmt.Sprintf(`{"room_id":%q,"call":"1C"}`, room.RoomID), code: codeFailedPrecondition},
		{name: "Unauthenticated", action: RpcGetRoom, userID: "", payload: payload, code: codeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := callRoomRPC(t, svc, tt.action, tt.userID, tt.payload)
			requireCode(t, err, tt.code)
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: disk", app.ErrStoreUnavailable), codeUnavailable},
		{app.ErrCommitConflict, codeAborted},
		{domain.ErrAlreadySeated, codeAborted},
		{fmt.Errorf("%w: r1", app.ErrNotFound), codeNotFound},
		{app.ErrVoiceDisabled, codeUnimplemented},
		{domain.ErrInvalidBid, codeInvalidArgument},
		{domain.ErrNotYourTurn, codePermissionDenied},
		{domain.ErrMustFollowSuit, codeFailedPrecondition},
		{errors.New("boom"), codeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, errorCode(tt.err))
		})
	}

	requireCode(t, toRuntimeError(noopLogger{}, errors.New("pq: connection refused")), codeInternal)
	var rtErr *runtime.Error
	require.True(t, errors.As(toRuntimeError(noopLogger{}, fmt.Errorf("%w: pq: timeout", app.ErrStoreUnavailable)), &rtErr))
	assert.NotContains(t, rtErr.Message, "pq")
}

type voiceTokenRPCResponse struct {
	Token     string `json:"token"`
	Channel   string `json:"channel"`
	ExpiresAt int64  `json:"expires_at"`
}

func TestRoomVoiceTokenRPC(t *testing.T) {
	svc := newRPCService(t, app.Options{Voice: app.NewVivoxService("test-secret", "issuer", "example.com")})
	room, err := callRoomRPC(t, svc, RpcCreateRoom, "user123", "")
	require.NoError(t, err)
	rpc := voiceTokenRPC(svc)

	// 1. Generate two join tokens.
	payload := fmt.Sprintf(`{"room_id":%q}`, room.RoomID)
	raw1, err := rpc(userCtx("user123"), noopLogger{}, nil, nil, payload)
	require.NoError(t, err)
	resp1 := parseToken(t, raw1)
	raw2, err := rpc(userCtx("user123"), noopLogger{}, nil, nil, payload)
	require.NoError(t, err)
	resp2 := parseToken(t, raw2)

	assert.Equal(t, app.RoomChannelName(room.RoomID), resp1.Channel)
	assert.NotZero(t, resp1.ExpiresAt)

	// 2. Validate claims.
	claims1 := parseVivoxClaims(t, resp1.Token, "test-secret")
	claims2 := parseVivoxClaims(t, resp2.Token, "test-secret")

	assertClaim(t, claims1, "iss", "issuer")
	assertClaim(t, claims1, "sub", "user123")
	assertClaim(t, claims1, "vxa", app.VivoxTokenActionJoin)
	assertClaim(t, claims1, "f", "sip:.issuer.user123.@example.com")
	assertClaim(t, claims1, "t", "sip:confctl-g-"+app.RoomChannelName(room.RoomID)+"@example.com")

	// 3. vxi must be unique per token.
	if claims1["vxi"] == claims2["vxi"] {
		t.Errorf("vxi claim must be unique per token. Got %v for both.", claims1["vxi"])
	}

	// 4. Strangers, unknown actions and disabled voice are rejected.
	_, err = rpc(userCtx("stranger"), noopLogger{}, nil, nil, payload)
	requireCode(t, err, codePermissionDenied)

	badAction := fmt.Sprintf(`{"room_id":%q,"action":"shout"}`, room.RoomID)
	_, err = rpc(userCtx("user123"), noopLogger{}, nil, nil, badAction)
	requireCode(t, err, codeInvalidArgument)

	disabled := voiceTokenRPC(newRPCService(t, app.Options{}))
	_, err = disabled(userCtx("user123"), noopLogger{}, nil, nil, payload)
	requireCode(t, err, codeUnimplemented)
}

func parseToken(t *testing.T, jsonRaw string) voiceTokenRPCResponse {
	t.Helper()
	var resp voiceTokenRPCResponse
	if err := json.Unmarshal([]byte(jsonRaw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp
}

func parseVivoxClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func assertClaim(t *testing.T, claims jwt.MapClaims, key, expected string) {
	t.Helper()
	val, ok := claims[key]
	if !ok {
		t.Errorf("missing claim: %s", key)
		return
	}
	str, ok := val.(string)
	if !ok {
		t.Errorf("claim %s is not a string: %v", key, val)
		return
	}
	if str != expected {
		t.Errorf("claim %s = %s, want %s", key, str, expected)
	}
}
