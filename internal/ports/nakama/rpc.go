package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"bridgeroom/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

type rpcFunc func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

// RegisterRPCs registers one RPC per room action plus the voice token RPC.
func RegisterRPCs(initializer runtime.Initializer, svc *app.Service) error {
	for _, action := range app.Actions() {
		if err := initializer.RegisterRpc(action, actionRPC(svc, action)); err != nil {
			return err
		}
	}
	return initializer.RegisterRpc(RpcRoomVoiceToken, voiceTokenRPC(svc))
}

// actionRPC decodes the payload into an app.Request and dispatches it as the calling user.
//
// Payload: {"room_id": "...", "room_name": "...", "is_private": false, "seat": "N", "call": "1NT", "card": "10H"}
// Returns: {"room": Room} with other seats' hands hidden.
func actionRPC(svc *app.Service, action string) rpcFunc {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if !ok || userID == "" {
			return "", errUnauthenticated
		}

		var req app.Request
		if strings.TrimSpace(payload) != "" {
			if err := json.Unmarshal([]byte(payload), &req); err != nil {
				logger.Warn("Handler: %s: invalid payload from %s: %v", action, userID, err)
				return "", errBadPayload
			}
		}
		req.Action = action
		req.ActorID = userID

		logger = logger.WithField("rpc", action).WithField("user_id", userID)
		if req.RoomID != "" {
			logger = logger.WithField("room_id", req.RoomID)
		}

		room, err := svc.Dispatch(ctx, req)
		if err != nil {
			// The caller's move is committed; only the robots behind it stopped.
			if !errors.Is(err, app.ErrRobotStalled) || room.RoomID == "" {
				return "", toRuntimeError(logger, err)
			}
			logger.Warn("Handler: %v", err)
		}

		out, err := encodeRoom(room, userID)
		if err != nil {
			return "", toRuntimeError(logger, err)
		}
		return out, nil
	}
}

// voiceTokenRPC issues a Vivox token for a seated caller.
//
// Payload: {"room_id": "...", "action": "join" | "login"}; action defaults to join.
// Returns: {"token": "...", "channel": "...", "expires_at": 0}
func voiceTokenRPC(svc *app.Service) rpcFunc {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if !ok || userID == "" {
			return "", errUnauthenticated
		}

		var req struct {
			RoomID string `json:"room_id"`
			Action string `json:"action"`
		}
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", errBadPayload
		}
		if req.Action == "" {
			req.Action = app.VivoxTokenActionJoin
		}
		logger = logger.WithField("rpc", RpcRoomVoiceToken).WithField("user_id", userID).WithField("room_id", req.RoomID)

		grant, err := svc.VoiceToken(ctx, req.RoomID, userID, req.Action)
		if err != nil {
			return "", toRuntimeError(logger, err)
		}

		data, err := json.Marshal(grant)
		if err != nil {
			return "", toRuntimeError(logger, err)
		}
		return string(data), nil
	}
}
