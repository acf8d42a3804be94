package nakama

import (
	"errors"

	"bridgeroom/internal/app"
	"bridgeroom/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes understood by Nakama clients.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeAborted            = 10
	codeUnimplemented      = 12
	codeInternal           = 13
	codeUnavailable        = 14
	codeUnauthenticated    = 16
)

var (
	errUnauthenticated = runtime.NewError("authentication required", codeUnauthenticated)
	errBadPayload      = runtime.NewError("invalid payload", codeInvalidArgument)
)

var errorCodes = []struct {
	target error
	code   int
}{
	// Infrastructure first: these wrap store errors that may carry other sentinels.
	{app.ErrStoreUnavailable, codeUnavailable},
	{domain.ErrConflict, codeAborted},
	{app.ErrNotFound, codeNotFound},
	{app.ErrVoiceDisabled, codeUnimplemented},

	{domain.ErrValidation, codeInvalidArgument},
	{domain.ErrInvalidSeat, codeInvalidArgument},
	{domain.ErrInvalidBid, codeInvalidArgument},
	{domain.ErrInvalidCardFormat, codeInvalidArgument},
	{app.ErrUnknownAction, codeInvalidArgument},

	{domain.ErrNotOwner, codePermissionDenied},
	{domain.ErrNotYourTurn, codePermissionDenied},
	{domain.ErrNotSeated, codePermissionDenied},

	{domain.ErrWrongState, codeFailedPrecondition},
	{domain.ErrWrongPhase, codeFailedPrecondition},
	{domain.ErrSeatTaken, codeFailedPrecondition},
	{domain.ErrNoSeatsAvailable, codeFailedPrecondition},
	{domain.ErrCardNotInHand, codeFailedPrecondition},
	{domain.ErrMustFollowSuit, codeFailedPrecondition},
	{domain.ErrInvalidDeal, codeFailedPrecondition},
}

// errorCode returns the status code for err, codeInternal when nothing matches.
func errorCode(err error) int {
	for _, e := range errorCodes {
		if errors.Is(err, e.target) {
			return e.code
		}
	}
	return codeInternal
}

// toRuntimeError logs err and converts it for the client. Infrastructure failures get a generic
// message so storage details never leave the server.
func toRuntimeError(logger runtime.Logger, err error) error {
	code := errorCode(err)
	switch code {
	case codeInternal:
		logger.Error("Handler: %v", err)
		return runtime.NewError("internal error", code)
	case codeUnavailable:
		logger.Error("Handler: %v", err)
		return runtime.NewError("room store unavailable, retry", code)
	default:
		logger.Warn("Handler: rejected: %v", err)
		return runtime.NewError(err.Error(), code)
	}
}
