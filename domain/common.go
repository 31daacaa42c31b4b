package domain

import (
	"errors"
	"fmt"
)

const (
	SessionCookieName = "session_token"
	UnknownUsername   = "unknown"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageNotAuthenticated     = "not authenticated"

	// Error kinds. Concrete errors wrap exactly one of these so callers can
	// branch with errors.Is on the kind.
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrInvalidPayload   = errors.New("invalid payload")

	ErrTokenNotFound = kind(ErrUnauthenticated, "session token not found")
	ErrTokenInvalid  = kind(ErrUnauthenticated, "session token invalid")
	ErrTokenExpired  = kind(ErrUnauthenticated, "session token expired")
	ErrParseID       = kind(ErrInvalidOperation, "failed to parse id")
)

func kind(k error, msg string) error {
	return fmt.Errorf("%w: %s", k, msg)
}
