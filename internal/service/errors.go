package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	// ErrInvalidID is returned when a path or query identifier is not a
	// well-formed UUID. Handlers map it to 400 rather than 404.
	ErrInvalidID = errors.New("invalid ID format")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInviteTokenExpired marks a profile-completion token past its
	// validity window. The account still exists; the invite must be resent.
	ErrInviteTokenExpired = errors.New("profile completion token is expired")

	// ErrProfileAlreadyCompleted guards the one-shot invite flow. Resending
	// an invite to a completed account has nothing to complete.
	ErrProfileAlreadyCompleted = errors.New("profile is already completed")

	// ErrUnknownFileKey is returned when an upload targets an attachment
	// slot outside the declared set.
	ErrUnknownFileKey = errors.New("unknown file key")
)
