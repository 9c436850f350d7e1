package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials provided")
	ErrNotFound             = errors.New("requested resource not found")
	ErrProviderUnavailable  = errors.New("identity provider unavailable")
	ErrUnknownOAuthProvider = errors.New("unknown oauth provider")
	ErrNoSession            = errors.New("no active session")
)

// AuthError is returned by sign-in, sign-up and OAuth operations. Op names the
// operation that failed ("sign_in", "sign_up", "oauth"). It is always
// recoverable: callers surface it as a notification.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Message returns a user-facing description of the failure.
func (e *AuthError) Message() string {
	switch {
	case errors.Is(e.Err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(e.Err, ErrUserAlreadyExists):
		return "A user with this email already exists."
	case errors.Is(e.Err, ErrUnknownOAuthProvider):
		return "That sign-in provider is not available."
	default:
		return "We could not reach the sign-in service. Please try again."
	}
}

// PreferenceLookupError reports that the onboarding preferences of a user could
// not be read. The session resolver treats it as "onboarding incomplete".
type PreferenceLookupError struct {
	UserID string
	Err    error
}

func (e *PreferenceLookupError) Error() string {
	return fmt.Sprintf("preference lookup for %s: %v", e.UserID, e.Err)
}

func (e *PreferenceLookupError) Unwrap() error { return e.Err }

// SignOutError reports a failed sign-out at the provider. The local session is
// cleared regardless.
type SignOutError struct {
	Err error
}

func (e *SignOutError) Error() string {
	return fmt.Sprintf("sign out: %v", e.Err)
}

func (e *SignOutError) Unwrap() error { return e.Err }
