package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrConflict           = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrRateLimited        = errors.New("too many login attempts")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInternal           = errors.New("internal error")
	ErrForbidden          = errors.New("forbidden")
	ErrPaymentNotFound    = errors.New("payment not found")
)

type ValidationReason string

const (
	MissingField      ValidationReason = "missing_field"
	BadUsername       ValidationReason = "bad_username"
	BadEmail          ValidationReason = "bad_email"
	WeakPassword      ValidationReason = "weak_password"
	BadAmount         ValidationReason = "bad_amount"
	BadInstrument     ValidationReason = "bad_instrument"
	BadExpiry         ValidationReason = "bad_expiry"
	BadCode           ValidationReason = "bad_code"
	MalformedEnvelope ValidationReason = "malformed"
)

// ValidationError is returned before any storage call is made.
type ValidationError struct {
	Field  string
	Reason ValidationReason
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field string, reason ValidationReason, msg string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Msg: msg}
}

type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return ErrAccountLocked.Error()
}

func (e *LockedError) Is(target error) bool {
	return target == ErrAccountLocked
}

type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return ErrRateLimited.Error()
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}
