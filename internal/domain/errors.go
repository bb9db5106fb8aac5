package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrRateLimited  = errors.New("rate limited")
)

// Verification-code failure kinds. All map to 401 at the transport layer but the
// kind is surfaced so a client can distinguish "request a new code" from "retype it".
var (
	ErrCodeMismatch    = errors.New("code mismatch")
	ErrCodeExpired     = errors.New("code expired")
	ErrCodeConsumed    = errors.New("code already used")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrCodeDelivery    = errors.New("code delivery failed")
)

// Registration conflict kinds, discriminated so the client can highlight the field.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)
