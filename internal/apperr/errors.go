// Package apperr defines the sentinel errors shared across services and
// handlers. Handlers translate these into HTTP status codes with errors.Is,
// so services should wrap rather than replace them.
package apperr

import "errors"

var (
	// ErrInvalidInput — a malformed or missing identifier/field in the request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound — a referenced record is absent where presence was assumed.
	ErrNotFound = errors.New("not found")
	// ErrConflict — a uniqueness constraint was violated (e.g. duplicate email).
	ErrConflict = errors.New("already exists")
	// ErrUnauthorized — credentials missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStorage — a persistence read/write failed. Not retried internally.
	ErrStorage = errors.New("storage failure")
	// ErrUnavailable — an auxiliary lookup failed; the fact is unknown rather
	// than false, and callers may proceed without it.
	ErrUnavailable = errors.New("collaborator unavailable")
)
