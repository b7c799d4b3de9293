// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import "errors"

var (
	// ErrValidation marks a constraint violation (bad rating, bad date
	// range). Rejected before any write happens.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a dangling reference: the user, place, destination
	// or trip the caller named does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate unique key or a delete of a missing row.
	ErrConflict = errors.New("conflict")

	// ErrStorage marks durability-layer failure. It aborts the whole unit of
	// work; the core never retries.
	ErrStorage = errors.New("storage error")
)
