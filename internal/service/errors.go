package service

import "errors"

// Error kinds surfaced by the service. The transport layer maps each to a
// stable response category; anything else is a persistence failure and maps
// to an internal error with details logged, never echoed.
var (
	// ErrValidation marks malformed or missing required input. Raised
	// before any persistence or cache operation runs.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks a referenced id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a caller lacking the role an operation requires.
	ErrForbidden = errors.New("forbidden")
)
