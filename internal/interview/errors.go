package interview

import "errors"

var (
	// ErrInvalidInput is returned for malformed start or answer parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a session id is unknown.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidState is returned when an answer is submitted to a completed session.
	ErrInvalidState = errors.New("invalid session state")
)
