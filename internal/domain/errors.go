package domain

import "errors"

var (
	// ErrConflict is returned when a username is already registered.
	ErrConflict = errors.New("username already taken")
	// ErrNotFound is returned when an operation references an unknown username.
	ErrNotFound = errors.New("user not found")
	// ErrConfiguration marks a missing or invalid startup setting.
	// Callers must treat it as fatal.
	ErrConfiguration = errors.New("invalid configuration")
)
