package session

import "errors"

var (
	// ErrStorageNil is returned when a Manager is created without storage.
	ErrStorageNil = errors.New("session storage is nil")
	// ErrSecretEmpty is returned when no signing secret is configured.
	ErrSecretEmpty = errors.New("session secret can not be empty")
	// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrSessionNotFound is returned when the token is valid but its record is gone.
	ErrSessionNotFound = errors.New("session not found")
)
