// Package common defines shared constants and sentinel errors used across
// the vault client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrPersistence marks a failure of the backing key-value store. It is
	// always wrapped together with the underlying driver error.
	ErrPersistence = errors.New("persistence failure")

	// ErrorUnauthorized means there is no active session or the
	// credentials did not match.
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
