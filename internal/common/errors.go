// Package common defines shared constants and sentinel errors used across
// client and server layers of ForoHub. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrorIntegrity marks input that refers to a related entity which does
	// not exist. It is reported to the client, not treated as a server fault.
	ErrorIntegrity = errors.New("integrity violation")

	// Auth errors. Every token verification failure wraps ErrInvalidToken.
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenCreation = errors.New("token creation failed")
)
