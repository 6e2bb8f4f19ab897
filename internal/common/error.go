// Package common defines shared sentinel errors and small helpers used across
// the stores, services and CLI layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate key")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrDuplicateIdentity  = errors.New("username or email already registered")
	ErrMirrorWriteFailed  = errors.New("mirror write failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")

	// Validation errors.
	ErrEmptyField      = errors.New("all fields are required")
	ErrPasswordTooLong = errors.New("password too long")

	// Credential encoding errors.
	ErrMalformedHash = errors.New("malformed password hash")
)
