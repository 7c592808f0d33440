// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation
	// (username taken, or a second collection with the same title).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCredentials indicates a failed login. Lookup misses and
	// password mismatches both map here so the caller cannot tell which
	// check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a token whose signature does not verify
	// or whose payload is not the expected variant.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthenticated indicates a missing or unverifiable identity on
	// a protected operation.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrDenied indicates a valid identity with insufficient permission.
	ErrDenied = errors.New("access denied")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
