// Package limiter defines interfaces and implementations for login rate limiting.
package limiter

import (
	"context"
	"time"
)

// Scope separates the two login surfaces that share the limiter table.
type Scope string

const (
	// ScopeUser throttles user login attempts.
	ScopeUser Scope = "user"
	// ScopeCollection throttles collection login attempts.
	ScopeCollection Scope = "collection"
)

// Limiter controls login attempts and temporary lockouts per
// (scope, principal name, hashed client IP).
type Limiter interface {
	// Allow reports whether login is currently allowed and optional retry-after.
	Allow(ctx context.Context, scope Scope, name string, ipHash []byte) (bool, time.Duration, error)
	// Success resets counters after a successful login.
	Success(ctx context.Context, scope Scope, name string, ipHash []byte) error
	// Failure records a failed attempt; may place a temporary block.
	Failure(ctx context.Context, scope Scope, name string, ipHash []byte) (bool, time.Duration, error)
}
