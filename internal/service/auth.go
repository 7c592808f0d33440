// Package service contains application services for user authentication and
// collection management.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/BharadwajRachakonda/todo-backend/internal/crypto"
	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
	"github.com/BharadwajRachakonda/todo-backend/internal/limiter"
	"github.com/BharadwajRachakonda/todo-backend/internal/model"
	"github.com/BharadwajRachakonda/todo-backend/internal/repository"
	"github.com/BharadwajRachakonda/todo-backend/internal/token"
)

// AuthService defines user registration, login, and profile operations.
type AuthService interface {
	// Register creates a new user with secure password hashing and
	// returns a signed user token.
	Register(ctx context.Context, name, password string) (string, error)
	// LoginWithIP applies rate-limiting and authenticates the user,
	// returning a signed user token.
	LoginWithIP(ctx context.Context, name, password, ip string) (string, error)
	// Profile returns the authenticated user's record without credential material.
	Profile(ctx context.Context, ident model.UserIdentity) (model.UserView, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Service
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Service, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

// Register creates a new user record with a per-user salt and issues a token.
func (s *AuthServiceImpl) Register(ctx context.Context, name, password string) (string, error) {
	if name == "" || password == "" {
		return "", errors.New("validation: empty name/password")
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return "", err
	}
	u := &model.User{
		ID:      uid,
		Name:    name,
		PwdHash: pkgcrypto.HashPassword([]byte(password), salt),
		Salt:    salt,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return s.tokens.IssueUser(uid, name)
}

// LoginWithIP authenticates with rate limiting by (name, ip). Lookup misses
// and password mismatches are indistinguishable to the caller.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, name, password, ip string) (string, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, limiter.ScopeUser, name, ipHash)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", errs.ErrRateLimited
	}

	u, err := s.users.GetByName(ctx, name)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.Salt, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, limiter.ScopeUser, name, ipHash); ferr == nil && blocked {
			return "", errs.ErrRateLimited
		}
		// lookup miss and bad password collapse into one error
		return "", errs.ErrInvalidCredentials
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, limiter.ScopeUser, name, ipHash)

	return s.tokens.IssueUser(u.ID, u.Name)
}

// Profile loads the user bound to the verified identity.
func (s *AuthServiceImpl) Profile(ctx context.Context, ident model.UserIdentity) (model.UserView, error) {
	u, err := s.users.GetByID(ctx, ident.ID)
	if err != nil {
		return model.UserView{}, fmt.Errorf("load profile: %w", err)
	}
	return u.View(), nil
}
