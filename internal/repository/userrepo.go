// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/BharadwajRachakonda/todo-backend/internal/model"
)

// UserRepository provides CRUD access to user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns ErrAlreadyExists if the name is taken.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByName loads a user by unique name.
	GetByName(ctx context.Context, name string) (*model.User, error)
}
