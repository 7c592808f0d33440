package repository

import (
	"context"
	"encoding/json"

	"github.com/gofrs/uuid/v5"

	"github.com/BharadwajRachakonda/todo-backend/internal/model"
)

// CollectionRepository provides access to collections and their todo maps.
// Mutations are last-write-wins: there is no optimistic concurrency on the
// todos column.
type CollectionRepository interface {
	// Create inserts a new collection. Returns ErrAlreadyExists when the
	// owner already has a collection with the same title.
	Create(ctx context.Context, c *model.Collection) error
	// GetByID loads a collection by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Collection, error)
	// GetByAuthorTitle loads a collection by its unique (author, title) pair.
	GetByAuthorTitle(ctx context.Context, author, title string) (*model.Collection, error)
	// ListByAuthor returns all collections owned by author.
	ListByAuthor(ctx context.Context, author string) ([]model.Collection, error)
	// SetTodo creates or overwrites one todo entry and returns the updated collection.
	SetTodo(ctx context.Context, id uuid.UUID, todoTitle string, value json.RawMessage) (*model.Collection, error)
	// UnsetTodo removes one todo entry and returns the updated collection.
	// The caller is responsible for the existence check.
	UnsetTodo(ctx context.Context, id uuid.UUID, todoTitle string) (*model.Collection, error)
	// GrantAccess appends newReader/newWriter to the respective access list
	// if non-empty and not already present, and returns the updated collection.
	GrantAccess(ctx context.Context, id uuid.UUID, newReader, newWriter string) (*model.Collection, error)
	// DeleteByAuthorTitle removes the collection matching (author, title)
	// and returns the number of rows removed.
	DeleteByAuthorTitle(ctx context.Context, author, title string) (int64, error)
}
