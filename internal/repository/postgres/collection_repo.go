package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
	"github.com/BharadwajRachakonda/todo-backend/internal/model"
)

// CollectionRepo implements CollectionRepository using PostgreSQL. The todo
// map lives in a JSONB column; access lists are TEXT[] with insertion
// guarded in SQL so no de-duplication pass is ever needed.
type CollectionRepo struct{ db *DB }

// NewCollectionRepo constructs a collection repository.
func NewCollectionRepo(db *DB) *CollectionRepo { return &CollectionRepo{db: db} }

const collectionCols = `id, author, title, pwd_hash, salt, read_access, write_access, todos, created_at`

// Create inserts a new collection row.
func (r *CollectionRepo) Create(ctx context.Context, c *model.Collection) error {
	const q = `
INSERT INTO collections (id, author, title, pwd_hash, salt, read_access, write_access, todos)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	todos := c.Todos
	if todos == nil {
		todos = map[string]json.RawMessage{}
	}
	_, err := r.db.Pool.Exec(ctx, q,
		c.ID, c.Author, c.Title, c.PwdHash, c.Salt,
		c.ReadAccess, c.WriteAccess, todos)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a collection by ID.
func (r *CollectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Collection, error) {
	const q = `SELECT ` + collectionCols + ` FROM collections WHERE id=$1`
	return scanCollection(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByAuthorTitle selects a collection by its unique (author, title) pair.
func (r *CollectionRepo) GetByAuthorTitle(ctx context.Context, author, title string) (*model.Collection, error) {
	const q = `SELECT ` + collectionCols + ` FROM collections WHERE author=$1 AND title=$2`
	return scanCollection(r.db.Pool.QueryRow(ctx, q, author, title))
}

// ListByAuthor selects all collections owned by author, oldest first.
func (r *CollectionRepo) ListByAuthor(ctx context.Context, author string) ([]model.Collection, error) {
	const q = `SELECT ` + collectionCols + ` FROM collections WHERE author=$1 ORDER BY created_at`
	rows, err := r.db.Pool.Query(ctx, q, author)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// SetTodo creates or overwrites one key in the todos map. Last write wins.
func (r *CollectionRepo) SetTodo(ctx context.Context, id uuid.UUID, todoTitle string, value json.RawMessage) (*model.Collection, error) {
	const q = `
UPDATE collections
SET todos = jsonb_set(todos, ARRAY[$2], $3::jsonb, true)
WHERE id=$1
RETURNING ` + collectionCols
	return scanCollection(r.db.Pool.QueryRow(ctx, q, id, todoTitle, string(value)))
}

// UnsetTodo removes one key from the todos map. Removing an absent key is a
// no-op at this layer; the service checks existence first.
func (r *CollectionRepo) UnsetTodo(ctx context.Context, id uuid.UUID, todoTitle string) (*model.Collection, error) {
	const q = `
UPDATE collections
SET todos = todos - $2
WHERE id=$1
RETURNING ` + collectionCols
	return scanCollection(r.db.Pool.QueryRow(ctx, q, id, todoTitle))
}

// GrantAccess appends the given names to the access lists unless empty or
// already present.
func (r *CollectionRepo) GrantAccess(ctx context.Context, id uuid.UUID, newReader, newWriter string) (*model.Collection, error) {
	const q = `
UPDATE collections
SET
  read_access  = CASE WHEN $2 <> '' AND NOT ($2 = ANY(read_access))
                 THEN array_append(read_access, $2) ELSE read_access END,
  write_access = CASE WHEN $3 <> '' AND NOT ($3 = ANY(write_access))
                 THEN array_append(write_access, $3) ELSE write_access END
WHERE id=$1
RETURNING ` + collectionCols
	return scanCollection(r.db.Pool.QueryRow(ctx, q, id, newReader, newWriter))
}

// DeleteByAuthorTitle removes the collection matching (author, title).
func (r *CollectionRepo) DeleteByAuthorTitle(ctx context.Context, author, title string) (int64, error) {
	const q = `DELETE FROM collections WHERE author=$1 AND title=$2`
	tag, err := r.db.Pool.Exec(ctx, q, author, title)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanCollection(row pgx.Row) (*model.Collection, error) {
	var c model.Collection
	err := row.Scan(&c.ID, &c.Author, &c.Title, &c.PwdHash, &c.Salt,
		&c.ReadAccess, &c.WriteAccess, &c.Todos, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
