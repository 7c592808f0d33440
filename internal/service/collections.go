package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/BharadwajRachakonda/todo-backend/internal/access"
	pkgcrypto "github.com/BharadwajRachakonda/todo-backend/internal/crypto"
	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
	"github.com/BharadwajRachakonda/todo-backend/internal/limiter"
	"github.com/BharadwajRachakonda/todo-backend/internal/model"
	"github.com/BharadwajRachakonda/todo-backend/internal/repository"
	"github.com/BharadwajRachakonda/todo-backend/internal/token"
)

// CollectionService defines collection lifecycle, todo-map mutation, and
// access-list management. Every operation that targets an established
// collection takes both the user identity (from the user token) and the
// collection identity (from the collection token); the authorization
// decision always runs against the freshly loaded collection record.
type CollectionService interface {
	// Register creates a password-protected collection owned by the user
	// and returns a signed collection token.
	Register(ctx context.Context, user model.UserIdentity, title, password string) (string, error)
	// LoginWithIP authenticates against a collection's password and
	// returns a signed collection token. claimedAuthor is only a lookup
	// key; it grants nothing by itself.
	LoginWithIP(ctx context.Context, user model.UserIdentity, claimedAuthor, title, password, ip string) (string, error)
	// List returns all collections owned by the user, credentials redacted.
	List(ctx context.Context, user model.UserIdentity) ([]model.CollectionView, error)
	// Get returns the collection if the user may view it.
	Get(ctx context.Context, user model.UserIdentity, coll model.CollectionIdentity) (model.CollectionView, error)
	// UpsertTodo creates or overwrites one todo entry.
	UpsertTodo(ctx context.Context, user model.UserIdentity, coll model.CollectionIdentity, todoTitle string, value json.RawMessage) (model.CollectionView, error)
	// DeleteTodo removes one todo entry; deleting an absent entry is an error.
	DeleteTodo(ctx context.Context, user model.UserIdentity, coll model.CollectionIdentity, todoTitle string) (model.CollectionView, error)
	// UpdateAccess grants read and/or write access to other users.
	UpdateAccess(ctx context.Context, user model.UserIdentity, coll model.CollectionIdentity, newReader, newWriter string) (model.CollectionView, error)
	// Delete removes the user's own collection by title. Only a user
	// token is needed: ownership is enforced by the (author, title)
	// filter itself.
	Delete(ctx context.Context, user model.UserIdentity, title string) error
}

type CollectionServiceImpl struct {
	colls  repository.CollectionRepository
	tokens *token.Service
	lim    limiter.Limiter
}

// NewCollectionService constructs CollectionService with required dependencies.
func NewCollectionService(colls repository.CollectionRepository, tokens *token.Service, lim limiter.Limiter) *CollectionServiceImpl {
	return &CollectionServiceImpl{colls: colls, tokens: tokens, lim: lim}
}

// Register creates the collection with empty access lists and todos.
func (s *CollectionServiceImpl) Register(ctx context.Context, user model.UserIdentity, title, password string) (string, error) {
	if title == "" || password == "" {
		return "", errors.New("validation: empty title/password")
	}
	cid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return "", err
	}
	c := &model.Collection{
		ID:          cid,
		Author:      user.Name,
		Title:       title,
		PwdHash:     pkgcrypto.HashPassword([]byte(password), salt),
		Salt:        salt,
		ReadAccess:  []string{},
		WriteAccess: []string{},
		Todos:       map[string]json.RawMessage{},
	}
	if err := s.colls.Create(ctx, c); err != nil {
		return "", err
	}
	return s.tokens.IssueCollection(cid, user.Name)
}

// LoginWithIP authenticates against the collection's own password. The
// (claimedAuthor, title) pair locates the collection; a lookup miss and a
// password mismatch produce the same error.
func (s *CollectionServiceImpl) LoginWithIP(ctx context.Context, user model.UserIdentity, claimedAuthor, title, password, ip string) (string, error) {
	ipHash := limiter.HashIP(ip)
	limName := claimedAuthor + "/" + title

	allowed, _, err := s.lim.Allow(ctx, limiter.ScopeCollection, limName, ipHash)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", errs.ErrRateLimited
	}

	c, err := s.colls.GetByAuthorTitle(ctx, claimedAuthor, title)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), c.Salt, c.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, limiter.ScopeCollection, limName, ipHash); ferr == nil && blocked {
			return "", errs.ErrRateLimited
		}
		return "", errs.ErrInvalidCredentials
	}

	_ = s.lim.Success(ctx, limiter.ScopeCollection, limName, ipHash)

	return s.tokens.IssueCollection(c.ID, c.Author)
}

// List returns every collection the user owns.
func (s *CollectionServiceImpl) List(ctx context.Context, user model.UserIdentity) ([]model.CollectionView, error) {
	list, err := s.colls.ListByAuthor(ctx, user.Name)
	if err != nil {
		return nil, err
	}
	views := make([]model.CollectionView, 0, len(list))
	for i := range list {
		views = append(views, list[i].View())
	}
	return views, nil
}

// Get loads the collection and checks view permission.
func (s *CollectionServiceImpl) Get(ctx context.Context, user model.UserIdentity, coll model.CollectionIdentity) (model.CollectionView, error) {
	c, err := s.colls.GetByID(ctx, coll.ID)
	if err != nil {
		return model.CollectionView{}, err
	}
	if err := access.Authorize(user, c, access.ViewCollection); err != nil {
		return model.CollectionView{}, err
	}
	return c.View(), nil
}

// UpsertTodo sets todos[todoTitle] = value for owner or write-access members.
// Applying the same (title, value) twice leaves the map unchanged.
func (s *CollectionServiceImpl) UpsertTodo(ctx context.Context, user model.UserIdentity, coll model.CollectionIdentity, todoTitle string, value json.RawMessage) (model.CollectionView, error) {
	if todoTitle == "" || len(value) == 0 {
		return model.CollectionView{}, errors.New("validation: empty todo title/value")
	}
	if !json.Valid(value) {
		return model.CollectionView{}, errors.New("validation: value is not valid JSON")
	}
	c, err := s.colls.GetByID(ctx, coll.ID)
	if err != nil {
		return model.CollectionView{}, err
	}
	if err := access.Authorize(user, c, access.WriteTodo); err != nil {
		return model.CollectionView{}, err
	}
	updated, err := s.colls.SetTodo(ctx, c.ID, todoTitle, value)
	if err != nil {
		return model.CollectionView{}, fmt.Errorf("set todo: %w", err)
	}
	return updated.View(), nil
}

// DeleteTodo removes todos[todoTitle]. Only the owner may delete, and the
// entry must exist: an absent key is ErrNotFound, not a no-op.
func (s *CollectionServiceImpl) DeleteTodo(ctx context.Context, user model.UserIdentity, coll model.CollectionIdentity, todoTitle string) (model.CollectionView, error) {
	c, err := s.colls.GetByID(ctx, coll.ID)
	if err != nil {
		return model.CollectionView{}, err
	}
	if err := access.Authorize(user, c, access.DeleteTodo); err != nil {
		return model.CollectionView{}, err
	}
	if _, ok := c.Todos[todoTitle]; !ok {
		return model.CollectionView{}, fmt.Errorf("todo %q: %w", todoTitle, errs.ErrNotFound)
	}
	updated, err := s.colls.UnsetTodo(ctx, c.ID, todoTitle)
	if err != nil {
		return model.CollectionView{}, fmt.Errorf("unset todo: %w", err)
	}
	return updated.View(), nil
}

// UpdateAccess appends a reader and/or a writer to the access lists.
// Owner-only. Already-present names are left alone.
func (s *CollectionServiceImpl) UpdateAccess(ctx context.Context, user model.UserIdentity, coll model.CollectionIdentity, newReader, newWriter string) (model.CollectionView, error) {
	c, err := s.colls.GetByID(ctx, coll.ID)
	if err != nil {
		return model.CollectionView{}, err
	}
	if err := access.Authorize(user, c, access.ManageAccessLists); err != nil {
		return model.CollectionView{}, err
	}
	if newReader == "" && newWriter == "" {
		return c.View(), nil
	}
	updated, err := s.colls.GrantAccess(ctx, c.ID, newReader, newWriter)
	if err != nil {
		return model.CollectionView{}, fmt.Errorf("grant access: %w", err)
	}
	return updated.View(), nil
}

// Delete removes the collection identified by (user.Name, title). A zero
// affected count means the collection does not exist or belongs to someone
// else; the two cases are indistinguishable on purpose.
func (s *CollectionServiceImpl) Delete(ctx context.Context, user model.UserIdentity, title string) error {
	n, err := s.colls.DeleteByAuthorTitle(ctx, user.Name, title)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
