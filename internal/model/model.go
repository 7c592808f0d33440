// Package model defines domain entities used by services and repositories.
package model

import (
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an account stored on the server. The credential is never
// stored or returned in plaintext.
type User struct {
	ID        uuid.UUID // PK
	Name      string    // unique
	PwdHash   []byte    // Argon2id(password, Salt)
	Salt      []byte    // per-user auth salt
	CreatedAt time.Time
}

// UserView is the credential-free shape returned to callers.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// View strips credential material from a user record.
func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt}
}

// Collection is a password-protected todo container owned by one user.
// The (Author, Title) pair is unique. The owner never appears in the access
// lists; ownership alone grants every permission.
type Collection struct {
	ID          uuid.UUID // PK
	Author      string    // owning user's name
	Title       string
	PwdHash     []byte // Argon2id(password, Salt)
	Salt        []byte // per-collection auth salt
	ReadAccess  []string
	WriteAccess []string
	Todos       map[string]json.RawMessage
	CreatedAt   time.Time
}

// CollectionView is the credential-free shape returned to callers.
type CollectionView struct {
	ID          uuid.UUID                  `json:"id"`
	Author      string                     `json:"author"`
	Title       string                     `json:"title"`
	ReadAccess  []string                   `json:"read_access"`
	WriteAccess []string                   `json:"write_access"`
	Todos       map[string]json.RawMessage `json:"todos"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// View strips credential material from a collection record.
func (c *Collection) View() CollectionView {
	return CollectionView{
		ID:          c.ID,
		Author:      c.Author,
		Title:       c.Title,
		ReadAccess:  c.ReadAccess,
		WriteAccess: c.WriteAccess,
		Todos:       c.Todos,
		CreatedAt:   c.CreatedAt,
	}
}

// CanRead reports whether name may view the collection.
func (c *Collection) CanRead(name string) bool {
	return c.Author == name || contains(c.ReadAccess, name) || contains(c.WriteAccess, name)
}

// CanWrite reports whether name may create or update todos.
func (c *Collection) CanWrite(name string) bool {
	return c.Author == name || contains(c.WriteAccess, name)
}

// IsOwner reports whether name owns the collection.
func (c *Collection) IsOwner(name string) bool { return c.Author == name }

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

// UserIdentity is the principal established from a verified user token.
type UserIdentity struct {
	ID   uuid.UUID
	Name string
}

// CollectionIdentity is the principal established from a verified collection token.
type CollectionIdentity struct {
	ID     uuid.UUID
	Author string
}
