// Package token issues and verifies the two identity token variants: user
// tokens and collection tokens. Both are HS256 JWTs over one injected
// secret, but they carry disjoint claim payloads and are never
// interchangeable: verifying a token against the wrong variant fails.
package token

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
	"github.com/BharadwajRachakonda/todo-backend/internal/model"
)

// userPayload is the user-variant claim object.
type userPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// collectionPayload is the collection-variant claim object.
type collectionPayload struct {
	ID     string `json:"id"`
	Author string `json:"author"`
}

// claims holds exactly one of the two variant payloads. Tokens are
// deliberately unbounded in time: possession of a valid signature is the
// whole proof of identity.
type claims struct {
	User       *userPayload       `json:"user,omitempty"`
	Collection *collectionPayload `json:"collection,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and verifies identity tokens with a process-wide secret
// configured at startup.
type Service struct {
	secret []byte
}

// NewService constructs a token service with the given signing secret.
func NewService(secret []byte) *Service {
	return &Service{secret: secret}
}

// IssueUser signs a user-variant token for the given account.
func (s *Service) IssueUser(id uuid.UUID, name string) (string, error) {
	return s.sign(claims{
		User: &userPayload{ID: id.String(), Name: name},
	})
}

// IssueCollection signs a collection-variant token bound to the collection
// and its owning author.
func (s *Service) IssueCollection(id uuid.UUID, author string) (string, error) {
	return s.sign(claims{
		Collection: &collectionPayload{ID: id.String(), Author: author},
	})
}

func (s *Service) sign(c claims) (string, error) {
	c.IssuedAt = jwt.NewNumericDate(time.Now())
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(s.secret)
}

// VerifyUser checks the signature and extracts a user identity. A valid
// signature over a collection payload is still ErrInvalidToken.
func (s *Service) VerifyUser(raw string) (model.UserIdentity, error) {
	c, err := s.parse(raw)
	if err != nil {
		return model.UserIdentity{}, err
	}
	if c.User == nil || c.User.Name == "" {
		return model.UserIdentity{}, errs.ErrInvalidToken
	}
	id, err := uuid.FromString(c.User.ID)
	if err != nil {
		return model.UserIdentity{}, errs.ErrInvalidToken
	}
	return model.UserIdentity{ID: id, Name: c.User.Name}, nil
}

// VerifyCollection checks the signature and extracts a collection identity.
// A valid signature over a user payload is still ErrInvalidToken.
func (s *Service) VerifyCollection(raw string) (model.CollectionIdentity, error) {
	c, err := s.parse(raw)
	if err != nil {
		return model.CollectionIdentity{}, err
	}
	if c.Collection == nil || c.Collection.Author == "" {
		return model.CollectionIdentity{}, errs.ErrInvalidToken
	}
	id, err := uuid.FromString(c.Collection.ID)
	if err != nil {
		return model.CollectionIdentity{}, errs.ErrInvalidToken
	}
	return model.CollectionIdentity{ID: id, Author: c.Collection.Author}, nil
}

func (s *Service) parse(raw string) (*claims, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, errs.ErrInvalidToken
	}
	return &c, nil
}
