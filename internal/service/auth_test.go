package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
	"github.com/BharadwajRachakonda/todo-backend/internal/limiter"
	"github.com/BharadwajRachakonda/todo-backend/internal/model"
	"github.com/BharadwajRachakonda/todo-backend/internal/repository"
	"github.com/BharadwajRachakonda/todo-backend/internal/token"
)

type fakeUsers struct {
	byName map[string]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byName == nil {
		f.byName = map[string]*model.User{}
	}
	if _, exists := f.byName[u.Name]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byName[u.Name] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByName(_ context.Context, name string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, limiter.Scope, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, limiter.Scope, string, []byte) error {
	l.successCalls++
	return nil
}
func (l *fakeLimiter) Failure(context.Context, limiter.Scope, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

func newAuth(users *fakeUsers, lim *fakeLimiter) (*AuthServiceImpl, *token.Service) {
	toks := token.NewService([]byte("test-secret"))
	return NewAuthService(users, toks, lim), toks
}

func TestAuth_Register_Basics(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	s, toks := newAuth(users, &fakeLimiter{allowOK: true})

	if _, err := s.Register(context.Background(), "", ""); err == nil {
		t.Fatalf("want validation error on empty name/password")
	}

	raw, err := s.Register(context.Background(), "alice", "Aa1!aaaa")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	ident, err := toks.VerifyUser(raw)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if ident.Name != "alice" {
		t.Fatalf("token name=%q, want alice", ident.Name)
	}

	stored := users.byName["alice"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if string(stored.PwdHash) == "Aa1!aaaa" || len(stored.PwdHash) == 0 {
		t.Fatalf("password stored unhashed or empty")
	}
	if len(stored.Salt) == 0 {
		t.Fatalf("missing per-user salt")
	}
}

func TestAuth_Register_DuplicateName(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	s, _ := newAuth(users, &fakeLimiter{allowOK: true})

	if _, err := s.Register(context.Background(), "alice", "Aa1!aaaa"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := s.Register(context.Background(), "alice", "Bb2@bbbb")
	if !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestAuth_RegisterThenLogin_RoundTrip(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	s, toks := newAuth(users, &fakeLimiter{allowOK: true})

	if _, err := s.Register(context.Background(), "alice", "Aa1!aaaa"); err != nil {
		t.Fatalf("register: %v", err)
	}
	raw, err := s.LoginWithIP(context.Background(), "alice", "Aa1!aaaa", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := toks.VerifyUser(raw); err != nil {
		t.Fatalf("login token does not verify: %v", err)
	}
}

func TestAuth_Login_UniformFailure(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	s, _ := newAuth(users, &fakeLimiter{allowOK: true})

	if _, err := s.Register(context.Background(), "alice", "Aa1!aaaa"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// wrong password and unknown name must be the same error
	_, errWrongPwd := s.LoginWithIP(context.Background(), "alice", "Bb2@bbbb", "1.2.3.4")
	_, errNoUser := s.LoginWithIP(context.Background(), "nobody99", "Aa1!aaaa", "1.2.3.4")

	if !errors.Is(errWrongPwd, errs.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", errWrongPwd)
	}
	if !errors.Is(errNoUser, errs.ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", errNoUser)
	}
	if errWrongPwd.Error() != errNoUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errWrongPwd, errNoUser)
	}
}

func TestAuth_Login_RateLimited(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}

	lim := &fakeLimiter{allowOK: false}
	s, _ := newAuth(users, lim)
	if _, err := s.LoginWithIP(context.Background(), "alice", "Aa1!aaaa", "1.2.3.4"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited when blocked, got %v", err)
	}

	lim2 := &fakeLimiter{allowOK: true, failBlocked: true}
	s2, _ := newAuth(users, lim2)
	if _, err := s2.LoginWithIP(context.Background(), "alice", "Aa1!aaaa", "1.2.3.4"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited at failure threshold, got %v", err)
	}
	if lim2.failureCalls != 1 {
		t.Fatalf("failure not recorded")
	}
}

func TestAuth_Profile(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	s, toks := newAuth(users, &fakeLimiter{allowOK: true})

	raw, err := s.Register(context.Background(), "alice", "Aa1!aaaa")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ident, err := toks.VerifyUser(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	view, err := s.Profile(context.Background(), ident)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if view.Name != "alice" || view.ID != ident.ID {
		t.Fatalf("unexpected profile %+v", view)
	}

	_, err = s.Profile(context.Background(), model.UserIdentity{ID: uuid.Must(uuid.NewV4()), Name: "ghost"})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown id, got %v", err)
	}
}
