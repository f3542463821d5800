package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) DeleteAll(_ context.Context) error {
	r.users = make(map[string]*domain.User)
	return nil
}

func (r *stubUserRepo) add(t *testing.T, username, name, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := r.Create(context.Background(), &domain.User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

type stubLimiter struct {
	blocked  bool
	failures int
	cleared  int
}

func (l *stubLimiter) TooManyAttempts(_ context.Context, _ string) (bool, error) {
	return l.blocked, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, _ string) error {
	l.failures++
	return nil
}

func (l *stubLimiter) Clear(_ context.Context, _ string) error {
	l.cleared++
	return nil
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.add(t, "carol", "Carol C", "s3cret")
	svc := NewAuthService(repo, nil, "secret", zerolog.Nop())

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != seeded.ID {
		t.Fatalf("expected id %s, got %v", seeded.ID, claims["id"])
	}
	if claims["username"] != "carol" {
		t.Fatalf("expected username carol, got %v", claims["username"])
	}
	if _, hasExp := claims["exp"]; hasExp {
		t.Fatalf("token must not carry an exp claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, "dave", "Dave D", "goodpass")
	svc := NewAuthService(repo, nil, "secret", zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", zerolog.Nop())

	// Unknown username yields the same error as a wrong password.
	if _, _, err := svc.Login(context.Background(), "nobody", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, "erin", "Erin E", "pass")
	limiter := &stubLimiter{blocked: true}
	svc := NewAuthService(repo, limiter, "secret", zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "erin", "pass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_RecordsFailuresAndClears(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, "frank", "Frank F", "pass")
	limiter := &stubLimiter{}
	svc := NewAuthService(repo, limiter, "secret", zerolog.Nop())

	_, _, _ = svc.Login(context.Background(), "frank", "wrong")
	if limiter.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", limiter.failures)
	}

	if _, _, err := svc.Login(context.Background(), "frank", "pass"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if limiter.cleared != 1 {
		t.Fatalf("expected limiter cleared once, got %d", limiter.cleared)
	}
}

func TestAuthService_Verify_Roundtrip(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.add(t, "gina", "Gina G", "pass")
	svc := NewAuthService(repo, nil, "secret", zerolog.Nop())

	token, _, err := svc.Login(context.Background(), "gina", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if id != seeded.ID {
		t.Fatalf("expected id %s, got %s", seeded.ID, id)
	}
}

func TestAuthService_Verify_Invalid(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, "secret", zerolog.Nop())

	cases := map[string]string{
		"empty":     "",
		"malformed": "not-a-token",
	}
	for name, tok := range cases {
		if _, err := svc.Verify(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestAuthService_Verify_WrongSecret(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, "hank", "Hank H", "pass")

	issuer := NewAuthService(repo, nil, "secret-a", zerolog.Nop())
	verifier := NewAuthService(repo, nil, "secret-b", zerolog.Nop())

	token, _, err := issuer.Login(context.Background(), "hank", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
