package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// AuthService issues and verifies bearer tokens.
type AuthService interface {
	// Login checks the credentials and returns a signed token plus the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Verify validates a token string and returns the embedded user id.
	Verify(token string) (string, error)
}

// LoginLimiter throttles repeated failed login attempts per username.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Clear(ctx context.Context, username string) error
}
