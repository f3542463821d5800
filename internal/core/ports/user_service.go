package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// RegisterInput carries the signup payload.
type RegisterInput struct {
	Username string
	Name     string
	Password string
}

// UserService defines signup and listing of accounts.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
