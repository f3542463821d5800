package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Username uniqueness is enforced by the store (unique index); Create returns
// domain.ErrUsernameTaken on a duplicate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// DeleteAll clears the collection. Testing support only.
	DeleteAll(ctx context.Context) error
}
