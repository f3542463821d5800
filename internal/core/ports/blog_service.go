package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// CreateBlogInput carries the data for a new blog. Likes is a pointer so the
// service can distinguish "absent" (defaults to 0) from an explicit value.
type CreateBlogInput struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// BlogService defines the use-case operations of the blog API.
//
// Ownership policy is deliberately asymmetric per operation: Remove requires
// the caller to own the blog, Update accepts any caller (anonymous likes).
type BlogService interface {
	List(ctx context.Context) ([]domain.BlogWithOwner, error)
	Create(ctx context.Context, input CreateBlogInput, callerUserID string) (*domain.BlogWithOwner, error)
	Update(ctx context.Context, id string, u BlogUpdate) (*domain.BlogWithOwner, error)
	Remove(ctx context.Context, id string, callerUserID string) error
}
