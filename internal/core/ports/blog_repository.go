package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// BlogUpdate carries the fields of a partial blog update. Nil pointers mean
// "leave unchanged"; only present fields are written to the store.
type BlogUpdate struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// IsEmpty reports whether no field is set.
func (u BlogUpdate) IsEmpty() bool {
	return u.Title == nil && u.Author == nil && u.URL == nil && u.Likes == nil
}

// BlogRepository defines persistence operations for blogs.
//
// Implementations must return domain.ErrMalformedID when an id is not in the
// store's addressable format and domain.ErrBlogNotFound when a well-formed id
// matches no document.
type BlogRepository interface {
	Insert(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	// List returns all blogs in insertion order.
	List(ctx context.Context) ([]domain.Blog, error)
	// Update applies the set fields of u atomically and returns the updated blog.
	Update(ctx context.Context, id string, u BlogUpdate) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
	// DeleteAll clears the collection. Testing support only.
	DeleteAll(ctx context.Context) error
}
