package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloglist/bloglist-api/internal/api/metrics"
	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

// BlogService implements the blog use cases. Ownership is enforced on Remove
// only; Update is open to any caller so anonymous readers can bump likes.
type BlogService struct {
	blogs    ports.BlogRepository
	users    ports.UserRepository
	activity ports.ActivitySink
	log      zerolog.Logger
}

// NewBlogService returns a BlogService. activity may be nil to disable the
// audit trail.
func NewBlogService(blogs ports.BlogRepository, users ports.UserRepository, activity ports.ActivitySink, log zerolog.Logger) *BlogService {
	return &BlogService{blogs: blogs, users: users, activity: activity, log: log}
}

// List returns all blogs in insertion order with their owners resolved.
func (s *BlogService) List(ctx context.Context) ([]domain.BlogWithOwner, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]domain.BlogWithOwner, 0, len(blogs))
	for _, b := range blogs {
		item := domain.BlogWithOwner{Blog: b}
		if u, ok := byID[b.UserID]; ok {
			item.Owner = &domain.BlogOwner{ID: u.ID, Username: u.Username, Name: u.Name}
		}
		out = append(out, item)
	}
	return out, nil
}

// Create persists a new blog owned by the caller. Likes defaults to 0 when
// absent from the payload.
func (s *BlogService) Create(ctx context.Context, input ports.CreateBlogInput, callerUserID string) (*domain.BlogWithOwner, error) {
	if callerUserID == "" {
		return nil, domain.ErrTokenMissing
	}
	if input.Title == "" || input.URL == "" {
		return nil, domain.ErrBlogInvalid
	}

	likes := 0
	if input.Likes != nil {
		likes = *input.Likes
	}

	blog := &domain.Blog{
		Title:     input.Title,
		Author:    input.Author,
		URL:       input.URL,
		Likes:     likes,
		UserID:    callerUserID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.blogs.Insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	metrics.BlogsCreatedTotal.Inc()
	s.record(domain.Activity{BlogID: created.ID, Action: domain.ActivityCreated, UserID: callerUserID})
	s.log.Info().Str("blog_id", created.ID).Str("user_id", callerUserID).Msg("blog created")

	return s.withOwner(ctx, created), nil
}

// Update applies the set fields of u to the blog. No ownership check: the
// update path stays open to unauthenticated callers.
func (s *BlogService) Update(ctx context.Context, id string, u ports.BlogUpdate) (*domain.BlogWithOwner, error) {
	if u.IsEmpty() {
		blog, err := s.blogs.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return s.withOwner(ctx, blog), nil
	}

	blog, err := s.blogs.Update(ctx, id, u)
	if err != nil {
		return nil, err
	}

	s.record(domain.Activity{BlogID: blog.ID, Action: domain.ActivityUpdated})
	return s.withOwner(ctx, blog), nil
}

// Remove deletes the blog when the caller owns it. Ownerless legacy records
// cannot be deleted through the API.
func (s *BlogService) Remove(ctx context.Context, id string, callerUserID string) error {
	if callerUserID == "" {
		return domain.ErrTokenMissing
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.UserID != callerUserID {
		return domain.ErrNotOwner
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	metrics.BlogsDeletedTotal.Inc()
	s.record(domain.Activity{BlogID: id, Action: domain.ActivityDeleted, UserID: callerUserID})
	s.log.Info().Str("blog_id", id).Str("user_id", callerUserID).Msg("blog deleted")
	return nil
}

func (s *BlogService) withOwner(ctx context.Context, blog *domain.Blog) *domain.BlogWithOwner {
	out := &domain.BlogWithOwner{Blog: *blog}
	if blog.UserID == "" {
		return out
	}
	owner, err := s.users.FindByID(ctx, blog.UserID)
	if err != nil {
		// Dangling owner reference: keep the blog, drop the owner view.
		s.log.Warn().Err(err).Str("blog_id", blog.ID).Str("user_id", blog.UserID).Msg("failed to resolve blog owner")
		return out
	}
	out.Owner = &domain.BlogOwner{ID: owner.ID, Username: owner.Username, Name: owner.Name}
	return out
}

func (s *BlogService) record(a domain.Activity) {
	if s.activity == nil {
		return
	}
	a.At = time.Now().UTC()
	s.activity.Enqueue(a)
}
