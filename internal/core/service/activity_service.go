package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the ActivityService that writes audit entries to
// the activity log.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists a single audit entry.
func (s *activityService) Record(ctx context.Context, a domain.Activity) error {
	if err := s.repo.Insert(ctx, &a); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	s.log.Debug().
		Str("blog_id", a.BlogID).
		Str("action", string(a.Action)).
		Msg("activity recorded")
	return nil
}
