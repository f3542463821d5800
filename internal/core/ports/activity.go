package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// ActivityRepository persists audit entries to the append-only activity log.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// DeleteAll clears the collection. Testing support only.
	DeleteAll(ctx context.Context) error
}

// ActivityService processes a single audit entry.
type ActivityService interface {
	Record(ctx context.Context, a domain.Activity) error
}

// ActivitySink accepts audit entries for asynchronous processing. Enqueue must
// never fail the caller; a full queue or a down store is the sink's problem.
type ActivitySink interface {
	Enqueue(a domain.Activity)
}
