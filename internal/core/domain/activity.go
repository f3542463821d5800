package domain

import "time"

// ActivityAction identifies the kind of blog mutation being recorded.
type ActivityAction string

const (
	ActivityCreated ActivityAction = "created"
	ActivityUpdated ActivityAction = "updated"
	ActivityDeleted ActivityAction = "deleted"
)

// Activity is a single append-only audit entry for a blog mutation.
// UserID is empty when the mutation was performed anonymously (likes updates
// require no authentication).
type Activity struct {
	BlogID string         `json:"blog_id"`
	Action ActivityAction `json:"action"`
	UserID string         `json:"user_id,omitempty"`
	At     time.Time      `json:"at"`
}
