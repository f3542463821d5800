package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

const collectionActivity = "blog_activity"

// ActivityRepository persists the append-only audit log of blog mutations.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type mongoActivity struct {
	BlogID string    `bson:"blog_id"`
	Action string    `bson:"action"`
	UserID string    `bson:"user_id,omitempty"`
	At     time.Time `bson:"at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivity{
		BlogID: a.BlogID,
		Action: string(a.Action),
		UserID: a.UserID,
		At:     a.At,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("delete all activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "blog_id", Value: 1}, {Key: "at", Value: 1}},
	})
	return err
}
