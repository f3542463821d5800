package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

const collectionBlogs = "blogs"

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection(collectionBlogs)}
}

// mongoBlog is the stored document shape. User is optional: documents created
// before authentication was introduced have no owner.
type mongoBlog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Author    string             `bson:"author"`
	URL       string             `bson:"url"`
	Likes     int                `bson:"likes"`
	User      primitive.ObjectID `bson:"user,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mb mongoBlog) toDomain() domain.Blog {
	b := domain.Blog{
		ID:        mb.ID.Hex(),
		Title:     mb.Title,
		Author:    mb.Author,
		URL:       mb.URL,
		Likes:     mb.Likes,
		CreatedAt: mb.CreatedAt,
	}
	if !mb.User.IsZero() {
		b.UserID = mb.User.Hex()
	}
	return b
}

// parseID converts an id string to an ObjectID, tagging malformed input with
// domain.ErrMalformedID so the error translator can answer 400 instead of 404.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrMalformedID
	}
	return oid, nil
}

func (r *BlogRepository) Insert(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBlog{
		Title:     b.Title,
		Author:    b.Author,
		URL:       b.URL,
		Likes:     b.Likes,
		CreatedAt: b.CreatedAt,
	}
	if b.UserID != "" {
		owner, err := parseID(b.UserID)
		if err != nil {
			return nil, err
		}
		doc.User = owner
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	created := doc.toDomain()
	return &created, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBlog
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}

	b := mb.toDomain()
	return &b, nil
}

// List returns all blogs in natural (insertion) order.
func (r *BlogRepository) List(ctx context.Context) ([]domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Blog
	for cur.Next(ctx) {
		var mb mongoBlog
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode blog: %w", err)
		}
		out = append(out, mb.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return out, nil
}

// Update applies the set fields of u atomically and returns the updated blog.
func (r *BlogRepository) Update(ctx context.Context, id string, u ports.BlogUpdate) (*domain.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Author != nil {
		set["author"] = *u.Author
	}
	if u.URL != nil {
		set["url"] = *u.URL
	}
	if u.Likes != nil {
		set["likes"] = *u.Likes
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mb mongoBlog
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}

	b := mb.toDomain()
	return &b, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("delete all blogs: %w", err)
	}
	return nil
}
