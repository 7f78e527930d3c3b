// internal/app/store/news/newsstore.go
package news

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/htmlsanitize"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/slug"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Store provides access to the news collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new news store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("news")}
}

// slugTaken reports whether a slug field value is already used by another
// article. The owning article's own id is excluded so updates that keep
// the same title do not collide with themselves. Lookup failures surface
// as errors so the assigner aborts instead of probing a broken collection.
func (s *Store) slugTaken(ctx context.Context, field, candidate string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{field: candidate}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateInput contains the input for creating a news article.
type CreateInput struct {
	Title         string
	JapaneseTitle string
	Summary       string
	Content       string
	Image         models.ImageAsset
	PublishedAt   *time.Time
}

// Create inserts a new article with freshly assigned slugs.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.News, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}

	now := time.Now().UTC()
	a := &models.News{
		Title:         title,
		JapaneseTitle: strings.TrimSpace(in.JapaneseTitle),
		Summary:       in.Summary,
		Content:       htmlsanitize.Normalize(in.Content),
		Image:         in.Image,
		IsActive:      true,
		PublishedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.PublishedAt != nil {
		a.PublishedAt = in.PublishedAt.UTC()
	}

	var err error
	a.Slug, err = slug.Assign("news", a.Title, func(c string) (bool, error) {
		return s.slugTaken(ctx, "slug", c, primitive.NilObjectID)
	})
	if err != nil {
		return nil, err
	}
	if a.JapaneseTitle != "" {
		a.JapaneseSlug, err = slug.AssignJapanese("news", a.JapaneseTitle, func(c string) (bool, error) {
			return s.slugTaken(ctx, "japanese_slug", c, primitive.NilObjectID)
		})
		if err != nil {
			return nil, err
		}
	}

	res, err := s.c.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("slug", a.Slug)
		}
		return nil, err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return a, nil
}

// UpdateInput contains the optional fields for updating an article.
// Nil fields are left unchanged. Changing a title regenerates the slug
// derived from it; all other updates leave slugs untouched.
type UpdateInput struct {
	Title         *string
	JapaneseTitle *string
	Summary       *string
	Content       *string
	Image         *models.ImageAsset
	PublishedAt   *time.Time
}

// Update applies a partial update to one article.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*models.News, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		if t != a.Title {
			a.Title = t
			a.Slug, err = slug.Assign("news", t, func(c string) (bool, error) {
				return s.slugTaken(ctx, "slug", c, id)
			})
			if err != nil {
				return nil, err
			}
		}
	}
	if in.JapaneseTitle != nil {
		t := strings.TrimSpace(*in.JapaneseTitle)
		if t != a.JapaneseTitle {
			a.JapaneseTitle = t
			a.JapaneseSlug = ""
			if t != "" {
				a.JapaneseSlug, err = slug.AssignJapanese("news", t, func(c string) (bool, error) {
					return s.slugTaken(ctx, "japanese_slug", c, id)
				})
				if err != nil {
					return nil, err
				}
			}
		}
	}
	if in.Summary != nil {
		a.Summary = *in.Summary
	}
	if in.Content != nil {
		a.Content = htmlsanitize.Normalize(*in.Content)
	}
	if in.Image != nil {
		a.Image = *in.Image
	}
	if in.PublishedAt != nil {
		a.PublishedAt = in.PublishedAt.UTC()
	}
	a.UpdatedAt = time.Now().UTC()

	_, err = s.c.ReplaceOne(ctx, bson.M{"_id": id}, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("slug", a.Slug)
		}
		return nil, err
	}
	return a, nil
}

// GetByID returns one article by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.News, error) {
	var a models.News
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("news article")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Resolve returns one article by slug, japanese slug, or hex id. Detail
// pages link by slug but older links may still carry raw ids.
func (s *Store) Resolve(ctx context.Context, slugOrID string) (*models.News, error) {
	or := []bson.M{
		{"slug": slugOrID},
		{"japanese_slug": slugOrID},
	}
	if id, err := primitive.ObjectIDFromHex(slugOrID); err == nil {
		or = append(or, bson.M{"_id": id})
	}
	var a models.News
	err := s.c.FindOne(ctx, bson.M{"$or": or}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("news article")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Active returns published, active articles newest first.
func (s *Store) Active(ctx context.Context) ([]models.News, error) {
	return s.list(ctx, bson.M{"is_active": true})
}

// All returns every article newest first, for admin tooling.
func (s *Store) All(ctx context.Context) ([]models.News, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.News, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.News{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleActive flips an article's active flag and returns the new value.
func (s *Store) ToggleActive(ctx context.Context, id primitive.ObjectID) (bool, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !a.IsActive
	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  next,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return false, err
	}
	return next, nil
}

// Delete removes one article. The caller is responsible for cleaning up
// the article's stored image variants.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.News, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return nil, err
	}
	return a, nil
}
