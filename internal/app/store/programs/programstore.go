// internal/app/store/programs/programstore.go
package programs

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

// Store provides access to the programs collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new programs store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("programs")}
}

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

// CreateInput contains the input for creating a program article.
type CreateInput struct {
	Title         string
	JapaneseTitle string
	Summary       string
	Content       string
	Image         models.ImageAsset
	PublishedAt   *time.Time
}

// Create inserts a new program with freshly assigned slugs.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.Program, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}

	now := time.Now().UTC()
	p := &models.Program{
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
		p.PublishedAt = in.PublishedAt.UTC()
	}

	var err error
	p.Slug, err = slug.Assign("program", p.Title, func(c string) (bool, error) {
		return s.slugTaken(ctx, "slug", c, primitive.NilObjectID)
	})
	if err != nil {
		return nil, err
	}
	if p.JapaneseTitle != "" {
		p.JapaneseSlug, err = slug.AssignJapanese("program", p.JapaneseTitle, func(c string) (bool, error) {
			return s.slugTaken(ctx, "japanese_slug", c, primitive.NilObjectID)
		})
		if err != nil {
			return nil, err
		}
	}

	res, err := s.c.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("slug", p.Slug)
		}
		return nil, err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

// UpdateInput contains the optional fields for updating a program. Nil
// fields are left unchanged; slugs regenerate only when their source
// title changes.
type UpdateInput struct {
	Title         *string
	JapaneseTitle *string
	Summary       *string
	Content       *string
	Image         *models.ImageAsset
	PublishedAt   *time.Time
}

// Update applies a partial update to one program.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*models.Program, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		if t != p.Title {
			p.Title = t
			p.Slug, err = slug.Assign("program", t, func(c string) (bool, error) {
				return s.slugTaken(ctx, "slug", c, id)
			})
			if err != nil {
				return nil, err
			}
		}
	}
	if in.JapaneseTitle != nil {
		t := strings.TrimSpace(*in.JapaneseTitle)
		if t != p.JapaneseTitle {
			p.JapaneseTitle = t
			p.JapaneseSlug = ""
			if t != "" {
				p.JapaneseSlug, err = slug.AssignJapanese("program", t, func(c string) (bool, error) {
					return s.slugTaken(ctx, "japanese_slug", c, id)
				})
				if err != nil {
					return nil, err
				}
			}
		}
	}
	if in.Summary != nil {
		p.Summary = *in.Summary
	}
	if in.Content != nil {
		p.Content = htmlsanitize.Normalize(*in.Content)
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.PublishedAt != nil {
		p.PublishedAt = in.PublishedAt.UTC()
	}
	p.UpdatedAt = time.Now().UTC()

	_, err = s.c.ReplaceOne(ctx, bson.M{"_id": id}, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("slug", p.Slug)
		}
		return nil, err
	}
	return p, nil
}

// GetByID returns one program by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Program, error) {
	var p models.Program
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("program")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Resolve returns one program by slug, japanese slug, or hex id.
func (s *Store) Resolve(ctx context.Context, slugOrID string) (*models.Program, error) {
	or := []bson.M{
		{"slug": slugOrID},
		{"japanese_slug": slugOrID},
	}
	if id, err := primitive.ObjectIDFromHex(slugOrID); err == nil {
		or = append(or, bson.M{"_id": id})
	}
	var p models.Program
	err := s.c.FindOne(ctx, bson.M{"$or": or}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("program")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Active returns active programs newest first.
func (s *Store) Active(ctx context.Context) ([]models.Program, error) {
	return s.list(ctx, bson.M{"is_active": true})
}

// All returns every program newest first, for admin tooling.
func (s *Store) All(ctx context.Context) ([]models.Program, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Program, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Program{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleActive flips a program's active flag and returns the new value.
func (s *Store) ToggleActive(ctx context.Context, id primitive.ObjectID) (bool, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !p.IsActive
	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  next,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return false, err
	}
	return next, nil
}

// Delete removes one program. Image cleanup is the caller's job.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.Program, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return nil, err
	}
	return p, nil
}
