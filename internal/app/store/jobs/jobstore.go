// Package jobs provides storage for the recruiting page.
//
// The page aggregate holds ordered job categories; individual job
// listings are their own documents so public detail pages can address
// them by slug and admins can filter by category.
package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tranchon2702/saigon3-cms/internal/app/store/content"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/slug"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/txn"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Store provides access to the jobs page and the job listings collection.
type Store struct {
	db       *mongo.Database
	pages    *content.Store[models.JobsPage, *models.JobsPage]
	listings *mongo.Collection
}

// New creates a new jobs store.
func New(db *mongo.Database) *Store {
	return &Store{
		db:       db,
		pages:    content.NewStore[models.JobsPage](db, "jobs_page", "jobs page"),
		listings: db.Collection("jobs"),
	}
}

func categories(p *models.JobsPage) *[]models.JobCategory { return &p.Categories }

// Page returns the active jobs page.
func (s *Store) Page(ctx context.Context) (*models.JobsPage, error) {
	return s.pages.Active(ctx)
}

// Insert stores a new page document (used by seeding).
func (s *Store) Insert(ctx context.Context, page *models.JobsPage) error {
	return s.pages.Insert(ctx, page)
}

// UpdateSettings partially merges page title/description/SEO fields.
func (s *Store) UpdateSettings(ctx context.Context, in models.PageSettings) (*models.JobsPage, error) {
	return s.pages.UpdateSettings(ctx, in)
}

// AddCategory appends a category to the jobs page.
func (s *Store) AddCategory(ctx context.Context, name string, order *int) (primitive.ObjectID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return primitive.NilObjectID, apperr.Validation("category name is required")
	}
	return content.AddItem(s.pages, ctx, categories, models.JobCategory{Name: name}, order)
}

// RenameCategory changes a category's display name.
func (s *Store) RenameCategory(ctx context.Context, id primitive.ObjectID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("category name cannot be empty")
	}
	return content.UpdateItem(s.pages, ctx, categories, id, "job category",
		func(c *models.JobCategory) { c.Name = name })
}

// RemoveCategory deletes a category. Listings in the category are kept
// but detached so they stay reachable by id and slug.
func (s *Store) RemoveCategory(ctx context.Context, id primitive.ObjectID) error {
	return txn.Run(ctx, s.db, nil, func(ctx context.Context) error {
		if err := content.RemoveItem(s.pages, ctx, categories, id, "job category"); err != nil {
			return err
		}
		_, err := s.listings.UpdateMany(ctx,
			bson.M{"category_id": id},
			bson.M{"$unset": bson.M{"category_id": ""}})
		return err
	})
}

// ToggleCategory flips a category's active flag and returns the new value.
func (s *Store) ToggleCategory(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return content.ToggleItem(s.pages, ctx, categories, id, "job category")
}

// ReorderCategories applies the given id order to the categories.
func (s *Store) ReorderCategories(ctx context.Context, ids []primitive.ObjectID) error {
	return content.ReorderItems(s.pages, ctx, categories, ids)
}

// SortedCategories returns active categories in display order.
func (s *Store) SortedCategories(ctx context.Context) ([]models.JobCategory, error) {
	return content.SortedItems(s.pages, ctx, categories)
}

// AllCategories returns every category for admin tooling.
func (s *Store) AllCategories(ctx context.Context) ([]models.JobCategory, error) {
	return content.AllItems(s.pages, ctx, categories)
}

// categoryExists checks the active page for a category id.
func (s *Store) categoryExists(ctx context.Context, id primitive.ObjectID) error {
	p, err := s.pages.Active(ctx)
	if err != nil {
		return err
	}
	if _, ok := ordered.Find(p.Categories, id); !ok {
		return apperr.NotFound("job category")
	}
	return nil
}

func (s *Store) slugTaken(ctx context.Context, candidate string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": candidate}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := s.listings.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateJobInput contains the input for creating a job listing.
type CreateJobInput struct {
	Title        string
	CategoryID   primitive.ObjectID
	Location     string
	SalaryRange  string
	Deadline     *time.Time
	Description  string
	Requirements string
	Order        *int
}

// CreateJob inserts a new listing with a freshly assigned slug.
func (s *Store) CreateJob(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation("job title is required")
	}
	if !in.CategoryID.IsZero() {
		if err := s.categoryExists(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}

	order := 0
	if in.Order != nil {
		order = *in.Order
	} else if n, err := s.listings.CountDocuments(ctx, bson.M{}); err == nil {
		order = int(n) + 1
	}

	now := time.Now().UTC()
	j := &models.Job{
		Title:        title,
		CategoryID:   in.CategoryID,
		Location:     strings.TrimSpace(in.Location),
		SalaryRange:  strings.TrimSpace(in.SalaryRange),
		Deadline:     in.Deadline,
		Description:  in.Description,
		Requirements: in.Requirements,
		IsActive:     true,
		Order:        order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var err error
	j.Slug, err = slug.Assign("job", title, func(c string) (bool, error) {
		return s.slugTaken(ctx, c, primitive.NilObjectID)
	})
	if err != nil {
		return nil, err
	}

	res, err := s.listings.InsertOne(ctx, j)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("slug", j.Slug)
		}
		return nil, err
	}
	j.ID = res.InsertedID.(primitive.ObjectID)
	return j, nil
}

// UpdateJobInput contains the optional fields for updating a listing.
// Nil fields are left unchanged; the slug regenerates only when the
// title changes.
type UpdateJobInput struct {
	Title        *string
	CategoryID   *primitive.ObjectID
	Location     *string
	SalaryRange  *string
	Deadline     *time.Time
	Description  *string
	Requirements *string
	Order        *int
}

// UpdateJob applies a partial update to one listing.
func (s *Store) UpdateJob(ctx context.Context, id primitive.ObjectID, in UpdateJobInput) (*models.Job, error) {
	j, err := s.JobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, apperr.Validation("job title cannot be empty")
		}
		if t != j.Title {
			j.Title = t
			j.Slug, err = slug.Assign("job", t, func(c string) (bool, error) {
				return s.slugTaken(ctx, c, id)
			})
			if err != nil {
				return nil, err
			}
		}
	}
	if in.CategoryID != nil {
		if !in.CategoryID.IsZero() {
			if err := s.categoryExists(ctx, *in.CategoryID); err != nil {
				return nil, err
			}
		}
		j.CategoryID = *in.CategoryID
	}
	if in.Location != nil {
		j.Location = strings.TrimSpace(*in.Location)
	}
	if in.SalaryRange != nil {
		j.SalaryRange = strings.TrimSpace(*in.SalaryRange)
	}
	if in.Deadline != nil {
		j.Deadline = in.Deadline
	}
	if in.Description != nil {
		j.Description = *in.Description
	}
	if in.Requirements != nil {
		j.Requirements = *in.Requirements
	}
	if in.Order != nil {
		j.Order = *in.Order
	}
	j.UpdatedAt = time.Now().UTC()

	_, err = s.listings.ReplaceOne(ctx, bson.M{"_id": id}, j)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Duplicate("slug", j.Slug)
		}
		return nil, err
	}
	return j, nil
}

// JobByID returns one listing by id.
func (s *Store) JobByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var j models.Job
	err := s.listings.FindOne(ctx, bson.M{"_id": id}).Decode(&j)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("job")
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ResolveJob returns one listing by slug or hex id.
func (s *Store) ResolveJob(ctx context.Context, slugOrID string) (*models.Job, error) {
	or := []bson.M{{"slug": slugOrID}}
	if id, err := primitive.ObjectIDFromHex(slugOrID); err == nil {
		or = append(or, bson.M{"_id": id})
	}
	var j models.Job
	err := s.listings.FindOne(ctx, bson.M{"$or": or}).Decode(&j)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("job")
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ActiveJobs returns active listings in display order, optionally
// filtered to one category.
func (s *Store) ActiveJobs(ctx context.Context, categoryID primitive.ObjectID) ([]models.Job, error) {
	filter := bson.M{"is_active": true}
	if !categoryID.IsZero() {
		filter["category_id"] = categoryID
	}
	return s.listJobs(ctx, filter)
}

// AllJobs returns every listing in display order, for admin tooling.
func (s *Store) AllJobs(ctx context.Context) ([]models.Job, error) {
	return s.listJobs(ctx, bson.M{})
}

func (s *Store) listJobs(ctx context.Context, filter bson.M) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "created_at", Value: -1},
	})
	cur, err := s.listings.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Job{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleJob flips a listing's active flag and returns the new value.
func (s *Store) ToggleJob(ctx context.Context, id primitive.ObjectID) (bool, error) {
	j, err := s.JobByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !j.IsActive
	_, err = s.listings.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  next,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return false, err
	}
	return next, nil
}

// DeleteJob removes one listing.
func (s *Store) DeleteJob(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	j, err := s.JobByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.listings.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return nil, err
	}
	return j, nil
}
