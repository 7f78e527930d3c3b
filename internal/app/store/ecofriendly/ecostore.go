// Package ecofriendly provides storage for the Eco-Friendly page aggregate.
package ecofriendly

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tranchon2702/saigon3-cms/internal/app/store/content"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Store provides access to the eco_friendly collection.
type Store struct {
	pages *content.Store[models.EcoFriendlyPage, *models.EcoFriendlyPage]
}

// New creates a new eco-friendly store.
func New(db *mongo.Database) *Store {
	return &Store{pages: content.NewStore[models.EcoFriendlyPage](db, "eco_friendly", "eco-friendly page")}
}

func milestones(p *models.EcoFriendlyPage) *[]models.Milestone { return &p.Milestones }
func coreValues(p *models.EcoFriendlyPage) *[]models.CoreValue { return &p.CoreValues }

// Page returns the active eco-friendly page.
func (s *Store) Page(ctx context.Context) (*models.EcoFriendlyPage, error) {
	return s.pages.Active(ctx)
}

// Insert stores a new page document (used by seeding).
func (s *Store) Insert(ctx context.Context, page *models.EcoFriendlyPage) error {
	return s.pages.Insert(ctx, page)
}

// UpdateSettings partially merges page title/description/SEO fields.
func (s *Store) UpdateSettings(ctx context.Context, in models.PageSettings) (*models.EcoFriendlyPage, error) {
	return s.pages.UpdateSettings(ctx, in)
}

// MilestoneInput contains the input for creating a milestone.
type MilestoneInput struct {
	Year        string
	Title       string
	Description string
	Image       models.ImageAsset
	Order       *int
}

// AddMilestone appends a milestone to the active page.
func (s *Store) AddMilestone(ctx context.Context, in MilestoneInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Title) == "" {
		return primitive.NilObjectID, apperr.Validation("milestone title is required")
	}
	e := models.Milestone{
		Year:        strings.TrimSpace(in.Year),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Image:       in.Image,
	}
	return content.AddItem(s.pages, ctx, milestones, e, in.Order)
}

// MilestoneUpdate contains the partial update for a milestone.
type MilestoneUpdate struct {
	Year        *string
	Title       *string
	Description *string
	Image       *models.ImageAsset
}

// UpdateMilestone merges the provided fields into an existing milestone.
func (s *Store) UpdateMilestone(ctx context.Context, id primitive.ObjectID, in MilestoneUpdate) error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return apperr.Validation("milestone title cannot be empty")
	}
	return content.UpdateItem(s.pages, ctx, milestones, id, "milestone",
		func(m *models.Milestone) {
			if in.Year != nil {
				m.Year = strings.TrimSpace(*in.Year)
			}
			if in.Title != nil {
				m.Title = strings.TrimSpace(*in.Title)
			}
			if in.Description != nil {
				m.Description = *in.Description
			}
			if in.Image != nil {
				m.Image = *in.Image
			}
		})
}

// RemoveMilestone deletes a milestone.
func (s *Store) RemoveMilestone(ctx context.Context, id primitive.ObjectID) error {
	return content.RemoveItem(s.pages, ctx, milestones, id, "milestone")
}

// ToggleMilestone flips a milestone's active flag and returns the new value.
func (s *Store) ToggleMilestone(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return content.ToggleItem(s.pages, ctx, milestones, id, "milestone")
}

// ReorderMilestones applies the given id order to the milestones.
func (s *Store) ReorderMilestones(ctx context.Context, ids []primitive.ObjectID) error {
	return content.ReorderItems(s.pages, ctx, milestones, ids)
}

// SortedMilestones returns active milestones in display order.
func (s *Store) SortedMilestones(ctx context.Context) ([]models.Milestone, error) {
	return content.SortedItems(s.pages, ctx, milestones)
}

// AllMilestones returns every milestone for admin tooling.
func (s *Store) AllMilestones(ctx context.Context) ([]models.Milestone, error) {
	return content.AllItems(s.pages, ctx, milestones)
}

// CoreValueInput contains the input for creating a core value.
type CoreValueInput struct {
	Title       string
	Description string
	Icon        string
	Order       *int
}

// AddCoreValue appends a core value to the active page.
func (s *Store) AddCoreValue(ctx context.Context, in CoreValueInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Title) == "" {
		return primitive.NilObjectID, apperr.Validation("core value title is required")
	}
	e := models.CoreValue{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Icon:        in.Icon,
	}
	return content.AddItem(s.pages, ctx, coreValues, e, in.Order)
}

// CoreValueUpdate contains the partial update for a core value.
type CoreValueUpdate struct {
	Title       *string
	Description *string
	Icon        *string
}

// UpdateCoreValue merges the provided fields into an existing core value.
func (s *Store) UpdateCoreValue(ctx context.Context, id primitive.ObjectID, in CoreValueUpdate) error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return apperr.Validation("core value title cannot be empty")
	}
	return content.UpdateItem(s.pages, ctx, coreValues, id, "core value",
		func(v *models.CoreValue) {
			if in.Title != nil {
				v.Title = strings.TrimSpace(*in.Title)
			}
			if in.Description != nil {
				v.Description = *in.Description
			}
			if in.Icon != nil {
				v.Icon = *in.Icon
			}
		})
}

// RemoveCoreValue deletes a core value.
func (s *Store) RemoveCoreValue(ctx context.Context, id primitive.ObjectID) error {
	return content.RemoveItem(s.pages, ctx, coreValues, id, "core value")
}

// ToggleCoreValue flips a core value's active flag and returns the new value.
func (s *Store) ToggleCoreValue(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return content.ToggleItem(s.pages, ctx, coreValues, id, "core value")
}

// ReorderCoreValues applies the given id order to the core values.
func (s *Store) ReorderCoreValues(ctx context.Context, ids []primitive.ObjectID) error {
	return content.ReorderItems(s.pages, ctx, coreValues, ids)
}

// SortedCoreValues returns active core values in display order.
func (s *Store) SortedCoreValues(ctx context.Context) ([]models.CoreValue, error) {
	return content.SortedItems(s.pages, ctx, coreValues)
}

// AllCoreValues returns every core value for admin tooling.
func (s *Store) AllCoreValues(ctx context.Context) ([]models.CoreValue, error) {
	return content.AllItems(s.pages, ctx, coreValues)
}
