// Package facilities provides storage for the Facilities page aggregate.
package facilities

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tranchon2702/saigon3-cms/internal/app/store/content"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Store provides access to the facilities collection.
type Store struct {
	pages *content.Store[models.FacilitiesPage, *models.FacilitiesPage]
}

// New creates a new facilities store.
func New(db *mongo.Database) *Store {
	return &Store{pages: content.NewStore[models.FacilitiesPage](db, "facilities", "facilities page")}
}

func features(p *models.FacilitiesPage) *[]models.FacilityFeature { return &p.Features }
func metrics(p *models.FacilitiesPage) *[]models.FacilityMetric   { return &p.Metrics }

// Page returns the active facilities page.
func (s *Store) Page(ctx context.Context) (*models.FacilitiesPage, error) {
	return s.pages.Active(ctx)
}

// Insert stores a new page document (used by seeding).
func (s *Store) Insert(ctx context.Context, page *models.FacilitiesPage) error {
	return s.pages.Insert(ctx, page)
}

// UpdateSettings partially merges page title/description/SEO fields.
func (s *Store) UpdateSettings(ctx context.Context, in models.PageSettings) (*models.FacilitiesPage, error) {
	return s.pages.UpdateSettings(ctx, in)
}

// FeatureInput contains the input for creating a facility feature.
type FeatureInput struct {
	Title       string
	Description string
	Image       models.ImageAsset
	Order       *int
}

// AddFeature appends a feature to the active page.
func (s *Store) AddFeature(ctx context.Context, in FeatureInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Title) == "" {
		return primitive.NilObjectID, apperr.Validation("feature title is required")
	}
	e := models.FacilityFeature{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Image:       in.Image,
	}
	return content.AddItem(s.pages, ctx, features, e, in.Order)
}

// FeatureUpdate contains the partial update for a feature. Nil fields keep
// their previous values.
type FeatureUpdate struct {
	Title       *string
	Description *string
	Image       *models.ImageAsset
}

// UpdateFeature merges the provided fields into an existing feature.
func (s *Store) UpdateFeature(ctx context.Context, id primitive.ObjectID, in FeatureUpdate) error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return apperr.Validation("feature title cannot be empty")
	}
	return content.UpdateItem(s.pages, ctx, features, id, "facility feature",
		func(f *models.FacilityFeature) {
			if in.Title != nil {
				f.Title = strings.TrimSpace(*in.Title)
			}
			if in.Description != nil {
				f.Description = *in.Description
			}
			if in.Image != nil {
				f.Image = *in.Image
			}
		})
}

// RemoveFeature deletes a feature.
func (s *Store) RemoveFeature(ctx context.Context, id primitive.ObjectID) error {
	return content.RemoveItem(s.pages, ctx, features, id, "facility feature")
}

// ToggleFeature flips a feature's active flag and returns the new value.
func (s *Store) ToggleFeature(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return content.ToggleItem(s.pages, ctx, features, id, "facility feature")
}

// ReorderFeatures applies the given id order to the features.
func (s *Store) ReorderFeatures(ctx context.Context, ids []primitive.ObjectID) error {
	return content.ReorderItems(s.pages, ctx, features, ids)
}

// SortedFeatures returns active features in display order.
func (s *Store) SortedFeatures(ctx context.Context) ([]models.FacilityFeature, error) {
	return content.SortedItems(s.pages, ctx, features)
}

// AllFeatures returns every feature for admin tooling.
func (s *Store) AllFeatures(ctx context.Context) ([]models.FacilityFeature, error) {
	return content.AllItems(s.pages, ctx, features)
}

// MetricInput contains the input for creating a facility metric.
type MetricInput struct {
	Value string
	Label string
	Order *int
}

// AddMetric appends a metric to the active page.
func (s *Store) AddMetric(ctx context.Context, in MetricInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Value) == "" {
		return primitive.NilObjectID, apperr.Validation("metric value is required")
	}
	e := models.FacilityMetric{Value: strings.TrimSpace(in.Value), Label: in.Label}
	return content.AddItem(s.pages, ctx, metrics, e, in.Order)
}

// MetricUpdate contains the partial update for a metric.
type MetricUpdate struct {
	Value *string
	Label *string
}

// UpdateMetric merges the provided fields into an existing metric.
func (s *Store) UpdateMetric(ctx context.Context, id primitive.ObjectID, in MetricUpdate) error {
	if in.Value != nil && strings.TrimSpace(*in.Value) == "" {
		return apperr.Validation("metric value cannot be empty")
	}
	return content.UpdateItem(s.pages, ctx, metrics, id, "facility metric",
		func(m *models.FacilityMetric) {
			if in.Value != nil {
				m.Value = strings.TrimSpace(*in.Value)
			}
			if in.Label != nil {
				m.Label = *in.Label
			}
		})
}

// RemoveMetric deletes a metric.
func (s *Store) RemoveMetric(ctx context.Context, id primitive.ObjectID) error {
	return content.RemoveItem(s.pages, ctx, metrics, id, "facility metric")
}

// ToggleMetric flips a metric's active flag and returns the new value.
func (s *Store) ToggleMetric(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return content.ToggleItem(s.pages, ctx, metrics, id, "facility metric")
}

// ReorderMetrics applies the given id order to the metrics.
func (s *Store) ReorderMetrics(ctx context.Context, ids []primitive.ObjectID) error {
	return content.ReorderItems(s.pages, ctx, metrics, ids)
}

// SortedMetrics returns active metrics in display order.
func (s *Store) SortedMetrics(ctx context.Context) ([]models.FacilityMetric, error) {
	return content.SortedItems(s.pages, ctx, metrics)
}

// AllMetrics returns every metric for admin tooling.
func (s *Store) AllMetrics(ctx context.Context) ([]models.FacilityMetric, error) {
	return content.AllItems(s.pages, ctx, metrics)
}
