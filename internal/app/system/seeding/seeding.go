// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/tranchon2702/saigon3-cms/internal/app/store/automation"
	"github.com/tranchon2702/saigon3-cms/internal/app/store/ecofriendly"
	"github.com/tranchon2702/saigon3-cms/internal/app/store/facilities"
	"github.com/tranchon2702/saigon3-cms/internal/app/store/jobs"
	"github.com/tranchon2702/saigon3-cms/internal/app/store/machinery"
	"github.com/tranchon2702/saigon3-cms/internal/app/store/products"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// SeedAll seeds default data if not already present.
//
// Every page kind must always have exactly one active aggregate, so a
// fresh database gets an empty active document per kind. Re-running is
// harmless: kinds that already have an active document are skipped.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	seeds := []struct {
		collection string
		insert     func(context.Context) error
	}{
		{"facilities", func(ctx context.Context) error {
			return facilities.New(db).Insert(ctx, &models.FacilitiesPage{
				PageMeta: defaultMeta("Facilities"),
				Features: []models.FacilityFeature{},
				Metrics:  []models.FacilityMetric{},
			})
		}},
		{"machinery", func(ctx context.Context) error {
			return machinery.New(db).Insert(ctx, &models.MachineryPage{
				PageMeta: defaultMeta("Machinery"),
				Stages:   []models.MachineryStage{},
			})
		}},
		{"automation", func(ctx context.Context) error {
			return automation.New(db).Insert(ctx, &models.AutomationPage{
				PageMeta: defaultMeta("Automation"),
				Items:    []models.AutomationItem{},
			})
		}},
		{"eco_friendly", func(ctx context.Context) error {
			return ecofriendly.New(db).Insert(ctx, &models.EcoFriendlyPage{
				PageMeta:   defaultMeta("Eco Friendly"),
				Milestones: []models.Milestone{},
				CoreValues: []models.CoreValue{},
			})
		}},
		{"products", func(ctx context.Context) error {
			return products.New(db).Insert(ctx, &models.ProductsPage{
				PageMeta: defaultMeta("Products"),
				Products: []models.Product{},
			})
		}},
		{"jobs_page", func(ctx context.Context) error {
			return jobs.New(db).Insert(ctx, &models.JobsPage{
				PageMeta:   defaultMeta("Careers"),
				Categories: []models.JobCategory{},
			})
		}},
	}

	for _, s := range seeds {
		n, err := db.Collection(s.collection).CountDocuments(ctx, bson.M{"is_active": true})
		if err != nil {
			logger.Error("failed to check for active page",
				zap.String("collection", s.collection),
				zap.Error(err))
			return err
		}
		if n > 0 {
			continue
		}
		if err := s.insert(ctx); err != nil {
			logger.Error("failed to seed page",
				zap.String("collection", s.collection),
				zap.Error(err))
			return err
		}
		logger.Info("seeded default page", zap.String("collection", s.collection))
	}

	return nil
}

func defaultMeta(title string) models.PageMeta {
	return models.PageMeta{
		PageTitle: title,
		IsActive:  true,
	}
}
