// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SpamCleanupJob creates a job that removes old high-score spam
// submissions so the contact inbox does not fill up with junk.
func SpamCleanupJob(db *mongo.Database, logger *zap.Logger) Job {
	return Job{
		Name:     "spam-cleanup",
		Interval: 6 * time.Hour,
		Run: func(ctx context.Context) error {
			coll := db.Collection("contact_submissions")
			cutoff := time.Now().Add(-30 * 24 * time.Hour)
			result, err := coll.DeleteMany(ctx, bson.M{
				"spam_score": bson.M{"$gte": 80},
				"handled":    false,
				"created_at": bson.M{"$lt": cutoff},
			})
			if err != nil {
				return err
			}
			if result.DeletedCount > 0 {
				logger.Info("cleaned up spam submissions",
					zap.Int64("deleted", result.DeletedCount))
			}
			return nil
		},
	}
}

// HandledSubmissionCleanupJob creates a job that removes handled contact
// submissions after a retention window.
func HandledSubmissionCleanupJob(db *mongo.Database, logger *zap.Logger) Job {
	return Job{
		Name:     "handled-submission-cleanup",
		Interval: 24 * time.Hour,
		Run: func(ctx context.Context) error {
			coll := db.Collection("contact_submissions")
			cutoff := time.Now().Add(-180 * 24 * time.Hour)
			result, err := coll.DeleteMany(ctx, bson.M{
				"handled":    true,
				"created_at": bson.M{"$lt": cutoff},
			})
			if err != nil {
				return err
			}
			if result.DeletedCount > 0 {
				logger.Info("cleaned up handled submissions",
					zap.Int64("deleted", result.DeletedCount))
			}
			return nil
		},
	}
}

// ExpiredJobCloseJob creates a job that deactivates job listings whose
// application deadline has passed. Listings stay in the admin list but
// drop off the public site.
func ExpiredJobCloseJob(db *mongo.Database, logger *zap.Logger) Job {
	return Job{
		Name:     "expired-job-close",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			coll := db.Collection("jobs")
			result, err := coll.UpdateMany(ctx, bson.M{
				"is_active": true,
				"deadline":  bson.M{"$ne": nil, "$lt": time.Now()},
			}, bson.M{
				"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()},
			})
			if err != nil {
				return err
			}
			if result.ModifiedCount > 0 {
				logger.Info("closed expired job listings",
					zap.Int64("closed", result.ModifiedCount))
			}
			return nil
		},
	}
}
