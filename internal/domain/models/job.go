// internal/domain/models/job.go
package models

import (
	"time"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobsPage is the singleton-active aggregate holding the recruiting page
// settings and the ordered job categories.
type JobsPage struct {
	PageMeta `bson:",inline"`

	Categories []JobCategory `bson:"categories" json:"categories"`
}

// JobCategory groups job listings ("Production", "Office", "Engineering").
type JobCategory struct {
	ordered.Meta `bson:",inline"`

	Name string `bson:"name" json:"name"`
}

// Job is one job listing, its own document addressed publicly by slug.
type Job struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Slug         string             `bson:"slug" json:"slug"`
	CategoryID   primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	Location     string             `bson:"location" json:"location"`
	SalaryRange  string             `bson:"salary_range" json:"salary_range"`
	Deadline     *time.Time         `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Description  string             `bson:"description" json:"description"`
	Requirements string             `bson:"requirements" json:"requirements"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	Order        int                `bson:"order" json:"order"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
