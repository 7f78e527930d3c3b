// internal/domain/models/contact.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact priorities, assigned at submission time from content heuristics.
const (
	ContactPriorityHigh   = "high"
	ContactPriorityNormal = "normal"
	ContactPriorityLow    = "low"
)

// ContactSubmission is one public contact-form submission.
//
// SpamScore and Priority are computed once at create time and never
// recomputed; admins filter on them. Handled flips when an admin resolves
// the submission.
type ContactSubmission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName  string             `bson:"full_name" json:"full_name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	SpamScore int                `bson:"spam_score" json:"spam_score"`
	Priority  string             `bson:"priority" json:"priority"`
	Handled   bool               `bson:"handled" json:"handled"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// EmailConfig is the singleton-active document naming who gets notified
// about new submissions. Activating one config deactivates the others in
// the same write path.
type EmailConfig struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Recipients []string           `bson:"recipients" json:"recipients"`
	IsActive   bool               `bson:"is_active" json:"is_active"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
