// Package contact stores public contact-form submissions and the
// notification recipient configuration.
package contact

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tranchon2702/saigon3-cms/internal/app/store/storeutil"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Store provides access to the contact submissions and email config
// collections.
type Store struct {
	submissions *mongo.Collection
	configs     *mongo.Collection
}

// New creates a new contact store.
func New(db *mongo.Database) *Store {
	return &Store{
		submissions: db.Collection("contact_submissions"),
		configs:     db.Collection("email_configs"),
	}
}

// spamMarkers are phrases that bump the spam score when they appear in
// the subject or message.
var spamMarkers = []string{
	"http://", "https://", "www.",
	"click here", "free money", "guaranteed",
	"bitcoin", "crypto", "casino", "viagra",
	"seo service", "backlink",
}

// urgentMarkers raise the priority of legitimate business inquiries.
var urgentMarkers = []string{
	"urgent", "asap", "khẩn", "gấp",
	"purchase order", "đặt hàng", "báo giá", "quotation",
	"partnership", "hợp tác",
}

// scoreSpam computes a 0-100 spam score from content heuristics. The
// score is stored once at create time and never recomputed.
func scoreSpam(subject, message string) int {
	text := strings.ToLower(subject + " " + message)

	score := 0
	for _, m := range spamMarkers {
		score += 15 * strings.Count(text, m)
	}

	// Shouting in the subject line is a weaker signal.
	letters, upper := 0, 0
	for _, r := range subject {
		if r >= 'A' && r <= 'Z' {
			upper++
		}
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			letters++
		}
	}
	if letters >= 8 && upper*2 > letters {
		score += 10
	}

	if len(strings.TrimSpace(message)) < 10 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// classify picks a priority from the spam score and urgency markers.
func classify(subject, message string, spamScore int) string {
	if spamScore >= 50 {
		return models.ContactPriorityLow
	}
	text := strings.ToLower(subject + " " + message)
	for _, m := range urgentMarkers {
		if strings.Contains(text, m) {
			return models.ContactPriorityHigh
		}
	}
	return models.ContactPriorityNormal
}

// CreateInput contains the input for a contact-form submission.
type CreateInput struct {
	FullName string
	Email    string
	Phone    string
	Subject  string
	Message  string
}

// Create validates and stores a new submission, computing its spam score
// and priority.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.ContactSubmission, error) {
	name := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)

	if name == "" {
		return nil, apperr.Validation("full name is required")
	}
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("invalid email address")
	}
	if message == "" {
		return nil, apperr.Validation("message is required")
	}

	spam := scoreSpam(in.Subject, message)
	sub := &models.ContactSubmission{
		FullName:  name,
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   message,
		SpamScore: spam,
		Priority:  classify(in.Subject, message, spam),
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.submissions.InsertOne(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = res.InsertedID.(primitive.ObjectID)
	return sub, nil
}

// ListFilter narrows List results. Zero values match everything and
// fall back to the first page with the default page size.
type ListFilter struct {
	Priority string
	Handled  *bool
	Limit    int64
	Page     int64
}

// List returns submissions newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.ContactSubmission, error) {
	filter := bson.M{}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Handled != nil {
		filter["handled"] = *f.Handled
	}

	opts := storeutil.Paginate(f.Limit, f.Page).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.submissions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.ContactSubmission{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one submission.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactSubmission, error) {
	var sub models.ContactSubmission
	err := s.submissions.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("contact submission")
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// MarkHandled sets a submission's handled flag.
func (s *Store) MarkHandled(ctx context.Context, id primitive.ObjectID, handled bool) error {
	res, err := s.submissions.UpdateByID(ctx, id, bson.M{"$set": bson.M{"handled": handled}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("contact submission")
	}
	return nil
}

// Delete removes one submission.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.submissions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("contact submission")
	}
	return nil
}

// ActiveEmailConfig returns the active notification recipient config.
func (s *Store) ActiveEmailConfig(ctx context.Context) (*models.EmailConfig, error) {
	var cfg models.EmailConfig
	err := s.configs.FindOne(ctx, bson.M{"is_active": true}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("email config")
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AllEmailConfigs returns every config, newest first.
func (s *Store) AllEmailConfigs(ctx context.Context) ([]models.EmailConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.configs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.EmailConfig{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveEmailConfig inserts a new recipient config. The new config becomes
// active and every other config is deactivated in the same call.
func (s *Store) SaveEmailConfig(ctx context.Context, recipients []string) (*models.EmailConfig, error) {
	clean := make([]string, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, err := mail.ParseAddress(r); err != nil {
			return nil, apperr.Validation("invalid recipient address %q", r)
		}
		clean = append(clean, r)
	}
	if len(clean) == 0 {
		return nil, apperr.Validation("at least one recipient is required")
	}

	cfg := &models.EmailConfig{
		Recipients: clean,
		IsActive:   true,
		UpdatedAt:  time.Now().UTC(),
	}
	res, err := s.configs.InsertOne(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cfg.ID = res.InsertedID.(primitive.ObjectID)

	_, err = s.configs.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": cfg.ID}},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ActivateEmailConfig makes one config active and deactivates the rest.
func (s *Store) ActivateEmailConfig(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.configs.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  true,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("email config")
	}
	_, err = s.configs.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": id}},
		bson.M{"$set": bson.M{"is_active": false}})
	return err
}
