package contact

import (
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
	"github.com/tranchon2702/saigon3-cms/internal/testutil"
)

func TestScoreSpam(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		message string
		min     int
		max     int
	}{
		{"clean inquiry", "Fabric order", "We would like to order 500 units of denim fabric for our spring collection.", 0, 0},
		{"link stuffing", "Great offer", "Visit https://spam.example and https://more.example and www.third.example now", 45, 100},
		{"shouting subject", "BUY NOW CHEAP PRODUCT", "A message body long enough to not be short.", 10, 30},
		{"too short", "Hi", "hello", 10, 30},
		{"keyword pile", "seo service", "guaranteed backlink packages, free money, click here", 60, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreSpam(tt.subject, tt.message)
			if got < tt.min || got > tt.max {
				t.Errorf("scoreSpam() = %d, want between %d and %d", got, tt.min, tt.max)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		message string
		spam    int
		want    string
	}{
		{"spam is low", "anything", "anything", 50, models.ContactPriorityLow},
		{"urgent keyword", "Urgent order", "Please respond asap", 0, models.ContactPriorityHigh},
		{"vietnamese urgency", "Báo giá", "Cần báo giá gấp", 0, models.ContactPriorityHigh},
		{"plain inquiry", "Question", "How do I visit the factory?", 0, models.ContactPriorityNormal},
		{"urgent but spammy", "urgent", "urgent", 50, models.ContactPriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.subject, tt.message, tt.spam); got != tt.want {
				t.Errorf("classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sub, err := store.Create(ctx, CreateInput{
		FullName: "  Nguyen Van A  ",
		Email:    "a@example.com",
		Phone:    "0901234567",
		Subject:  "Fabric inquiry",
		Message:  "We are interested in your denim fabric for a large order.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if sub.ID.IsZero() {
		t.Error("ID should be assigned")
	}
	if sub.FullName != "Nguyen Van A" {
		t.Errorf("FullName = %q, want trimmed", sub.FullName)
	}
	if sub.Priority != models.ContactPriorityNormal {
		t.Errorf("Priority = %q, want normal", sub.Priority)
	}
	if sub.Handled {
		t.Error("new submission should not be handled")
	}
	if sub.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"missing name", CreateInput{Email: "a@example.com", Message: "hello there"}},
		{"missing email", CreateInput{FullName: "A", Message: "hello there"}},
		{"bad email", CreateInput{FullName: "A", Email: "not-an-email", Message: "hello there"}},
		{"missing message", CreateInput{FullName: "A", Email: "a@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tt.in); !apperr.IsValidation(err) {
				t.Errorf("Create() error = %v, want Validation", err)
			}
		})
	}
}

func TestStore_Create_SpamGetsLowPriority(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sub, err := store.Create(ctx, CreateInput{
		FullName: "Spammer",
		Email:    "spam@example.com",
		Subject:  "seo service guaranteed",
		Message:  "click here https://spam.example for free money and backlink deals",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sub.Priority != models.ContactPriorityLow {
		t.Errorf("Priority = %q, want low", sub.Priority)
	}
	if sub.SpamScore < 50 {
		t.Errorf("SpamScore = %d, want >= 50", sub.SpamScore)
	}
}

func seedSubmissions(t *testing.T, store *Store, n int) []*models.ContactSubmission {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	out := make([]*models.ContactSubmission, 0, n)
	for i := 0; i < n; i++ {
		sub, err := store.Create(ctx, CreateInput{
			FullName: fmt.Sprintf("Person %d", i),
			Email:    fmt.Sprintf("p%d@example.com", i),
			Subject:  "Inquiry",
			Message:  "A perfectly ordinary business message.",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		out = append(out, sub)
	}
	return out
}

func TestStore_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	subs := seedSubmissions(t, store, 3)
	store.MarkHandled(ctx, subs[0].ID, true)

	all, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() count = %d, want 3", len(all))
	}

	handled := true
	got, _ := store.List(ctx, ListFilter{Handled: &handled})
	if len(got) != 1 || got[0].ID != subs[0].ID {
		t.Errorf("List(handled=true) = %+v, want only the handled one", got)
	}

	unhandled := false
	got, _ = store.List(ctx, ListFilter{Handled: &unhandled})
	if len(got) != 2 {
		t.Errorf("List(handled=false) count = %d, want 2", len(got))
	}

	got, _ = store.List(ctx, ListFilter{Priority: models.ContactPriorityLow})
	if len(got) != 0 {
		t.Errorf("List(priority=low) count = %d, want 0", len(got))
	}
}

func TestStore_List_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedSubmissions(t, store, 5)

	page1, err := store.List(ctx, ListFilter{Limit: 2, Page: 1})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 count = %d, want 2", len(page1))
	}

	page2, _ := store.List(ctx, ListFilter{Limit: 2, Page: 2})
	if len(page2) != 2 {
		t.Errorf("page 2 count = %d, want 2", len(page2))
	}

	page3, _ := store.List(ctx, ListFilter{Limit: 2, Page: 3})
	if len(page3) != 1 {
		t.Errorf("page 3 count = %d, want 1", len(page3))
	}

	// A page past the end is empty, not an error.
	page4, err := store.List(ctx, ListFilter{Limit: 2, Page: 4})
	if err != nil {
		t.Fatalf("List() past the end error = %v", err)
	}
	if len(page4) != 0 {
		t.Errorf("page 4 count = %d, want 0", len(page4))
	}
}

func TestStore_MarkHandled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	subs := seedSubmissions(t, store, 1)

	if err := store.MarkHandled(ctx, subs[0].ID, true); err != nil {
		t.Fatalf("MarkHandled() error = %v", err)
	}
	got, _ := store.GetByID(ctx, subs[0].ID)
	if !got.Handled {
		t.Error("submission should be handled")
	}

	if err := store.MarkHandled(ctx, subs[0].ID, false); err != nil {
		t.Fatalf("MarkHandled(false) error = %v", err)
	}
	got, _ = store.GetByID(ctx, subs[0].ID)
	if got.Handled {
		t.Error("submission should be unhandled again")
	}

	err := store.MarkHandled(ctx, primitive.NewObjectID(), true)
	if !apperr.IsNotFound(err) {
		t.Errorf("MarkHandled() for unknown id error = %v, want NotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	subs := seedSubmissions(t, store, 1)

	if err := store.Delete(ctx, subs[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.GetByID(ctx, subs[0].ID); !apperr.IsNotFound(err) {
		t.Errorf("GetByID() after delete error = %v, want NotFound", err)
	}
	if err := store.Delete(ctx, subs[0].ID); !apperr.IsNotFound(err) {
		t.Errorf("Delete() second call error = %v, want NotFound", err)
	}
}

func TestStore_EmailConfigs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.ActiveEmailConfig(ctx)
	if !apperr.IsNotFound(err) {
		t.Errorf("ActiveEmailConfig() on empty collection error = %v, want NotFound", err)
	}

	first, err := store.SaveEmailConfig(ctx, []string{"admin@saigon3jean.com", " hr@saigon3jean.com "})
	if err != nil {
		t.Fatalf("SaveEmailConfig() error = %v", err)
	}
	if len(first.Recipients) != 2 {
		t.Errorf("Recipients = %v, want 2 trimmed addresses", first.Recipients)
	}
	if !first.IsActive {
		t.Error("new config should be active")
	}

	// Saving another config supersedes the first.
	second, err := store.SaveEmailConfig(ctx, []string{"ceo@saigon3jean.com"})
	if err != nil {
		t.Fatalf("SaveEmailConfig() second error = %v", err)
	}

	active, err := store.ActiveEmailConfig(ctx)
	if err != nil {
		t.Fatalf("ActiveEmailConfig() error = %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("active config = %v, want %v", active.ID, second.ID)
	}

	// Reactivating the first flips it back and deactivates the second.
	if err := store.ActivateEmailConfig(ctx, first.ID); err != nil {
		t.Fatalf("ActivateEmailConfig() error = %v", err)
	}
	active, _ = store.ActiveEmailConfig(ctx)
	if active.ID != first.ID {
		t.Errorf("active config = %v, want %v", active.ID, first.ID)
	}

	all, _ := store.AllEmailConfigs(ctx)
	activeCount := 0
	for _, c := range all {
		if c.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Errorf("active config count = %d, want 1", activeCount)
	}
}

func TestStore_SaveEmailConfig_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.SaveEmailConfig(ctx, nil); !apperr.IsValidation(err) {
		t.Errorf("SaveEmailConfig(nil) error = %v, want Validation", err)
	}
	if _, err := store.SaveEmailConfig(ctx, []string{"", "  "}); !apperr.IsValidation(err) {
		t.Errorf("SaveEmailConfig(blank) error = %v, want Validation", err)
	}
	if _, err := store.SaveEmailConfig(ctx, []string{"not an address"}); !apperr.IsValidation(err) {
		t.Errorf("SaveEmailConfig(invalid) error = %v, want Validation", err)
	}
}
