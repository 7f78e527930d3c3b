package ecofriendly

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
	"github.com/tranchon2702/saigon3-cms/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	err := store.Insert(ctx, &models.EcoFriendlyPage{
		PageMeta:   models.PageMeta{PageTitle: "Eco Friendly", IsActive: true},
		Milestones: []models.Milestone{},
		CoreValues: []models.CoreValue{},
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return store
}

func TestStore_Milestones(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := store.AddMilestone(ctx, MilestoneInput{
		Year:        "2019",
		Title:       "Solar rooftop installed",
		Description: "2.4 MWp capacity",
	})
	if err != nil {
		t.Fatalf("AddMilestone() error = %v", err)
	}

	year := "2020"
	if err := store.UpdateMilestone(ctx, id, MilestoneUpdate{Year: &year}); err != nil {
		t.Fatalf("UpdateMilestone() error = %v", err)
	}

	ms, _ := store.SortedMilestones(ctx)
	if len(ms) != 1 || ms[0].Year != "2020" {
		t.Fatalf("milestones = %+v, want one with updated year", ms)
	}
	if ms[0].Title != "Solar rooftop installed" {
		t.Errorf("Title = %q, want unchanged", ms[0].Title)
	}

	if _, err := store.AddMilestone(ctx, MilestoneInput{Year: "2021"}); !apperr.IsValidation(err) {
		t.Errorf("AddMilestone() without title error = %v, want Validation", err)
	}

	if err := store.RemoveMilestone(ctx, id); err != nil {
		t.Fatalf("RemoveMilestone() error = %v", err)
	}
	if err := store.RemoveMilestone(ctx, id); !apperr.IsNotFound(err) {
		t.Errorf("RemoveMilestone() second call error = %v, want NotFound", err)
	}
}

func TestStore_CoreValues(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.AddCoreValue(ctx, CoreValueInput{Title: "Sustainability", Icon: "leaf"})
	b, _ := store.AddCoreValue(ctx, CoreValueInput{Title: "Quality", Icon: "star"})

	if err := store.ReorderCoreValues(ctx, []primitive.ObjectID{b, a}); err != nil {
		t.Fatalf("ReorderCoreValues() error = %v", err)
	}

	values, _ := store.SortedCoreValues(ctx)
	if len(values) != 2 || values[0].Title != "Quality" {
		t.Errorf("values = %+v, want Quality first after reorder", values)
	}

	active, err := store.ToggleCoreValue(ctx, a)
	if err != nil {
		t.Fatalf("ToggleCoreValue() error = %v", err)
	}
	if active {
		t.Error("first toggle should deactivate")
	}

	values, _ = store.SortedCoreValues(ctx)
	if len(values) != 1 {
		t.Errorf("SortedCoreValues() count = %d, want 1", len(values))
	}

	all, _ := store.AllCoreValues(ctx)
	if len(all) != 2 {
		t.Errorf("AllCoreValues() count = %d, want 2", len(all))
	}
}

func TestStore_MilestonesAndValuesIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.AddMilestone(ctx, MilestoneInput{Year: "2018", Title: "Water recycling plant"})
	store.AddCoreValue(ctx, CoreValueInput{Title: "Responsibility"})

	page, err := store.Page(ctx)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(page.Milestones) != 1 || len(page.CoreValues) != 1 {
		t.Errorf("milestones = %d, core values = %d, want 1 and 1",
			len(page.Milestones), len(page.CoreValues))
	}
}
