package programs

import (
	"testing"

	"github.com/tranchon2702/saigon3-cms/internal/app/store/news"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/testutil"
)

func TestStore_CreateAndResolve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Create(ctx, CreateInput{
		Title:   "Vocational Training Program",
		Summary: "Partnership with local colleges",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.Slug != "vocational-training-program" {
		t.Errorf("Slug = %q, want 'vocational-training-program'", p.Slug)
	}

	got, err := store.Resolve(ctx, p.Slug)
	if err != nil || got.ID != p.ID {
		t.Errorf("Resolve() = %v, %v; want the program", got, err)
	}

	if _, err := store.Resolve(ctx, "missing"); !apperr.IsNotFound(err) {
		t.Errorf("Resolve() for unknown slug error = %v, want NotFound", err)
	}
}

func TestStore_SlugsIndependentFromNews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	newsStore := news.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The same title in both collections keeps the plain slug in each;
	// uniqueness is per collection, not global.
	article, err := newsStore.Create(ctx, news.CreateInput{Title: "Summer Internship"})
	if err != nil {
		t.Fatalf("news Create() error = %v", err)
	}
	program, err := store.Create(ctx, CreateInput{Title: "Summer Internship"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if article.Slug != "summer-internship" || program.Slug != "summer-internship" {
		t.Errorf("slugs = %q and %q, want both 'summer-internship'",
			article.Slug, program.Slug)
	}
}

func TestStore_ToggleAndLists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, _ := store.Create(ctx, CreateInput{Title: "Visible"})
	hidden, _ := store.Create(ctx, CreateInput{Title: "Hidden"})
	store.ToggleActive(ctx, hidden.ID)

	active, err := store.Active(ctx)
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	if len(active) != 1 || active[0].ID != p.ID {
		t.Errorf("Active() = %+v, want only the visible program", active)
	}

	all, _ := store.All(ctx)
	if len(all) != 2 {
		t.Errorf("All() count = %d, want 2", len(all))
	}
}
