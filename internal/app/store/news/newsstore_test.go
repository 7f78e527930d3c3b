package news

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, CreateInput{
		Title:   "Saigon 3 Jean Opens New Factory",
		Summary: "A short summary",
		Content: "<p>Body</p>",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if a.ID.IsZero() {
		t.Error("ID should be assigned")
	}
	if a.Slug != "saigon-3-jean-opens-new-factory" {
		t.Errorf("Slug = %q, want 'saigon-3-jean-opens-new-factory'", a.Slug)
	}
	if !a.IsActive {
		t.Error("new article should be active")
	}
	if a.PublishedAt.IsZero() || a.CreatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, CreateInput{Title: "   "})
	if !apperr.IsValidation(err) {
		t.Errorf("Create() with blank title error = %v, want Validation", err)
	}
}

func TestStore_Create_SanitizesContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, CreateInput{
		Title:   "Scripted",
		Content: `<p>ok</p><script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if strings.Contains(a.Content, "<script") {
		t.Errorf("Content = %q, script tags should be stripped", a.Content)
	}
	if !strings.Contains(a.Content, "<p>ok</p>") {
		t.Errorf("Content = %q, allowed markup should survive", a.Content)
	}
}

func TestStore_Create_DuplicateTitleGetsSuffix(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, _ := store.Create(ctx, CreateInput{Title: "Annual Report"})
	second, err := store.Create(ctx, CreateInput{Title: "Annual Report"})
	if err != nil {
		t.Fatalf("Create() second article error = %v", err)
	}

	if first.Slug != "annual-report" {
		t.Errorf("first Slug = %q, want 'annual-report'", first.Slug)
	}
	if second.Slug == first.Slug {
		t.Error("second article must not reuse the first slug")
	}
	if !strings.HasPrefix(second.Slug, "annual-report") {
		t.Errorf("second Slug = %q, want 'annual-report' with a suffix", second.Slug)
	}
}

func TestStore_Create_VietnameseTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, CreateInput{Title: "Nhà máy Sài Gòn 3 mở rộng"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.Slug != "nha-may-sai-gon-3-mo-rong" {
		t.Errorf("Slug = %q, want folded 'nha-may-sai-gon-3-mo-rong'", a.Slug)
	}
}

func TestStore_Create_JapaneseSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, CreateInput{
		Title:         "New Partnership",
		JapaneseTitle: "あたらしい こうじょう",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.JapaneseSlug == "" {
		t.Fatal("JapaneseSlug should be assigned from the kana title")
	}
	if strings.ContainsAny(a.JapaneseSlug, "あたらしいこうじょう") {
		t.Errorf("JapaneseSlug = %q, want romaji only", a.JapaneseSlug)
	}

	// Without a Japanese title, no Japanese slug.
	b, _ := store.Create(ctx, CreateInput{Title: "Plain"})
	if b.JapaneseSlug != "" {
		t.Errorf("JapaneseSlug = %q, want empty", b.JapaneseSlug)
	}
}

func TestStore_Create_UntransliterableTitleFallsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// No character survives folding, so the timestamp fallback kicks in.
	a, err := store.Create(ctx, CreateInput{Title: "???"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.Slug == "" {
		t.Error("Slug should never be empty")
	}
}

func TestStore_Update_SlugStability(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, CreateInput{Title: "Original Title", Summary: "s"})

	// Non-title updates leave the slug alone.
	summary := "new summary"
	got, err := store.Update(ctx, a.ID, UpdateInput{Summary: &summary})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Slug != a.Slug {
		t.Errorf("Slug = %q, want unchanged %q", got.Slug, a.Slug)
	}
	if got.Summary != summary {
		t.Errorf("Summary = %q, want %q", got.Summary, summary)
	}

	// Setting the same title back is also not a change.
	same := "Original Title"
	got, _ = store.Update(ctx, a.ID, UpdateInput{Title: &same})
	if got.Slug != a.Slug {
		t.Errorf("Slug = %q, want unchanged for identical title", got.Slug)
	}

	// A real title change regenerates the slug.
	changed := "Changed Title"
	got, err = store.Update(ctx, a.ID, UpdateInput{Title: &changed})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Slug != "changed-title" {
		t.Errorf("Slug = %q, want 'changed-title'", got.Slug)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	title := "Anything"
	_, err := store.Update(ctx, primitive.NewObjectID(), UpdateInput{Title: &title})
	if !apperr.IsNotFound(err) {
		t.Errorf("Update() for unknown id error = %v, want NotFound", err)
	}
}

func TestStore_Resolve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, CreateInput{
		Title:         "Resolvable",
		JapaneseTitle: "ニュース",
	})

	bySlug, err := store.Resolve(ctx, a.Slug)
	if err != nil || bySlug.ID != a.ID {
		t.Errorf("Resolve(slug) = %v, %v; want the article", bySlug, err)
	}

	byID, err := store.Resolve(ctx, a.ID.Hex())
	if err != nil || byID.ID != a.ID {
		t.Errorf("Resolve(id) = %v, %v; want the article", byID, err)
	}

	byJa, err := store.Resolve(ctx, a.JapaneseSlug)
	if err != nil || byJa.ID != a.ID {
		t.Errorf("Resolve(japanese slug) = %v, %v; want the article", byJa, err)
	}

	if _, err := store.Resolve(ctx, "no-such-slug"); !apperr.IsNotFound(err) {
		t.Errorf("Resolve() for unknown slug error = %v, want NotFound", err)
	}
}

func TestStore_ActiveAndAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	older := time.Now().Add(-24 * time.Hour)
	store.Create(ctx, CreateInput{Title: "Older", PublishedAt: &older})
	store.Create(ctx, CreateInput{Title: "Newer"})
	hidden, _ := store.Create(ctx, CreateInput{Title: "Hidden"})
	store.ToggleActive(ctx, hidden.ID)

	active, err := store.Active(ctx)
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("Active() count = %d, want 2", len(active))
	}
	// Newest first
	if active[0].Title == "Older" {
		t.Error("Active() should be sorted by published_at descending")
	}

	all, _ := store.All(ctx)
	if len(all) != 3 {
		t.Errorf("All() count = %d, want 3", len(all))
	}
}

func TestStore_ToggleActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, CreateInput{Title: "Toggle Me"})

	active, err := store.ToggleActive(ctx, a.ID)
	if err != nil {
		t.Fatalf("ToggleActive() error = %v", err)
	}
	if active {
		t.Error("first toggle should deactivate")
	}

	active, _ = store.ToggleActive(ctx, a.ID)
	if !active {
		t.Error("second toggle should reactivate")
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, CreateInput{Title: "Doomed", Summary: "s"})

	deleted, err := store.Delete(ctx, a.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	// The deleted article comes back so callers can clean up its images.
	if deleted.ID != a.ID {
		t.Errorf("Delete() returned ID = %v, want %v", deleted.ID, a.ID)
	}

	if _, err := store.GetByID(ctx, a.ID); !apperr.IsNotFound(err) {
		t.Errorf("GetByID() after delete error = %v, want NotFound", err)
	}
}
