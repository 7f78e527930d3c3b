package automation

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
	err := store.Insert(ctx, &models.AutomationPage{
		PageMeta: models.PageMeta{PageTitle: "Automation", IsActive: true},
		Items:    []models.AutomationItem{},
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return store
}

func TestStore_Items(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := store.AddItem(ctx, ItemInput{
		Title:       "Laser Engraving",
		Description: "Automated denim finishing",
	})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	title := "Laser Finishing"
	if err := store.UpdateItem(ctx, id, ItemUpdate{Title: &title}); err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}

	items, _ := store.AllItems(ctx)
	if len(items) != 1 || items[0].Title != title {
		t.Fatalf("items = %+v, want one renamed item", items)
	}
	if items[0].ContentItems == nil {
		t.Error("ContentItems should be initialized empty")
	}

	if _, err := store.AddItem(ctx, ItemInput{Title: "  "}); !apperr.IsValidation(err) {
		t.Errorf("AddItem() with blank title error = %v, want Validation", err)
	}
}

func TestStore_ContentBlocks(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	item, _ := store.AddItem(ctx, ItemInput{Title: "Robot Line"})

	a, err := store.AddContent(ctx, item, ContentInput{
		Heading: "Throughput",
		Body:    "400 garments per hour",
	})
	if err != nil {
		t.Fatalf("AddContent() error = %v", err)
	}
	b, _ := store.AddContent(ctx, item, ContentInput{Heading: "Precision", Body: "0.1 mm"})

	// Unknown item
	_, err = store.AddContent(ctx, primitive.NewObjectID(), ContentInput{Heading: "Orphan"})
	if !apperr.IsNotFound(err) {
		t.Errorf("AddContent() for unknown item error = %v, want NotFound", err)
	}

	body := "450 garments per hour"
	if err := store.UpdateContent(ctx, item, a, ContentUpdate{Body: &body}); err != nil {
		t.Fatalf("UpdateContent() error = %v", err)
	}

	if err := store.ReorderContent(ctx, item, []primitive.ObjectID{b, a}); err != nil {
		t.Fatalf("ReorderContent() error = %v", err)
	}

	blocks, _ := store.SortedContent(ctx, item)
	if len(blocks) != 2 {
		t.Fatalf("content count = %d, want 2", len(blocks))
	}
	if blocks[0].Heading != "Precision" {
		t.Errorf("blocks[0] = %q, want 'Precision' first after reorder", blocks[0].Heading)
	}
	if blocks[1].Body != body {
		t.Errorf("Body = %q, want updated", blocks[1].Body)
	}

	active, _ := store.ToggleContent(ctx, item, b)
	if active {
		t.Error("first toggle should deactivate")
	}
	blocks, _ = store.SortedContent(ctx, item)
	if len(blocks) != 1 {
		t.Errorf("active content count = %d, want 1", len(blocks))
	}

	if err := store.RemoveContent(ctx, item, a); err != nil {
		t.Fatalf("RemoveContent() error = %v", err)
	}
	if err := store.RemoveContent(ctx, item, a); !apperr.IsNotFound(err) {
		t.Errorf("RemoveContent() second call error = %v, want NotFound", err)
	}
}

func TestStore_RemoveItem_DropsContent(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	item, _ := store.AddItem(ctx, ItemInput{Title: "Doomed"})
	store.AddContent(ctx, item, ContentInput{Heading: "Gone"})

	if err := store.RemoveItem(ctx, item); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}

	if _, err := store.SortedContent(ctx, item); !apperr.IsNotFound(err) {
		t.Errorf("SortedContent() after item removal error = %v, want NotFound", err)
	}
}
