package ordered

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// metric is a minimal entity for exercising the engine.
type metric struct {
	Meta  `bson:",inline"`
	Value string `bson:"value"`
	Label string `bson:"label"`
}

func addMetric(t *testing.T, items *[]metric, value string, order *int) primitive.ObjectID {
	t.Helper()
	id := Add(items, metric{Value: value}, order)
	if id.IsZero() {
		t.Fatal("Add() returned zero id")
	}
	return id
}

func values(items []metric) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.Value
	}
	return out
}

func intPtr(n int) *int { return &n }

func TestAdd_Defaults(t *testing.T) {
	var items []metric

	addMetric(t, &items, "a", nil)
	addMetric(t, &items, "b", nil)

	if items[0].Order != 1 || items[1].Order != 2 {
		t.Errorf("orders = [%d %d], want [1 2]", items[0].Order, items[1].Order)
	}
	for _, m := range items {
		if !m.IsActive {
			t.Errorf("entity %q not active after Add", m.Value)
		}
	}
}

func TestAdd_ExplicitOrderCollision(t *testing.T) {
	var items []metric

	addMetric(t, &items, "first", intPtr(5))
	addMetric(t, &items, "second", intPtr(5))

	// Equal orders are allowed; ties break by insertion position.
	got := values(SortedActive(items))
	if got[0] != "first" || got[1] != "second" {
		t.Errorf("SortedActive() = %v, want [first second]", got)
	}
}

func TestFind(t *testing.T) {
	var items []metric
	id := addMetric(t, &items, "a", nil)

	p, ok := Find(items, id)
	if !ok {
		t.Fatal("Find() did not locate existing entity")
	}
	p.Value = "changed"
	if items[0].Value != "changed" {
		t.Error("Find() did not return a pointer into the collection")
	}

	if _, ok := Find(items, primitive.NewObjectID()); ok {
		t.Error("Find() located a nonexistent entity")
	}
}

func TestRemove(t *testing.T) {
	var items []metric
	a := addMetric(t, &items, "a", nil)
	addMetric(t, &items, "b", nil)

	if !Remove(&items, a) {
		t.Fatal("Remove() = false for existing entity")
	}
	if len(items) != 1 || items[0].Value != "b" {
		t.Errorf("after Remove, items = %v", values(items))
	}
	// No renumbering: b keeps order 2.
	if items[0].Order != 2 {
		t.Errorf("remaining order = %d, want 2 (no renumber)", items[0].Order)
	}

	if Remove(&items, a) {
		t.Error("Remove() = true for already-removed entity")
	}
}

func TestToggleActive(t *testing.T) {
	var items []metric
	id := addMetric(t, &items, "a", nil)

	nowActive, ok := ToggleActive(items, id)
	if !ok || nowActive {
		t.Fatalf("ToggleActive() = (%v, %v), want (false, true)", nowActive, ok)
	}
	nowActive, ok = ToggleActive(items, id)
	if !ok || !nowActive {
		t.Fatalf("second ToggleActive() = (%v, %v), want (true, true)", nowActive, ok)
	}

	if _, ok := ToggleActive(items, primitive.NewObjectID()); ok {
		t.Error("ToggleActive() found a nonexistent entity")
	}
}

func TestReorder(t *testing.T) {
	var items []metric
	a := addMetric(t, &items, "A", nil)
	b := addMetric(t, &items, "B", nil)
	c := addMetric(t, &items, "C", nil)

	Reorder(items, []primitive.ObjectID{c, a, b})

	got := values(SortedActive(items))
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedActive() = %v, want %v", got, want)
		}
	}

	// Orders are the 1-based positions in the reorder list.
	for i, id := range []primitive.ObjectID{c, a, b} {
		p, _ := Find(items, id)
		if p.Order != i+1 {
			t.Errorf("order of %s = %d, want %d", p.Value, p.Order, i+1)
		}
	}
}

func TestReorder_PartialAndUnknown(t *testing.T) {
	var items []metric
	a := addMetric(t, &items, "A", nil)
	b := addMetric(t, &items, "B", nil)
	c := addMetric(t, &items, "C", nil)

	// Unknown ids are ignored; omitted ids keep their previous order.
	Reorder(items, []primitive.ObjectID{c, primitive.NewObjectID(), a})

	pc, _ := Find(items, c)
	pa, _ := Find(items, a)
	pb, _ := Find(items, b)
	if pc.Order != 1 || pa.Order != 3 {
		t.Errorf("orders after partial reorder: c=%d a=%d, want c=1 a=3", pc.Order, pa.Order)
	}
	if pb.Order != 2 {
		t.Errorf("omitted sibling order = %d, want unchanged 2", pb.Order)
	}
}

func TestSortedActive_ExcludesInactive(t *testing.T) {
	var items []metric
	addMetric(t, &items, "visible", nil)
	hidden := addMetric(t, &items, "hidden", nil)
	ToggleActive(items, hidden)

	got := SortedActive(items)
	if len(got) != 1 || got[0].Value != "visible" {
		t.Errorf("SortedActive() = %v, want [visible]", values(got))
	}
	// The unfiltered slice still holds both.
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}

func TestSortedActive_Idempotent(t *testing.T) {
	var items []metric
	addMetric(t, &items, "b", intPtr(2))
	addMetric(t, &items, "a", intPtr(1))
	addMetric(t, &items, "c", intPtr(2))

	first := values(SortedActive(items))
	second := values(SortedActive(items))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("projections differ: %v vs %v", first, second)
		}
	}
	// Input order untouched.
	if items[0].Value != "b" {
		t.Error("SortedActive mutated the input slice")
	}
}

func TestMetricsScenario(t *testing.T) {
	// Mirrors the facilities metrics flow: an explicit order 0 sorts ahead
	// of an auto-assigned order 2.
	var items []metric
	addMetric(t, &items, "50000", intPtr(0))
	addMetric(t, &items, "240", nil)

	if items[1].Order != 2 {
		t.Fatalf("auto order = %d, want 2", items[1].Order)
	}
	got := values(SortedActive(items))
	if got[0] != "50000" || got[1] != "240" {
		t.Errorf("SortedActive() = %v, want [50000 240]", got)
	}
}
