// Package ordered implements the ordered/active subdocument collections that
// every content page in this app is built from.
//
// An ordered collection is a slice of entities embedded in a parent document.
// Each entity carries an order integer and an active flag via an embedded
// Meta. The public site reads the SortedActive projection (active only,
// sorted by order with stable ties); admin tooling reads the raw slice and
// mutates it through Add/Remove/ToggleActive/Reorder.
//
// Nested collections (a stage owning machines, a product owning applications
// owning images) are plain composition: the child slice is a field of the
// parent entity, so deleting a parent removes its children in the same
// document write.
//
// Order values are not required to be unique or contiguous. Reorder assigns
// 1-based positions for the ids it is given and leaves everything else
// alone: unknown ids are ignored, omitted siblings keep their previous
// order. Callers that want a full renumber send the full sibling id list.
package ordered

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meta is embedded by every entity that lives in an ordered collection.
type Meta struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Order    int                `bson:"order" json:"order"`
	IsActive bool               `bson:"is_active" json:"is_active"`
}

// OrderedMeta returns the embedded Meta; it is what makes an entity type
// satisfy Entity through embedding.
func (m *Meta) OrderedMeta() *Meta { return m }

// Entity is satisfied by any struct that embeds Meta.
type Entity interface{ OrderedMeta() *Meta }

// Ptr constrains P to *E where *E exposes the embedded Meta. It is
// exported so stores can write generic helpers over ordered collections.
type Ptr[E any] interface {
	*E
	Entity
}

// Add appends e to the collection and returns its assigned id.
//
// A zero id is replaced with a fresh ObjectID. If explicitOrder is nil the
// order defaults to len(siblings)+1; an explicit order may collide with an
// existing sibling, which is allowed (ties break by insertion position).
// The entity is always added active.
func Add[E any, P Ptr[E]](items *[]E, e E, explicitOrder *int) primitive.ObjectID {
	meta := P(&e).OrderedMeta()
	if meta.ID.IsZero() {
		meta.ID = primitive.NewObjectID()
	}
	if explicitOrder != nil {
		meta.Order = *explicitOrder
	} else {
		meta.Order = len(*items) + 1
	}
	meta.IsActive = true
	*items = append(*items, e)
	return meta.ID
}

// Find returns a pointer to the entity with the given id, or false if no
// such entity exists in the collection.
func Find[E any, P Ptr[E]](items []E, id primitive.ObjectID) (P, bool) {
	for i := range items {
		p := P(&items[i])
		if p.OrderedMeta().ID == id {
			return p, true
		}
	}
	return nil, false
}

// Remove deletes the entity with the given id and reports whether it was
// found. Remaining siblings keep their order values; no renumbering happens.
func Remove[E any, P Ptr[E]](items *[]E, id primitive.ObjectID) bool {
	s := *items
	for i := range s {
		if P(&s[i]).OrderedMeta().ID == id {
			*items = append(s[:i], s[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleActive flips the entity's active flag and returns the new value.
// The second result reports whether the entity was found.
func ToggleActive[E any, P Ptr[E]](items []E, id primitive.ObjectID) (bool, bool) {
	p, ok := Find[E, P](items, id)
	if !ok {
		return false, false
	}
	meta := p.OrderedMeta()
	meta.IsActive = !meta.IsActive
	return meta.IsActive, true
}

// Reorder sets each listed entity's order to its 1-based position in ids.
// Ids not present in the collection are silently ignored; entities omitted
// from ids keep their previous order unchanged.
func Reorder[E any, P Ptr[E]](items []E, ids []primitive.ObjectID) {
	pos := make(map[primitive.ObjectID]int, len(ids))
	for i, id := range ids {
		pos[id] = i + 1
	}
	for i := range items {
		meta := P(&items[i]).OrderedMeta()
		if p, ok := pos[meta.ID]; ok {
			meta.Order = p
		}
	}
}

// SortedActive returns the public-facing projection: active entities only,
// sorted ascending by order with ties broken by original array position.
// The input slice is never mutated.
func SortedActive[E any, P Ptr[E]](items []E) []E {
	out := make([]E, 0, len(items))
	for i := range items {
		if P(&items[i]).OrderedMeta().IsActive {
			out = append(out, items[i])
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return P(&out[a]).OrderedMeta().Order < P(&out[b]).OrderedMeta().Order
	})
	return out
}
