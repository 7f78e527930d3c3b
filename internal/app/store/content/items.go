// internal/app/store/content/items.go
package content

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
)

// The helpers below expose one ordered collection inside the active
// aggregate as a store: every per-page store (facilities features, eco
// milestones, job categories, ...) is a thin binding of these to a slice
// accessor. Each call is one Mutate round trip, so sibling collections on
// the same page cannot clobber each other.

// AddItem appends a new entity to the collection selected by slice and
// returns its assigned id.
func AddItem[D any, P ptr[D], E any, PE ordered.Ptr[E]](
	st *Store[D, P], ctx context.Context,
	slice func(P) *[]E, e E, explicitOrder *int,
) (primitive.ObjectID, error) {
	var id primitive.ObjectID
	_, err := st.Mutate(ctx, func(doc P) error {
		id = ordered.Add[E, PE](slice(doc), e, explicitOrder)
		return nil
	})
	return id, err
}

// UpdateItem applies merge to the identified entity. kind names the entity
// in the NotFound message ("facility feature").
func UpdateItem[D any, P ptr[D], E any, PE ordered.Ptr[E]](
	st *Store[D, P], ctx context.Context,
	slice func(P) *[]E, id primitive.ObjectID, kind string, merge func(PE),
) error {
	_, err := st.Mutate(ctx, func(doc P) error {
		p, ok := ordered.Find[E, PE](*slice(doc), id)
		if !ok {
			return apperr.NotFound(kind)
		}
		merge(p)
		return nil
	})
	return err
}

// RemoveItem deletes the identified entity. Sibling orders are not
// renumbered; callers that want contiguous orders follow up with
// ReorderItems.
func RemoveItem[D any, P ptr[D], E any, PE ordered.Ptr[E]](
	st *Store[D, P], ctx context.Context,
	slice func(P) *[]E, id primitive.ObjectID, kind string,
) error {
	_, err := st.Mutate(ctx, func(doc P) error {
		if !ordered.Remove[E, PE](slice(doc), id) {
			return apperr.NotFound(kind)
		}
		return nil
	})
	return err
}

// ToggleItem flips the entity's active flag and returns the new value.
func ToggleItem[D any, P ptr[D], E any, PE ordered.Ptr[E]](
	st *Store[D, P], ctx context.Context,
	slice func(P) *[]E, id primitive.ObjectID, kind string,
) (bool, error) {
	var nowActive bool
	_, err := st.Mutate(ctx, func(doc P) error {
		v, ok := ordered.ToggleActive[E, PE](*slice(doc), id)
		if !ok {
			return apperr.NotFound(kind)
		}
		nowActive = v
		return nil
	})
	return nowActive, err
}

// ReorderItems assigns 1-based orders from the id list. Unknown ids are
// ignored and omitted siblings keep their previous order.
func ReorderItems[D any, P ptr[D], E any, PE ordered.Ptr[E]](
	st *Store[D, P], ctx context.Context,
	slice func(P) *[]E, ids []primitive.ObjectID,
) error {
	_, err := st.Mutate(ctx, func(doc P) error {
		ordered.Reorder[E, PE](*slice(doc), ids)
		return nil
	})
	return err
}

// SortedItems returns the public projection of the collection: active
// entities sorted by order with stable ties. Read-only.
func SortedItems[D any, P ptr[D], E any, PE ordered.Ptr[E]](
	st *Store[D, P], ctx context.Context,
	slice func(P) *[]E,
) ([]E, error) {
	doc, err := st.Active(ctx)
	if err != nil {
		return nil, err
	}
	return ordered.SortedActive[E, PE](*slice(doc)), nil
}

// AllItems returns the unfiltered collection for admin tooling.
func AllItems[D any, P ptr[D], E any](
	st *Store[D, P], ctx context.Context,
	slice func(P) *[]E,
) ([]E, error) {
	doc, err := st.Active(ctx)
	if err != nil {
		return nil, err
	}
	return *slice(doc), nil
}
