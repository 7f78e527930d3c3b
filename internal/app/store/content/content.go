// Package content provides the generic store behind every page aggregate
// (facilities, machinery, automation, eco-friendly, products, jobs page).
//
// A page aggregate is a singleton-active document: many rows may exist per
// collection, but exactly one has is_active=true and that one is what the
// public site reads. Activate enforces the invariant at write time by
// deactivating siblings in the same call.
//
// All mutations go through Mutate, a load-mutate-conditional-replace loop
// keyed on the document's version counter. The original design this app
// replaces saved whole documents with last-write-wins semantics, losing
// concurrent admin edits; the version check closes that race at the cost of
// a bounded retry.
package content

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// mutateRetries bounds the optimistic-concurrency retry loop.
const mutateRetries = 3

// Doc is satisfied by any aggregate struct that embeds models.PageMeta.
type Doc interface{ Meta() *models.PageMeta }

// ptr constrains P to *D where *D exposes the embedded page metadata.
type ptr[D any] interface {
	*D
	Doc
}

// Store provides access to one page-aggregate collection.
type Store[D any, P ptr[D]] struct {
	c    *mongo.Collection
	kind string // used in error messages, e.g. "facilities page"
}

// NewStore creates a store over the named collection.
func NewStore[D any, P ptr[D]](db *mongo.Database, collection, kind string) *Store[D, P] {
	return &Store[D, P]{c: db.Collection(collection), kind: kind}
}

// Active returns the one live document.
//
// Zero active documents surfaces NotFound. If the collection is
// misconfigured with several active rows, the driver's first match wins;
// Activate repairs the invariant on the next activation.
func (s *Store[D, P]) Active(ctx context.Context) (P, error) {
	var doc D
	err := s.c.FindOne(ctx, bson.M{"is_active": true}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound(s.kind)
	}
	if err != nil {
		return nil, err
	}
	return P(&doc), nil
}

// GetByID returns one document regardless of its active flag.
func (s *Store[D, P]) GetByID(ctx context.Context, id primitive.ObjectID) (P, error) {
	var doc D
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound(s.kind)
	}
	if err != nil {
		return nil, err
	}
	return P(&doc), nil
}

// All returns every document, active or not, for admin tooling.
func (s *Store[D, P]) All(ctx context.Context) ([]D, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Insert stores a new document. The caller decides IsActive; seeding uses
// this to create the initial live row.
func (s *Store[D, P]) Insert(ctx context.Context, doc P) error {
	meta := doc.Meta()
	if meta.ID.IsZero() {
		meta.ID = primitive.NewObjectID()
	}
	meta.Version = 1
	meta.UpdatedAt = time.Now().UTC()

	_, err := s.c.InsertOne(ctx, doc)
	return err
}

// Activate makes the identified document the live one and deactivates every
// sibling in the same write path, keeping the single-active invariant.
func (s *Store[D, P]) Activate(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_active": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound(s.kind)
	}

	_, err = s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": id}, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	return err
}

// Mutate loads the active document, applies fn, and writes the result back
// conditional on the version it read. A lost version check reloads and
// retries up to mutateRetries times before surfacing Conflict.
//
// fn may return an apperr error (NotFound for a missing subdocument,
// Validation for bad input); it propagates unchanged and nothing is written.
func (s *Store[D, P]) Mutate(ctx context.Context, fn func(P) error) (P, error) {
	var lastErr error
	for attempt := 0; attempt < mutateRetries; attempt++ {
		doc, err := s.Active(ctx)
		if err != nil {
			return nil, err
		}

		if err := fn(doc); err != nil {
			return nil, err
		}

		meta := doc.Meta()
		readVersion := meta.Version
		meta.Version = readVersion + 1
		meta.UpdatedAt = time.Now().UTC()

		res, err := s.c.ReplaceOne(ctx,
			bson.M{"_id": meta.ID, "version": readVersion},
			doc,
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return doc, nil
		}
		lastErr = apperr.Conflict(s.kind)
	}
	return nil, lastErr
}

// UpdateSettings partially merges page metadata into the active document.
// Omitted fields keep their previous values; SEO merges field by field.
func (s *Store[D, P]) UpdateSettings(ctx context.Context, settings models.PageSettings) (P, error) {
	return s.Mutate(ctx, func(doc P) error {
		doc.Meta().Apply(settings)
		return nil
	})
}
