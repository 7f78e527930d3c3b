// Package automation provides storage for the Automation page aggregate.
// Content blocks live inside their item's document array and are addressed
// by an (itemID, contentID) pair, item resolved first.
package automation

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tranchon2702/saigon3-cms/internal/app/store/content"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/apperr"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Store provides access to the automation collection.
type Store struct {
	pages *content.Store[models.AutomationPage, *models.AutomationPage]
}

// New creates a new automation store.
func New(db *mongo.Database) *Store {
	return &Store{pages: content.NewStore[models.AutomationPage](db, "automation", "automation page")}
}

func items(p *models.AutomationPage) *[]models.AutomationItem { return &p.Items }

// Page returns the active automation page.
func (s *Store) Page(ctx context.Context) (*models.AutomationPage, error) {
	return s.pages.Active(ctx)
}

// Insert stores a new page document (used by seeding).
func (s *Store) Insert(ctx context.Context, page *models.AutomationPage) error {
	return s.pages.Insert(ctx, page)
}

// UpdateSettings partially merges page title/description/SEO fields.
func (s *Store) UpdateSettings(ctx context.Context, in models.PageSettings) (*models.AutomationPage, error) {
	return s.pages.UpdateSettings(ctx, in)
}

// ItemInput contains the input for creating an automation item.
type ItemInput struct {
	Title       string
	Description string
	Image       models.ImageAsset
	Order       *int
}

// AddItem appends an automation item to the active page.
func (s *Store) AddItem(ctx context.Context, in ItemInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Title) == "" {
		return primitive.NilObjectID, apperr.Validation("item title is required")
	}
	e := models.AutomationItem{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Image:        in.Image,
		ContentItems: []models.ContentItem{},
	}
	return content.AddItem(s.pages, ctx, items, e, in.Order)
}

// ItemUpdate contains the partial update for an automation item.
type ItemUpdate struct {
	Title       *string
	Description *string
	Image       *models.ImageAsset
}

// UpdateItem merges the provided fields into an existing item.
func (s *Store) UpdateItem(ctx context.Context, id primitive.ObjectID, in ItemUpdate) error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return apperr.Validation("item title cannot be empty")
	}
	return content.UpdateItem(s.pages, ctx, items, id, "automation item",
		func(it *models.AutomationItem) {
			if in.Title != nil {
				it.Title = strings.TrimSpace(*in.Title)
			}
			if in.Description != nil {
				it.Description = *in.Description
			}
			if in.Image != nil {
				it.Image = *in.Image
			}
		})
}

// RemoveItem deletes an item and, with it, every content block it owns.
func (s *Store) RemoveItem(ctx context.Context, id primitive.ObjectID) error {
	return content.RemoveItem(s.pages, ctx, items, id, "automation item")
}

// ToggleItem flips an item's active flag and returns the new value.
func (s *Store) ToggleItem(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return content.ToggleItem(s.pages, ctx, items, id, "automation item")
}

// ReorderItems applies the given id order to the items.
func (s *Store) ReorderItems(ctx context.Context, ids []primitive.ObjectID) error {
	return content.ReorderItems(s.pages, ctx, items, ids)
}

// SortedItems returns active items in display order.
func (s *Store) SortedItems(ctx context.Context) ([]models.AutomationItem, error) {
	return content.SortedItems(s.pages, ctx, items)
}

// AllItems returns every item for admin tooling.
func (s *Store) AllItems(ctx context.Context) ([]models.AutomationItem, error) {
	return content.AllItems(s.pages, ctx, items)
}

func findItem(p *models.AutomationPage, itemID primitive.ObjectID) (*models.AutomationItem, error) {
	it, ok := ordered.Find(p.Items, itemID)
	if !ok {
		return nil, apperr.NotFound("automation item")
	}
	return it, nil
}

// ContentInput contains the input for creating a content block.
type ContentInput struct {
	Heading string
	Body    string
	Image   models.ImageAsset
	Order   *int
}

// AddContent appends a content block to an item.
func (s *Store) AddContent(ctx context.Context, itemID primitive.ObjectID, in ContentInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Heading) == "" {
		return primitive.NilObjectID, apperr.Validation("content heading is required")
	}
	var id primitive.ObjectID
	_, err := s.pages.Mutate(ctx, func(p *models.AutomationPage) error {
		it, err := findItem(p, itemID)
		if err != nil {
			return err
		}
		c := models.ContentItem{
			Heading: strings.TrimSpace(in.Heading),
			Body:    in.Body,
			Image:   in.Image,
		}
		id = ordered.Add(&it.ContentItems, c, in.Order)
		return nil
	})
	return id, err
}

// ContentUpdate contains the partial update for a content block.
type ContentUpdate struct {
	Heading *string
	Body    *string
	Image   *models.ImageAsset
}

// UpdateContent merges the provided fields into a content block.
func (s *Store) UpdateContent(ctx context.Context, itemID, contentID primitive.ObjectID, in ContentUpdate) error {
	if in.Heading != nil && strings.TrimSpace(*in.Heading) == "" {
		return apperr.Validation("content heading cannot be empty")
	}
	_, err := s.pages.Mutate(ctx, func(p *models.AutomationPage) error {
		it, err := findItem(p, itemID)
		if err != nil {
			return err
		}
		c, ok := ordered.Find(it.ContentItems, contentID)
		if !ok {
			return apperr.NotFound("content item")
		}
		if in.Heading != nil {
			c.Heading = strings.TrimSpace(*in.Heading)
		}
		if in.Body != nil {
			c.Body = *in.Body
		}
		if in.Image != nil {
			c.Image = *in.Image
		}
		return nil
	})
	return err
}

// RemoveContent deletes a content block from an item.
func (s *Store) RemoveContent(ctx context.Context, itemID, contentID primitive.ObjectID) error {
	_, err := s.pages.Mutate(ctx, func(p *models.AutomationPage) error {
		it, err := findItem(p, itemID)
		if err != nil {
			return err
		}
		if !ordered.Remove(&it.ContentItems, contentID) {
			return apperr.NotFound("content item")
		}
		return nil
	})
	return err
}

// ToggleContent flips a content block's active flag and returns the new value.
func (s *Store) ToggleContent(ctx context.Context, itemID, contentID primitive.ObjectID) (bool, error) {
	var nowActive bool
	_, err := s.pages.Mutate(ctx, func(p *models.AutomationPage) error {
		it, err := findItem(p, itemID)
		if err != nil {
			return err
		}
		v, ok := ordered.ToggleActive(it.ContentItems, contentID)
		if !ok {
			return apperr.NotFound("content item")
		}
		nowActive = v
		return nil
	})
	return nowActive, err
}

// ReorderContent applies the given id order to an item's content blocks.
func (s *Store) ReorderContent(ctx context.Context, itemID primitive.ObjectID, ids []primitive.ObjectID) error {
	_, err := s.pages.Mutate(ctx, func(p *models.AutomationPage) error {
		it, err := findItem(p, itemID)
		if err != nil {
			return err
		}
		ordered.Reorder(it.ContentItems, ids)
		return nil
	})
	return err
}

// SortedContent returns an item's active content blocks in display order.
func (s *Store) SortedContent(ctx context.Context, itemID primitive.ObjectID) ([]models.ContentItem, error) {
	p, err := s.pages.Active(ctx)
	if err != nil {
		return nil, err
	}
	it, err := findItem(p, itemID)
	if err != nil {
		return nil, err
	}
	return ordered.SortedActive(it.ContentItems), nil
}
