// Package products provides storage for the product catalog aggregate.
//
// The catalog nests two levels deep: products own applications, and each
// application owns a gallery of images. Operations address the chain from
// the outside in and surface NotFound for the outermost missing link.
package products

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

// Store provides access to the products collection.
type Store struct {
	pages *content.Store[models.ProductsPage, *models.ProductsPage]
}

// New creates a new products store.
func New(db *mongo.Database) *Store {
	return &Store{pages: content.NewStore[models.ProductsPage](db, "products", "products page")}
}

func catalog(p *models.ProductsPage) *[]models.Product { return &p.Products }

// Page returns the active products page.
func (s *Store) Page(ctx context.Context) (*models.ProductsPage, error) {
	return s.pages.Active(ctx)
}

// Insert stores a new page document (used by seeding).
func (s *Store) Insert(ctx context.Context, page *models.ProductsPage) error {
	return s.pages.Insert(ctx, page)
}

// UpdateSettings partially merges page title/description/SEO fields.
func (s *Store) UpdateSettings(ctx context.Context, in models.PageSettings) (*models.ProductsPage, error) {
	return s.pages.UpdateSettings(ctx, in)
}

// ProductInput contains the input for creating a product.
type ProductInput struct {
	Name        string
	Description string
	Image       models.ImageAsset
	Order       *int
}

// AddProduct appends a product to the catalog.
func (s *Store) AddProduct(ctx context.Context, in ProductInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Name) == "" {
		return primitive.NilObjectID, apperr.Validation("product name is required")
	}
	e := models.Product{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Image:        in.Image,
		Applications: []models.ProductApplication{},
	}
	return content.AddItem(s.pages, ctx, catalog, e, in.Order)
}

// ProductUpdate contains the partial update for a product.
type ProductUpdate struct {
	Name        *string
	Description *string
	Image       *models.ImageAsset
}

// UpdateProduct merges the provided fields into an existing product.
func (s *Store) UpdateProduct(ctx context.Context, id primitive.ObjectID, in ProductUpdate) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return apperr.Validation("product name cannot be empty")
	}
	return content.UpdateItem(s.pages, ctx, catalog, id, "product",
		func(p *models.Product) {
			if in.Name != nil {
				p.Name = strings.TrimSpace(*in.Name)
			}
			if in.Description != nil {
				p.Description = *in.Description
			}
			if in.Image != nil {
				p.Image = *in.Image
			}
		})
}

// RemoveProduct deletes a product and, with it, its applications and their
// galleries.
func (s *Store) RemoveProduct(ctx context.Context, id primitive.ObjectID) error {
	return content.RemoveItem(s.pages, ctx, catalog, id, "product")
}

// ToggleProduct flips a product's active flag and returns the new value.
func (s *Store) ToggleProduct(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return content.ToggleItem(s.pages, ctx, catalog, id, "product")
}

// ReorderProducts applies the given id order to the catalog.
func (s *Store) ReorderProducts(ctx context.Context, ids []primitive.ObjectID) error {
	return content.ReorderItems(s.pages, ctx, catalog, ids)
}

// SortedProducts returns active products in display order.
func (s *Store) SortedProducts(ctx context.Context) ([]models.Product, error) {
	return content.SortedItems(s.pages, ctx, catalog)
}

// AllProducts returns every product for admin tooling.
func (s *Store) AllProducts(ctx context.Context) ([]models.Product, error) {
	return content.AllItems(s.pages, ctx, catalog)
}

func findProduct(p *models.ProductsPage, productID primitive.ObjectID) (*models.Product, error) {
	prod, ok := ordered.Find(p.Products, productID)
	if !ok {
		return nil, apperr.NotFound("product")
	}
	return prod, nil
}

func findApplication(prod *models.Product, appID primitive.ObjectID) (*models.ProductApplication, error) {
	app, ok := ordered.Find(prod.Applications, appID)
	if !ok {
		return nil, apperr.NotFound("product application")
	}
	return app, nil
}

// ApplicationInput contains the input for creating an application.
type ApplicationInput struct {
	Name        string
	Description string
	Order       *int
}

// AddApplication appends an application to a product.
func (s *Store) AddApplication(ctx context.Context, productID primitive.ObjectID, in ApplicationInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Name) == "" {
		return primitive.NilObjectID, apperr.Validation("application name is required")
	}
	var id primitive.ObjectID
	_, err := s.pages.Mutate(ctx, func(p *models.ProductsPage) error {
		prod, err := findProduct(p, productID)
		if err != nil {
			return err
		}
		a := models.ProductApplication{
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Images:      []models.GalleryImage{},
		}
		id = ordered.Add(&prod.Applications, a, in.Order)
		return nil
	})
	return id, err
}

// ApplicationUpdate contains the partial update for an application.
type ApplicationUpdate struct {
	Name        *string
	Description *string
}

// UpdateApplication merges the provided fields into an application.
func (s *Store) UpdateApplication(ctx context.Context, productID, appID primitive.ObjectID, in ApplicationUpdate) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return apperr.Validation("application name cannot be empty")
	}
	_, err := s.pages.Mutate(ctx, func(p *models.ProductsPage) error {
		prod, err := findProduct(p, productID)
		if err != nil {
			return err
		}
		a, err := findApplication(prod, appID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			a.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			a.Description = *in.Description
		}
		return nil
	})
	return err
}

// ToggleApplication flips an application's active flag and returns the
// new value.
func (s *Store) ToggleApplication(ctx context.Context, productID, appID primitive.ObjectID) (bool, error) {
	var nowActive bool
	_, err := s.pages.Mutate(ctx, func(p *models.ProductsPage) error {
		prod, err := findProduct(p, productID)
		if err != nil {
			return err
		}
		v, ok := ordered.ToggleActive(prod.Applications, appID)
		if !ok {
			return apperr.NotFound("product application")
		}
		nowActive = v
		return nil
	})
	return nowActive, err
}

// RemoveApplication deletes an application and its gallery from a product.
func (s *Store) RemoveApplication(ctx context.Context, productID, appID primitive.ObjectID) error {
	_, err := s.pages.Mutate(ctx, func(p *models.ProductsPage) error {
		prod, err := findProduct(p, productID)
		if err != nil {
			return err
		}
		if !ordered.Remove(&prod.Applications, appID) {
			return apperr.NotFound("product application")
		}
		return nil
	})
	return err
}

// ReorderApplications applies the given id order to a product's applications.
func (s *Store) ReorderApplications(ctx context.Context, productID primitive.ObjectID, ids []primitive.ObjectID) error {
	_, err := s.pages.Mutate(ctx, func(p *models.ProductsPage) error {
		prod, err := findProduct(p, productID)
		if err != nil {
			return err
		}
		ordered.Reorder(prod.Applications, ids)
		return nil
	})
	return err
}

// SortedApplications returns a product's active applications in display order.
func (s *Store) SortedApplications(ctx context.Context, productID primitive.ObjectID) ([]models.ProductApplication, error) {
	p, err := s.pages.Active(ctx)
	if err != nil {
		return nil, err
	}
	prod, err := findProduct(p, productID)
	if err != nil {
		return nil, err
	}
	return ordered.SortedActive(prod.Applications), nil
}

// GalleryInput contains the input for adding a gallery image.
type GalleryInput struct {
	Image   models.ImageAsset
	Caption string
	Order   *int
}

// AddGalleryImage appends an image to an application's gallery.
func (s *Store) AddGalleryImage(ctx context.Context, productID, appID primitive.ObjectID, in GalleryInput) (primitive.ObjectID, error) {
	if in.Image.IsZero() {
		return primitive.NilObjectID, apperr.Validation("gallery image is required")
	}
	var id primitive.ObjectID
	_, err := s.pages.Mutate(ctx, func(p *models.ProductsPage) error {
		prod, err := findProduct(p, productID)
		if err != nil {
			return err
		}
		a, err := findApplication(prod, appID)
		if err != nil {
			return err
		}
		g := models.GalleryImage{Image: in.Image, Caption: in.Caption}
		id = ordered.Add(&a.Images, g, in.Order)
		return nil
	})
	return id, err
}

// RemoveGalleryImage deletes one image from an application's gallery.
func (s *Store) RemoveGalleryImage(ctx context.Context, productID, appID, imageID primitive.ObjectID) error {
	_, err := s.pages.Mutate(ctx, func(p *models.ProductsPage) error {
		prod, err := findProduct(p, productID)
		if err != nil {
			return err
		}
		a, err := findApplication(prod, appID)
		if err != nil {
			return err
		}
		if !ordered.Remove(&a.Images, imageID) {
			return apperr.NotFound("gallery image")
		}
		return nil
	})
	return err
}

// ReorderGallery applies the given id order to an application's gallery.
func (s *Store) ReorderGallery(ctx context.Context, productID, appID primitive.ObjectID, ids []primitive.ObjectID) error {
	_, err := s.pages.Mutate(ctx, func(p *models.ProductsPage) error {
		prod, err := findProduct(p, productID)
		if err != nil {
			return err
		}
		a, err := findApplication(prod, appID)
		if err != nil {
			return err
		}
		ordered.Reorder(a.Images, ids)
		return nil
	})
	return err
}

// SortedGallery returns an application's active images in display order.
func (s *Store) SortedGallery(ctx context.Context, productID, appID primitive.ObjectID) ([]models.GalleryImage, error) {
	p, err := s.pages.Active(ctx)
	if err != nil {
		return nil, err
	}
	prod, err := findProduct(p, productID)
	if err != nil {
		return nil, err
	}
	a, err := findApplication(prod, appID)
	if err != nil {
		return nil, err
	}
	return ordered.SortedActive(a.Images), nil
}
