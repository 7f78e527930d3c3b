// internal/domain/models/products.go
package models

import "github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"

// ProductsPage is the singleton-active aggregate behind the product catalog.
// Products own applications, applications own gallery images; deleting a
// product removes both levels in the same document write.
type ProductsPage struct {
	PageMeta `bson:",inline"`

	Products []Product `bson:"products" json:"products"`
}

// Product is one catalog product (a denim wash style, a garment line).
type Product struct {
	ordered.Meta `bson:",inline"`

	Name         string               `bson:"name" json:"name"`
	Description  string               `bson:"description" json:"description"`
	Image        ImageAsset           `bson:"image,omitempty" json:"image,omitempty"`
	Applications []ProductApplication `bson:"applications" json:"applications"`
}

// ProductApplication is one use case of a product with its own gallery.
type ProductApplication struct {
	ordered.Meta `bson:",inline"`

	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description" json:"description"`
	Images      []GalleryImage `bson:"images" json:"images"`
}

// GalleryImage is one captioned image in an application gallery.
type GalleryImage struct {
	ordered.Meta `bson:",inline"`

	Image   ImageAsset `bson:"image" json:"image"`
	Caption string     `bson:"caption" json:"caption"`
}
