// internal/domain/models/page.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SEO holds the search-engine fields every content page carries.
type SEO struct {
	MetaTitle       string   `bson:"meta_title" json:"meta_title"`
	MetaDescription string   `bson:"meta_description" json:"meta_description"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
}

// PageMeta is embedded by every page aggregate document.
//
// Exactly one document per page collection has IsActive=true; that is the
// document served to the public site. Version is the optimistic-concurrency
// counter: every save is conditional on the version it read, so two admins
// editing the same page cannot silently overwrite each other.
type PageMeta struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PageTitle       string             `bson:"page_title" json:"page_title"`
	PageDescription string             `bson:"page_description" json:"page_description"`
	SEO             SEO                `bson:"seo" json:"seo"`
	IsActive        bool               `bson:"is_active" json:"is_active"`
	Version         int64              `bson:"version" json:"-"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// PageSettings carries a partial settings update. Nil fields keep their
// previous values; SEO is shallow-merged field by field.
type PageSettings struct {
	PageTitle       *string
	PageDescription *string
	MetaTitle       *string
	MetaDescription *string
	Keywords        []string
}

// Apply merges the provided fields into the page metadata.
func (m *PageMeta) Apply(s PageSettings) {
	if s.PageTitle != nil {
		m.PageTitle = *s.PageTitle
	}
	if s.PageDescription != nil {
		m.PageDescription = *s.PageDescription
	}
	if s.MetaTitle != nil {
		m.SEO.MetaTitle = *s.MetaTitle
	}
	if s.MetaDescription != nil {
		m.SEO.MetaDescription = *s.MetaDescription
	}
	if s.Keywords != nil {
		m.SEO.Keywords = s.Keywords
	}
}

// Meta returns the embedded metadata; it is what makes each aggregate type
// satisfy the content store's Doc interface through embedding.
func (m *PageMeta) Meta() *PageMeta { return m }
