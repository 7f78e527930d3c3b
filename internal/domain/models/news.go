// internal/domain/models/news.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// News is one news article. Unlike the page aggregates, each article is its
// own document addressed publicly by slug.
//
// Slug is unique across the collection and derived from Title; JapaneseSlug
// is independently unique and derived from JapaneseTitle via romaji
// transliteration. Slugs regenerate only when their source title changes.
type News struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	JapaneseTitle string             `bson:"japanese_title,omitempty" json:"japanese_title,omitempty"`
	Slug          string             `bson:"slug" json:"slug"`
	JapaneseSlug  string             `bson:"japanese_slug,omitempty" json:"japanese_slug,omitempty"`
	Summary       string             `bson:"summary" json:"summary"`
	Content       string             `bson:"content" json:"content"` // sanitized HTML
	Image         ImageAsset         `bson:"image,omitempty" json:"image,omitempty"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
	PublishedAt   time.Time          `bson:"published_at" json:"published_at"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Program is a training/partnership program article. Same shape and slug
// rules as News, stored in its own collection.
type Program struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	JapaneseTitle string             `bson:"japanese_title,omitempty" json:"japanese_title,omitempty"`
	Slug          string             `bson:"slug" json:"slug"`
	JapaneseSlug  string             `bson:"japanese_slug,omitempty" json:"japanese_slug,omitempty"`
	Summary       string             `bson:"summary" json:"summary"`
	Content       string             `bson:"content" json:"content"` // sanitized HTML
	Image         ImageAsset         `bson:"image,omitempty" json:"image,omitempty"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
	PublishedAt   time.Time          `bson:"published_at" json:"published_at"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
