// internal/domain/models/automation.go
package models

import "github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"

// AutomationPage is the singleton-active aggregate behind the Automation page.
type AutomationPage struct {
	PageMeta `bson:",inline"`

	Items []AutomationItem `bson:"items" json:"items"`
}

// AutomationItem is one automation showcase (laser machine, robot line).
// Each item owns an ordered list of content blocks.
type AutomationItem struct {
	ordered.Meta `bson:",inline"`

	Title        string        `bson:"title" json:"title"`
	Description  string        `bson:"description" json:"description"`
	Image        ImageAsset    `bson:"image,omitempty" json:"image,omitempty"`
	ContentItems []ContentItem `bson:"content_items" json:"content_items"`
}

// ContentItem is one heading/body block inside an automation item.
type ContentItem struct {
	ordered.Meta `bson:",inline"`

	Heading string     `bson:"heading" json:"heading"`
	Body    string     `bson:"body" json:"body"`
	Image   ImageAsset `bson:"image,omitempty" json:"image,omitempty"`
}
