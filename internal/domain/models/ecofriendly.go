// internal/domain/models/ecofriendly.go
package models

import "github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"

// EcoFriendlyPage is the singleton-active aggregate behind the
// Eco-Friendly / sustainability page.
type EcoFriendlyPage struct {
	PageMeta `bson:",inline"`

	Milestones []Milestone `bson:"milestones" json:"milestones"`
	CoreValues []CoreValue `bson:"core_values" json:"core_values"`
}

// Milestone is one sustainability milestone on the page timeline.
type Milestone struct {
	ordered.Meta `bson:",inline"`

	Year        string     `bson:"year" json:"year"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Image       ImageAsset `bson:"image,omitempty" json:"image,omitempty"`
}

// CoreValue is one company value shown on the page.
type CoreValue struct {
	ordered.Meta `bson:",inline"`

	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Icon        string `bson:"icon" json:"icon"`
}
