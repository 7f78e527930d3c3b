// internal/domain/models/facilities.go
package models

import "github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"

// FacilitiesPage is the singleton-active aggregate behind the Facilities page.
type FacilitiesPage struct {
	PageMeta `bson:",inline"`

	Features []FacilityFeature `bson:"features" json:"features"`
	Metrics  []FacilityMetric  `bson:"metrics" json:"metrics"`
}

// FacilityFeature is one highlighted facility capability (a hall, a
// production line, a certification) with an illustrative image.
type FacilityFeature struct {
	ordered.Meta `bson:",inline"`

	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Image       ImageAsset `bson:"image,omitempty" json:"image,omitempty"`
}

// FacilityMetric is one headline number ("50,000 m2", "240 employees").
type FacilityMetric struct {
	ordered.Meta `bson:",inline"`

	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}
