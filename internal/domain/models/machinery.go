// internal/domain/models/machinery.go
package models

import "github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"

// MachineryPage is the singleton-active aggregate behind the Machinery page.
// Stages own machines, so deleting a stage removes its machines in the same
// document write.
type MachineryPage struct {
	PageMeta `bson:",inline"`

	Stages []MachineryStage `bson:"stages" json:"stages"`
}

// MachineryStage is one production stage (washing, drying, finishing).
type MachineryStage struct {
	ordered.Meta `bson:",inline"`

	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Machines    []Machine `bson:"machines" json:"machines"`
}

// Machine is one machine model within a stage.
type Machine struct {
	ordered.Meta `bson:",inline"`

	Name     string     `bson:"name" json:"name"`
	Model    string     `bson:"model" json:"model"`
	Quantity int        `bson:"quantity" json:"quantity"`
	Image    ImageAsset `bson:"image,omitempty" json:"image,omitempty"`
}
