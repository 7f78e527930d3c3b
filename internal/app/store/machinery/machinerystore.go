// Package machinery provides storage for the Machinery page aggregate.
//
// Machines live inside their stage's document array, so machine operations
// address a (stageID, machineID) pair. The stage is resolved first: an
// unknown stage surfaces NotFound before any machine lookup, and deleting a
// stage removes its machines in the same document write.
package machinery

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

// Store provides access to the machinery collection.
type Store struct {
	pages *content.Store[models.MachineryPage, *models.MachineryPage]
}

// New creates a new machinery store.
func New(db *mongo.Database) *Store {
	return &Store{pages: content.NewStore[models.MachineryPage](db, "machinery", "machinery page")}
}

func stages(p *models.MachineryPage) *[]models.MachineryStage { return &p.Stages }

// Page returns the active machinery page.
func (s *Store) Page(ctx context.Context) (*models.MachineryPage, error) {
	return s.pages.Active(ctx)
}

// Insert stores a new page document (used by seeding).
func (s *Store) Insert(ctx context.Context, page *models.MachineryPage) error {
	return s.pages.Insert(ctx, page)
}

// UpdateSettings partially merges page title/description/SEO fields.
func (s *Store) UpdateSettings(ctx context.Context, in models.PageSettings) (*models.MachineryPage, error) {
	return s.pages.UpdateSettings(ctx, in)
}

// StageInput contains the input for creating a stage.
type StageInput struct {
	Name        string
	Description string
	Order       *int
}

// AddStage appends a stage to the active page.
func (s *Store) AddStage(ctx context.Context, in StageInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Name) == "" {
		return primitive.NilObjectID, apperr.Validation("stage name is required")
	}
	e := models.MachineryStage{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Machines:    []models.Machine{},
	}
	return content.AddItem(s.pages, ctx, stages, e, in.Order)
}

// StageUpdate contains the partial update for a stage.
type StageUpdate struct {
	Name        *string
	Description *string
}

// UpdateStage merges the provided fields into an existing stage.
func (s *Store) UpdateStage(ctx context.Context, id primitive.ObjectID, in StageUpdate) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return apperr.Validation("stage name cannot be empty")
	}
	return content.UpdateItem(s.pages, ctx, stages, id, "machinery stage",
		func(st *models.MachineryStage) {
			if in.Name != nil {
				st.Name = strings.TrimSpace(*in.Name)
			}
			if in.Description != nil {
				st.Description = *in.Description
			}
		})
}

// RemoveStage deletes a stage and, with it, every machine it owns.
func (s *Store) RemoveStage(ctx context.Context, id primitive.ObjectID) error {
	return content.RemoveItem(s.pages, ctx, stages, id, "machinery stage")
}

// ToggleStage flips a stage's active flag and returns the new value.
func (s *Store) ToggleStage(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return content.ToggleItem(s.pages, ctx, stages, id, "machinery stage")
}

// ReorderStages applies the given id order to the stages.
func (s *Store) ReorderStages(ctx context.Context, ids []primitive.ObjectID) error {
	return content.ReorderItems(s.pages, ctx, stages, ids)
}

// SortedStages returns active stages in display order.
func (s *Store) SortedStages(ctx context.Context) ([]models.MachineryStage, error) {
	return content.SortedItems(s.pages, ctx, stages)
}

// AllStages returns every stage for admin tooling.
func (s *Store) AllStages(ctx context.Context) ([]models.MachineryStage, error) {
	return content.AllItems(s.pages, ctx, stages)
}

// findStage resolves a stage inside a loaded page.
func findStage(p *models.MachineryPage, stageID primitive.ObjectID) (*models.MachineryStage, error) {
	st, ok := ordered.Find(p.Stages, stageID)
	if !ok {
		return nil, apperr.NotFound("machinery stage")
	}
	return st, nil
}

// MachineInput contains the input for creating a machine within a stage.
type MachineInput struct {
	Name     string
	Model    string
	Quantity int
	Image    models.ImageAsset
	Order    *int
}

// AddMachine appends a machine to a stage.
func (s *Store) AddMachine(ctx context.Context, stageID primitive.ObjectID, in MachineInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Name) == "" {
		return primitive.NilObjectID, apperr.Validation("machine name is required")
	}
	var id primitive.ObjectID
	_, err := s.pages.Mutate(ctx, func(p *models.MachineryPage) error {
		st, err := findStage(p, stageID)
		if err != nil {
			return err
		}
		m := models.Machine{
			Name:     strings.TrimSpace(in.Name),
			Model:    in.Model,
			Quantity: in.Quantity,
			Image:    in.Image,
		}
		id = ordered.Add(&st.Machines, m, in.Order)
		return nil
	})
	return id, err
}

// MachineUpdate contains the partial update for a machine.
type MachineUpdate struct {
	Name     *string
	Model    *string
	Quantity *int
	Image    *models.ImageAsset
}

// UpdateMachine merges the provided fields into a machine within a stage.
func (s *Store) UpdateMachine(ctx context.Context, stageID, machineID primitive.ObjectID, in MachineUpdate) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return apperr.Validation("machine name cannot be empty")
	}
	_, err := s.pages.Mutate(ctx, func(p *models.MachineryPage) error {
		st, err := findStage(p, stageID)
		if err != nil {
			return err
		}
		m, ok := ordered.Find(st.Machines, machineID)
		if !ok {
			return apperr.NotFound("machine")
		}
		if in.Name != nil {
			m.Name = strings.TrimSpace(*in.Name)
		}
		if in.Model != nil {
			m.Model = *in.Model
		}
		if in.Quantity != nil {
			m.Quantity = *in.Quantity
		}
		if in.Image != nil {
			m.Image = *in.Image
		}
		return nil
	})
	return err
}

// RemoveMachine deletes a machine from a stage.
func (s *Store) RemoveMachine(ctx context.Context, stageID, machineID primitive.ObjectID) error {
	_, err := s.pages.Mutate(ctx, func(p *models.MachineryPage) error {
		st, err := findStage(p, stageID)
		if err != nil {
			return err
		}
		if !ordered.Remove(&st.Machines, machineID) {
			return apperr.NotFound("machine")
		}
		return nil
	})
	return err
}

// ToggleMachine flips a machine's active flag and returns the new value.
func (s *Store) ToggleMachine(ctx context.Context, stageID, machineID primitive.ObjectID) (bool, error) {
	var nowActive bool
	_, err := s.pages.Mutate(ctx, func(p *models.MachineryPage) error {
		st, err := findStage(p, stageID)
		if err != nil {
			return err
		}
		v, ok := ordered.ToggleActive(st.Machines, machineID)
		if !ok {
			return apperr.NotFound("machine")
		}
		nowActive = v
		return nil
	})
	return nowActive, err
}

// ReorderMachines applies the given id order to a stage's machines.
func (s *Store) ReorderMachines(ctx context.Context, stageID primitive.ObjectID, ids []primitive.ObjectID) error {
	_, err := s.pages.Mutate(ctx, func(p *models.MachineryPage) error {
		st, err := findStage(p, stageID)
		if err != nil {
			return err
		}
		ordered.Reorder(st.Machines, ids)
		return nil
	})
	return err
}

// SortedMachines returns a stage's active machines in display order.
func (s *Store) SortedMachines(ctx context.Context, stageID primitive.ObjectID) ([]models.Machine, error) {
	p, err := s.pages.Active(ctx)
	if err != nil {
		return nil, err
	}
	st, err := findStage(p, stageID)
	if err != nil {
		return nil, err
	}
	return ordered.SortedActive(st.Machines), nil
}

// Machine looks up one machine by the (stageID, machineID) pair.
func (s *Store) Machine(ctx context.Context, stageID, machineID primitive.ObjectID) (*models.Machine, error) {
	p, err := s.pages.Active(ctx)
	if err != nil {
		return nil, err
	}
	st, err := findStage(p, stageID)
	if err != nil {
		return nil, err
	}
	m, ok := ordered.Find(st.Machines, machineID)
	if !ok {
		return nil, apperr.NotFound("machine")
	}
	return m, nil
}
