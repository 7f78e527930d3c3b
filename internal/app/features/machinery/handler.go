// Package machinery provides the JSON API for the machinery page:
// page settings plus production stages and the machines inside them.
package machinery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	machinerystore "github.com/tranchon2702/saigon3-cms/internal/app/store/machinery"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Handler handles machinery page requests.
type Handler struct {
	store  *machinerystore.Store
	logger *zap.Logger
}

// NewHandler creates a new machinery Handler.
func NewHandler(store *machinerystore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	return id, err == nil
}

// GetPage handles GET /. Public: active stages in display order, each
// carrying only its active machines.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.Page(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	stages := ordered.SortedActive(page.Stages)
	for i := range stages {
		stages[i].Machines = ordered.SortedActive(stages[i].Machines)
	}
	page.Stages = stages
	jsonutil.OK(w, page)
}

// GetPageAdmin handles GET /admin. Returns everything, inactive included.
func (h *Handler) GetPageAdmin(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.Page(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, page)
}

// UpdateSettings handles PUT /settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in models.PageSettings
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	page, err := h.store.UpdateSettings(r.Context(), in)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, page)
}

/* ---------------------------------- stages ---------------------------------- */

type stageInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       *int   `json:"order"`
}

// CreateStage handles POST /stages.
func (h *Handler) CreateStage(w http.ResponseWriter, r *http.Request) {
	var in stageInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddStage(r.Context(), machinerystore.StageInput{
		Name:        in.Name,
		Description: in.Description,
		Order:       in.Order,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, map[string]any{"id": id})
}

type stageUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateStage handles PATCH /stages/{stageID}.
func (h *Handler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "stageID")
	if !ok {
		jsonutil.BadRequest(w, "invalid stage id")
		return
	}
	var in stageUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateStage(r.Context(), id, machinerystore.StageUpdate{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// DeleteStage handles DELETE /stages/{stageID}. Machines belonging to
// the stage are removed with it.
func (h *Handler) DeleteStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "stageID")
	if !ok {
		jsonutil.BadRequest(w, "invalid stage id")
		return
	}
	if err := h.store.RemoveStage(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleStage handles POST /stages/{stageID}/toggle.
func (h *Handler) ToggleStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "stageID")
	if !ok {
		jsonutil.BadRequest(w, "invalid stage id")
		return
	}
	active, err := h.store.ToggleStage(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

type reorderInput struct {
	IDs []primitive.ObjectID `json:"ids"`
}

// ReorderStages handles PUT /stages/reorder.
func (h *Handler) ReorderStages(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderStages(r.Context(), in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

/* --------------------------------- machines --------------------------------- */

type machineInput struct {
	Name     string            `json:"name"`
	Model    string            `json:"model"`
	Quantity int               `json:"quantity"`
	Image    models.ImageAsset `json:"image"`
	Order    *int              `json:"order"`
}

// CreateMachine handles POST /stages/{stageID}/machines.
func (h *Handler) CreateMachine(w http.ResponseWriter, r *http.Request) {
	stageID, ok := pathID(r, "stageID")
	if !ok {
		jsonutil.BadRequest(w, "invalid stage id")
		return
	}
	var in machineInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddMachine(r.Context(), stageID, machinerystore.MachineInput{
		Name:     in.Name,
		Model:    in.Model,
		Quantity: in.Quantity,
		Image:    in.Image,
		Order:    in.Order,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, map[string]any{"id": id})
}

type machineUpdate struct {
	Name     *string            `json:"name"`
	Model    *string            `json:"model"`
	Quantity *int               `json:"quantity"`
	Image    *models.ImageAsset `json:"image"`
}

// UpdateMachine handles PATCH /stages/{stageID}/machines/{machineID}.
func (h *Handler) UpdateMachine(w http.ResponseWriter, r *http.Request) {
	stageID, ok := pathID(r, "stageID")
	if !ok {
		jsonutil.BadRequest(w, "invalid stage id")
		return
	}
	machineID, ok := pathID(r, "machineID")
	if !ok {
		jsonutil.BadRequest(w, "invalid machine id")
		return
	}
	var in machineUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateMachine(r.Context(), stageID, machineID, machinerystore.MachineUpdate{
		Name:     in.Name,
		Model:    in.Model,
		Quantity: in.Quantity,
		Image:    in.Image,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// DeleteMachine handles DELETE /stages/{stageID}/machines/{machineID}.
func (h *Handler) DeleteMachine(w http.ResponseWriter, r *http.Request) {
	stageID, ok := pathID(r, "stageID")
	if !ok {
		jsonutil.BadRequest(w, "invalid stage id")
		return
	}
	machineID, ok := pathID(r, "machineID")
	if !ok {
		jsonutil.BadRequest(w, "invalid machine id")
		return
	}
	if err := h.store.RemoveMachine(r.Context(), stageID, machineID); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleMachine handles POST /stages/{stageID}/machines/{machineID}/toggle.
func (h *Handler) ToggleMachine(w http.ResponseWriter, r *http.Request) {
	stageID, ok := pathID(r, "stageID")
	if !ok {
		jsonutil.BadRequest(w, "invalid stage id")
		return
	}
	machineID, ok := pathID(r, "machineID")
	if !ok {
		jsonutil.BadRequest(w, "invalid machine id")
		return
	}
	active, err := h.store.ToggleMachine(r.Context(), stageID, machineID)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": machineID, "is_active": active})
}

// ReorderMachines handles PUT /stages/{stageID}/machines/reorder.
func (h *Handler) ReorderMachines(w http.ResponseWriter, r *http.Request) {
	stageID, ok := pathID(r, "stageID")
	if !ok {
		jsonutil.BadRequest(w, "invalid stage id")
		return
	}
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderMachines(r.Context(), stageID, in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}
