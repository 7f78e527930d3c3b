// Package ecofriendly provides the JSON API for the eco friendly page:
// page settings plus the sustainability milestones and core values.
package ecofriendly

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	ecostore "github.com/tranchon2702/saigon3-cms/internal/app/store/ecofriendly"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Handler handles eco friendly page requests.
type Handler struct {
	store  *ecostore.Store
	logger *zap.Logger
}

// NewHandler creates a new ecofriendly Handler.
func NewHandler(store *ecostore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

// GetPage handles GET /. Public: active milestones and core values in
// display order.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.Page(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	page.Milestones = ordered.SortedActive(page.Milestones)
	page.CoreValues = ordered.SortedActive(page.CoreValues)
	jsonutil.OK(w, page)
}

// GetPageAdmin handles GET /admin.
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

/* -------------------------------- milestones -------------------------------- */

type milestoneInput struct {
	Year        string            `json:"year"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Image       models.ImageAsset `json:"image"`
	Order       *int              `json:"order"`
}

// CreateMilestone handles POST /milestones.
func (h *Handler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	var in milestoneInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddMilestone(r.Context(), ecostore.MilestoneInput{
		Year:        in.Year,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Order:       in.Order,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, map[string]any{"id": id})
}

type milestoneUpdate struct {
	Year        *string            `json:"year"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Image       *models.ImageAsset `json:"image"`
}

// UpdateMilestone handles PATCH /milestones/{id}.
func (h *Handler) UpdateMilestone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	var in milestoneUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateMilestone(r.Context(), id, ecostore.MilestoneUpdate{
		Year:        in.Year,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// DeleteMilestone handles DELETE /milestones/{id}.
func (h *Handler) DeleteMilestone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	if err := h.store.RemoveMilestone(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleMilestone handles POST /milestones/{id}/toggle.
func (h *Handler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	active, err := h.store.ToggleMilestone(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

type reorderInput struct {
	IDs []primitive.ObjectID `json:"ids"`
}

// ReorderMilestones handles PUT /milestones/reorder.
func (h *Handler) ReorderMilestones(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderMilestones(r.Context(), in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

/* -------------------------------- core values -------------------------------- */

type coreValueInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       *int   `json:"order"`
}

// CreateCoreValue handles POST /core-values.
func (h *Handler) CreateCoreValue(w http.ResponseWriter, r *http.Request) {
	var in coreValueInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddCoreValue(r.Context(), ecostore.CoreValueInput{
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		Order:       in.Order,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, map[string]any{"id": id})
}

type coreValueUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// UpdateCoreValue handles PATCH /core-values/{id}.
func (h *Handler) UpdateCoreValue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	var in coreValueUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateCoreValue(r.Context(), id, ecostore.CoreValueUpdate{
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// DeleteCoreValue handles DELETE /core-values/{id}.
func (h *Handler) DeleteCoreValue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	if err := h.store.RemoveCoreValue(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleCoreValue handles POST /core-values/{id}/toggle.
func (h *Handler) ToggleCoreValue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	active, err := h.store.ToggleCoreValue(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

// ReorderCoreValues handles PUT /core-values/reorder.
func (h *Handler) ReorderCoreValues(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderCoreValues(r.Context(), in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}
