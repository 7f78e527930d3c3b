// Package facilities provides the JSON API for the facilities page:
// page settings plus the ordered feature and metric collections.
package facilities

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	facilitystore "github.com/tranchon2702/saigon3-cms/internal/app/store/facilities"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Handler handles facilities page requests.
type Handler struct {
	store  *facilitystore.Store
	logger *zap.Logger
}

// NewHandler creates a new facilities Handler.
func NewHandler(store *facilitystore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// pathID parses the {id} path parameter as an ObjectID.
func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

// GetPage handles GET /. Public: returns the active page with only
// active features and metrics, in display order.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.Page(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	// Project from the one loaded document so the response cannot mix
	// two versions of the aggregate under concurrent edits.
	page.Features = ordered.SortedActive(page.Features)
	page.Metrics = ordered.SortedActive(page.Metrics)
	jsonutil.OK(w, page)
}

// GetPageAdmin handles GET /admin. Returns the active page with every
// feature and metric, inactive ones included.
func (h *Handler) GetPageAdmin(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.Page(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, page)
}

// UpdateSettings handles PUT /settings. Fields absent from the body are
// left unchanged.
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

/* --------------------------------- features -------------------------------- */

type featureInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Image       models.ImageAsset `json:"image"`
	Order       *int              `json:"order"`
}

// CreateFeature handles POST /features.
func (h *Handler) CreateFeature(w http.ResponseWriter, r *http.Request) {
	var in featureInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddFeature(r.Context(), facilitystore.FeatureInput{
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

type featureUpdate struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Image       *models.ImageAsset `json:"image"`
}

// UpdateFeature handles PATCH /features/{id}.
func (h *Handler) UpdateFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	var in featureUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateFeature(r.Context(), id, facilitystore.FeatureUpdate{
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

// DeleteFeature handles DELETE /features/{id}.
func (h *Handler) DeleteFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	if err := h.store.RemoveFeature(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleFeature handles POST /features/{id}/toggle.
func (h *Handler) ToggleFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	active, err := h.store.ToggleFeature(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

type reorderInput struct {
	IDs []primitive.ObjectID `json:"ids"`
}

// ReorderFeatures handles PUT /features/reorder.
func (h *Handler) ReorderFeatures(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderFeatures(r.Context(), in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

/* --------------------------------- metrics --------------------------------- */

type metricInput struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Order *int   `json:"order"`
}

// CreateMetric handles POST /metrics.
func (h *Handler) CreateMetric(w http.ResponseWriter, r *http.Request) {
	var in metricInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddMetric(r.Context(), facilitystore.MetricInput{
		Value: in.Value,
		Label: in.Label,
		Order: in.Order,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, map[string]any{"id": id})
}

type metricUpdate struct {
	Value *string `json:"value"`
	Label *string `json:"label"`
}

// UpdateMetric handles PATCH /metrics/{id}.
func (h *Handler) UpdateMetric(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	var in metricUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateMetric(r.Context(), id, facilitystore.MetricUpdate{
		Value: in.Value,
		Label: in.Label,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// DeleteMetric handles DELETE /metrics/{id}.
func (h *Handler) DeleteMetric(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	if err := h.store.RemoveMetric(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleMetric handles POST /metrics/{id}/toggle.
func (h *Handler) ToggleMetric(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	active, err := h.store.ToggleMetric(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

// ReorderMetrics handles PUT /metrics/reorder.
func (h *Handler) ReorderMetrics(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderMetrics(r.Context(), in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}
