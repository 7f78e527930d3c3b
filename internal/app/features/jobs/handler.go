// Package jobs provides the JSON API for the careers page: the category
// list living on the page aggregate and the job listings referencing it.
package jobs

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	jobstore "github.com/tranchon2702/saigon3-cms/internal/app/store/jobs"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/normalize"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Handler handles careers page requests.
type Handler struct {
	store  *jobstore.Store
	logger *zap.Logger
}

// NewHandler creates a new jobs Handler.
func NewHandler(store *jobstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	return id, err == nil
}

// GetPage handles GET /. Public: page settings, active categories in
// display order, and active listings. A category query parameter
// narrows the listings.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.Page(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	page.Categories = ordered.SortedActive(page.Categories)

	var categoryID primitive.ObjectID
	if raw := r.URL.Query().Get("category"); raw != "" {
		categoryID, err = primitive.ObjectIDFromHex(raw)
		if err != nil {
			jsonutil.BadRequest(w, "invalid category id")
			return
		}
	}
	listings, err := h.store.ActiveJobs(r.Context(), categoryID)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"page": page, "jobs": listings})
}

// GetPageAdmin handles GET /admin. All categories and all listings.
func (h *Handler) GetPageAdmin(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.Page(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	listings, err := h.store.AllJobs(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"page": page, "jobs": listings})
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

/* -------------------------------- categories -------------------------------- */

type categoryInput struct {
	Name  string `json:"name"`
	Order *int   `json:"order"`
}

// CreateCategory handles POST /categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddCategory(r.Context(), in.Name, in.Order)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, map[string]any{"id": id})
}

type categoryRename struct {
	Name string `json:"name"`
}

// RenameCategory handles PATCH /categories/{categoryID}.
func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryID")
	if !ok {
		jsonutil.BadRequest(w, "invalid category id")
		return
	}
	var in categoryRename
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.RenameCategory(r.Context(), id, in.Name); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// DeleteCategory handles DELETE /categories/{categoryID}. Listings in
// the category are detached, not deleted.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryID")
	if !ok {
		jsonutil.BadRequest(w, "invalid category id")
		return
	}
	if err := h.store.RemoveCategory(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleCategory handles POST /categories/{categoryID}/toggle.
func (h *Handler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryID")
	if !ok {
		jsonutil.BadRequest(w, "invalid category id")
		return
	}
	active, err := h.store.ToggleCategory(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

type reorderInput struct {
	IDs []primitive.ObjectID `json:"ids"`
}

// ReorderCategories handles PUT /categories/reorder.
func (h *Handler) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderCategories(r.Context(), in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

/* --------------------------------- listings --------------------------------- */

type jobInput struct {
	Title        string             `json:"title"`
	CategoryID   primitive.ObjectID `json:"category_id"`
	Location     string             `json:"location"`
	SalaryRange  string             `json:"salary_range"`
	Deadline     *time.Time         `json:"deadline"`
	Description  string             `json:"description"`
	Requirements string             `json:"requirements"`
	Order        *int               `json:"order"`
}

// CreateJob handles POST /listings.
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var in jobInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	job, err := h.store.CreateJob(r.Context(), jobstore.CreateJobInput{
		Title:        in.Title,
		CategoryID:   in.CategoryID,
		Location:     in.Location,
		SalaryRange:  in.SalaryRange,
		Deadline:     in.Deadline,
		Description:  in.Description,
		Requirements: in.Requirements,
		Order:        in.Order,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, job)
}

type jobUpdate struct {
	Title        *string             `json:"title"`
	CategoryID   *primitive.ObjectID `json:"category_id"`
	Location     *string             `json:"location"`
	SalaryRange  *string             `json:"salary_range"`
	Deadline     *time.Time          `json:"deadline"`
	Description  *string             `json:"description"`
	Requirements *string             `json:"requirements"`
	Order        *int                `json:"order"`
}

// UpdateJob handles PATCH /listings/{jobID}.
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "jobID")
	if !ok {
		jsonutil.BadRequest(w, "invalid job id")
		return
	}
	var in jobUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	job, err := h.store.UpdateJob(r.Context(), id, jobstore.UpdateJobInput{
		Title:        in.Title,
		CategoryID:   in.CategoryID,
		Location:     in.Location,
		SalaryRange:  in.SalaryRange,
		Deadline:     in.Deadline,
		Description:  in.Description,
		Requirements: in.Requirements,
		Order:        in.Order,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, job)
}

// GetJob handles GET /listings/{slugOrID}.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	key := normalize.SlugParam(chi.URLParam(r, "slugOrID"))
	if key == "" {
		jsonutil.BadRequest(w, "missing job identifier")
		return
	}
	job, err := h.store.ResolveJob(r.Context(), key)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, job)
}

// ToggleJob handles POST /listings/{jobID}/toggle.
func (h *Handler) ToggleJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "jobID")
	if !ok {
		jsonutil.BadRequest(w, "invalid job id")
		return
	}
	active, err := h.store.ToggleJob(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

// DeleteJob handles DELETE /listings/{jobID}.
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "jobID")
	if !ok {
		jsonutil.BadRequest(w, "invalid job id")
		return
	}
	if _, err := h.store.DeleteJob(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}
