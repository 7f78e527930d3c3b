// Package programs provides the JSON API for company programs. The
// surface mirrors the news feature: slug resolution for public readers
// and full lifecycle management for the admin.
package programs

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	programstore "github.com/tranchon2702/saigon3-cms/internal/app/store/programs"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/normalize"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Handler handles program requests.
type Handler struct {
	store  *programstore.Store
	logger *zap.Logger
}

// NewHandler creates a new programs Handler.
func NewHandler(store *programstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

// ListActive handles GET /. Public: active programs, newest first.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	programs, err := h.store.Active(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, programs)
}

// ListAll handles GET /admin.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	programs, err := h.store.All(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, programs)
}

// Get handles GET /{slugOrID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	key := normalize.SlugParam(chi.URLParam(r, "slugOrID"))
	if key == "" {
		jsonutil.BadRequest(w, "missing program identifier")
		return
	}
	program, err := h.store.Resolve(r.Context(), key)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, program)
}

type createInput struct {
	Title         string            `json:"title"`
	JapaneseTitle string            `json:"japanese_title"`
	Summary       string            `json:"summary"`
	Content       string            `json:"content"`
	Image         models.ImageAsset `json:"image"`
	PublishedAt   *time.Time        `json:"published_at"`
}

// Create handles POST /.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	program, err := h.store.Create(r.Context(), programstore.CreateInput{
		Title:         in.Title,
		JapaneseTitle: in.JapaneseTitle,
		Summary:       in.Summary,
		Content:       in.Content,
		Image:         in.Image,
		PublishedAt:   in.PublishedAt,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, program)
}

type updateInput struct {
	Title         *string            `json:"title"`
	JapaneseTitle *string            `json:"japanese_title"`
	Summary       *string            `json:"summary"`
	Content       *string            `json:"content"`
	Image         *models.ImageAsset `json:"image"`
	PublishedAt   *time.Time         `json:"published_at"`
}

// Update handles PATCH /{id}. The slug only changes when the title does.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	var in updateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	program, err := h.store.Update(r.Context(), id, programstore.UpdateInput{
		Title:         in.Title,
		JapaneseTitle: in.JapaneseTitle,
		Summary:       in.Summary,
		Content:       in.Content,
		Image:         in.Image,
		PublishedAt:   in.PublishedAt,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, program)
}

// Toggle handles POST /{id}/toggle.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	active, err := h.store.ToggleActive(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

// Delete handles DELETE /{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	if _, err := h.store.Delete(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}
