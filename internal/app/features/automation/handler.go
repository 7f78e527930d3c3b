// Package automation provides the JSON API for the automation page:
// page settings plus automation items and their content blocks.
package automation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	automationstore "github.com/tranchon2702/saigon3-cms/internal/app/store/automation"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Handler handles automation page requests.
type Handler struct {
	store  *automationstore.Store
	logger *zap.Logger
}

// NewHandler creates a new automation Handler.
func NewHandler(store *automationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	return id, err == nil
}

// GetPage handles GET /. Public: active items in display order, each
// carrying only its active content blocks.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.Page(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	items := ordered.SortedActive(page.Items)
	for i := range items {
		items[i].ContentItems = ordered.SortedActive(items[i].ContentItems)
	}
	page.Items = items
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

/* ---------------------------------- items ----------------------------------- */

type itemInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Image       models.ImageAsset `json:"image"`
	Order       *int              `json:"order"`
}

// CreateItem handles POST /items.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in itemInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddItem(r.Context(), automationstore.ItemInput{
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

type itemUpdate struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Image       *models.ImageAsset `json:"image"`
}

// UpdateItem handles PATCH /items/{itemID}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemID")
	if !ok {
		jsonutil.BadRequest(w, "invalid item id")
		return
	}
	var in itemUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateItem(r.Context(), id, automationstore.ItemUpdate{
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

// DeleteItem handles DELETE /items/{itemID}. Content blocks belonging
// to the item are removed with it.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemID")
	if !ok {
		jsonutil.BadRequest(w, "invalid item id")
		return
	}
	if err := h.store.RemoveItem(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleItem handles POST /items/{itemID}/toggle.
func (h *Handler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemID")
	if !ok {
		jsonutil.BadRequest(w, "invalid item id")
		return
	}
	active, err := h.store.ToggleItem(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

type reorderInput struct {
	IDs []primitive.ObjectID `json:"ids"`
}

// ReorderItems handles PUT /items/reorder.
func (h *Handler) ReorderItems(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderItems(r.Context(), in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

/* ------------------------------ content blocks ------------------------------ */

type contentInput struct {
	Heading string            `json:"heading"`
	Body    string            `json:"body"`
	Image   models.ImageAsset `json:"image"`
	Order   *int              `json:"order"`
}

// CreateContent handles POST /items/{itemID}/content.
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemID")
	if !ok {
		jsonutil.BadRequest(w, "invalid item id")
		return
	}
	var in contentInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddContent(r.Context(), itemID, automationstore.ContentInput{
		Heading: in.Heading,
		Body:    in.Body,
		Image:   in.Image,
		Order:   in.Order,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, map[string]any{"id": id})
}

type contentUpdate struct {
	Heading *string            `json:"heading"`
	Body    *string            `json:"body"`
	Image   *models.ImageAsset `json:"image"`
}

// UpdateContent handles PATCH /items/{itemID}/content/{contentID}.
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemID")
	if !ok {
		jsonutil.BadRequest(w, "invalid item id")
		return
	}
	contentID, ok := pathID(r, "contentID")
	if !ok {
		jsonutil.BadRequest(w, "invalid content id")
		return
	}
	var in contentUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateContent(r.Context(), itemID, contentID, automationstore.ContentUpdate{
		Heading: in.Heading,
		Body:    in.Body,
		Image:   in.Image,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// DeleteContent handles DELETE /items/{itemID}/content/{contentID}.
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemID")
	if !ok {
		jsonutil.BadRequest(w, "invalid item id")
		return
	}
	contentID, ok := pathID(r, "contentID")
	if !ok {
		jsonutil.BadRequest(w, "invalid content id")
		return
	}
	if err := h.store.RemoveContent(r.Context(), itemID, contentID); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleContent handles POST /items/{itemID}/content/{contentID}/toggle.
func (h *Handler) ToggleContent(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemID")
	if !ok {
		jsonutil.BadRequest(w, "invalid item id")
		return
	}
	contentID, ok := pathID(r, "contentID")
	if !ok {
		jsonutil.BadRequest(w, "invalid content id")
		return
	}
	active, err := h.store.ToggleContent(r.Context(), itemID, contentID)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": contentID, "is_active": active})
}

// ReorderContent handles PUT /items/{itemID}/content/reorder.
func (h *Handler) ReorderContent(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemID")
	if !ok {
		jsonutil.BadRequest(w, "invalid item id")
		return
	}
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderContent(r.Context(), itemID, in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}
