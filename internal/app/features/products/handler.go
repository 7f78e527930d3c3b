// Package products provides the JSON API for the product catalog page:
// page settings, products, their applications, and application galleries.
package products

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	productstore "github.com/tranchon2702/saigon3-cms/internal/app/store/products"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/ordered"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Handler handles product catalog requests.
type Handler struct {
	store  *productstore.Store
	logger *zap.Logger
}

// NewHandler creates a new products Handler.
func NewHandler(store *productstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	return id, err == nil
}

// GetPage handles GET /. Public: active products in display order, each
// application carrying only its active gallery images.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.Page(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	prods := ordered.SortedActive(page.Products)
	for i := range prods {
		apps := ordered.SortedActive(prods[i].Applications)
		for j := range apps {
			apps[j].Images = ordered.SortedActive(apps[j].Images)
		}
		prods[i].Applications = apps
	}
	page.Products = prods
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

/* --------------------------------- products --------------------------------- */

type productInput struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Image       models.ImageAsset `json:"image"`
	Order       *int              `json:"order"`
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddProduct(r.Context(), productstore.ProductInput{
		Name:        in.Name,
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

type productUpdate struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Image       *models.ImageAsset `json:"image"`
}

// UpdateProduct handles PATCH /products/{productID}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	var in productUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateProduct(r.Context(), id, productstore.ProductUpdate{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// DeleteProduct handles DELETE /products/{productID}. Applications and
// galleries belonging to the product are removed with it.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	if err := h.store.RemoveProduct(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleProduct handles POST /products/{productID}/toggle.
func (h *Handler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	active, err := h.store.ToggleProduct(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": id, "is_active": active})
}

type reorderInput struct {
	IDs []primitive.ObjectID `json:"ids"`
}

// ReorderProducts handles PUT /products/reorder.
func (h *Handler) ReorderProducts(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderProducts(r.Context(), in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

/* ------------------------------- applications ------------------------------- */

type applicationInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       *int   `json:"order"`
}

// CreateApplication handles POST /products/{productID}/applications.
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	var in applicationInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddApplication(r.Context(), productID, productstore.ApplicationInput{
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

type applicationUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateApplication handles PATCH /products/{productID}/applications/{appID}.
func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	appID, ok := pathID(r, "appID")
	if !ok {
		jsonutil.BadRequest(w, "invalid application id")
		return
	}
	var in applicationUpdate
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	err := h.store.UpdateApplication(r.Context(), productID, appID, productstore.ApplicationUpdate{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// DeleteApplication handles DELETE /products/{productID}/applications/{appID}.
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	appID, ok := pathID(r, "appID")
	if !ok {
		jsonutil.BadRequest(w, "invalid application id")
		return
	}
	if err := h.store.RemoveApplication(r.Context(), productID, appID); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ToggleApplication handles POST /products/{productID}/applications/{appID}/toggle.
func (h *Handler) ToggleApplication(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	appID, ok := pathID(r, "appID")
	if !ok {
		jsonutil.BadRequest(w, "invalid application id")
		return
	}
	active, err := h.store.ToggleApplication(r.Context(), productID, appID)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, map[string]any{"id": appID, "is_active": active})
}

// ReorderApplications handles PUT /products/{productID}/applications/reorder.
func (h *Handler) ReorderApplications(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderApplications(r.Context(), productID, in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

/* ---------------------------------- gallery --------------------------------- */

type galleryInput struct {
	Image   models.ImageAsset `json:"image"`
	Caption string            `json:"caption"`
	Order   *int              `json:"order"`
}

// AddGalleryImage handles POST /products/{productID}/applications/{appID}/gallery.
func (h *Handler) AddGalleryImage(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	appID, ok := pathID(r, "appID")
	if !ok {
		jsonutil.BadRequest(w, "invalid application id")
		return
	}
	var in galleryInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	id, err := h.store.AddGalleryImage(r.Context(), productID, appID, productstore.GalleryInput{
		Image:   in.Image,
		Caption: in.Caption,
		Order:   in.Order,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, map[string]any{"id": id})
}

// RemoveGalleryImage handles DELETE /products/{productID}/applications/{appID}/gallery/{imageID}.
func (h *Handler) RemoveGalleryImage(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	appID, ok := pathID(r, "appID")
	if !ok {
		jsonutil.BadRequest(w, "invalid application id")
		return
	}
	imageID, ok := pathID(r, "imageID")
	if !ok {
		jsonutil.BadRequest(w, "invalid image id")
		return
	}
	if err := h.store.RemoveGalleryImage(r.Context(), productID, appID, imageID); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// ReorderGallery handles PUT /products/{productID}/applications/{appID}/gallery/reorder.
func (h *Handler) ReorderGallery(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productID")
	if !ok {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}
	appID, ok := pathID(r, "appID")
	if !ok {
		jsonutil.BadRequest(w, "invalid application id")
		return
	}
	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.ReorderGallery(r.Context(), productID, appID, in.IDs); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}
