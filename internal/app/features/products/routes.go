// internal/app/features/products/routes.go
package products

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the products feature.
//
//	GET    /                                                                active page, active items only
//	GET    /admin                                                           active page, all items
//	PUT    /settings                                                        partial page settings update
//	POST   /products                                                        add a product
//	PUT    /products/reorder                                                reorder products
//	PATCH  /products/{productID}                                            update a product
//	DELETE /products/{productID}                                            remove a product
//	POST   /products/{productID}/toggle                                     flip a product's active flag
//	POST   /products/{productID}/applications                               add an application
//	PUT    /products/{productID}/applications/reorder                       reorder applications
//	PATCH  /products/{productID}/applications/{appID}                       update an application
//	DELETE /products/{productID}/applications/{appID}                       remove an application
//	POST   /products/{productID}/applications/{appID}/toggle                flip an application's active flag
//	POST   /products/{productID}/applications/{appID}/gallery               add a gallery image
//	PUT    /products/{productID}/applications/{appID}/gallery/reorder       reorder a gallery
//	DELETE /products/{productID}/applications/{appID}/gallery/{imageID}     remove a gallery image
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetPage)
	r.Get("/admin", h.GetPageAdmin)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/products", h.CreateProduct)
	r.Put("/products/reorder", h.ReorderProducts)
	r.Patch("/products/{productID}", h.UpdateProduct)
	r.Delete("/products/{productID}", h.DeleteProduct)
	r.Post("/products/{productID}/toggle", h.ToggleProduct)

	r.Post("/products/{productID}/applications", h.CreateApplication)
	r.Put("/products/{productID}/applications/reorder", h.ReorderApplications)
	r.Patch("/products/{productID}/applications/{appID}", h.UpdateApplication)
	r.Delete("/products/{productID}/applications/{appID}", h.DeleteApplication)
	r.Post("/products/{productID}/applications/{appID}/toggle", h.ToggleApplication)

	r.Post("/products/{productID}/applications/{appID}/gallery", h.AddGalleryImage)
	r.Put("/products/{productID}/applications/{appID}/gallery/reorder", h.ReorderGallery)
	r.Delete("/products/{productID}/applications/{appID}/gallery/{imageID}", h.RemoveGalleryImage)

	return r
}
