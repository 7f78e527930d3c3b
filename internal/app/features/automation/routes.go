// internal/app/features/automation/routes.go
package automation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the automation feature.
//
//	GET    /                                             active page, active items only
//	GET    /admin                                        active page, all items
//	PUT    /settings                                     partial page settings update
//	POST   /items                                        add an item
//	PUT    /items/reorder                                reorder items
//	PATCH  /items/{itemID}                               update an item
//	DELETE /items/{itemID}                               remove an item and its content
//	POST   /items/{itemID}/toggle                        flip an item's active flag
//	POST   /items/{itemID}/content                       add a content block
//	PUT    /items/{itemID}/content/reorder               reorder content blocks
//	PATCH  /items/{itemID}/content/{contentID}           update a content block
//	DELETE /items/{itemID}/content/{contentID}           remove a content block
//	POST   /items/{itemID}/content/{contentID}/toggle    flip a content block's active flag
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetPage)
	r.Get("/admin", h.GetPageAdmin)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/items", h.CreateItem)
	r.Put("/items/reorder", h.ReorderItems)
	r.Patch("/items/{itemID}", h.UpdateItem)
	r.Delete("/items/{itemID}", h.DeleteItem)
	r.Post("/items/{itemID}/toggle", h.ToggleItem)

	r.Post("/items/{itemID}/content", h.CreateContent)
	r.Put("/items/{itemID}/content/reorder", h.ReorderContent)
	r.Patch("/items/{itemID}/content/{contentID}", h.UpdateContent)
	r.Delete("/items/{itemID}/content/{contentID}", h.DeleteContent)
	r.Post("/items/{itemID}/content/{contentID}/toggle", h.ToggleContent)

	return r
}
