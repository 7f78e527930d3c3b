// internal/app/features/jobs/routes.go
package jobs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the jobs feature.
//
//	GET    /                                  page, active categories, active listings
//	GET    /admin                             page and listings, inactive included
//	PUT    /settings                          partial page settings update
//	POST   /categories                        add a category
//	PUT    /categories/reorder                reorder categories
//	PATCH  /categories/{categoryID}           rename a category
//	DELETE /categories/{categoryID}           remove a category, detaching its listings
//	POST   /categories/{categoryID}/toggle    flip a category's active flag
//	POST   /listings                          create a listing
//	GET    /listings/{slugOrID}               resolve a listing by slug or id
//	PATCH  /listings/{jobID}                  update a listing
//	DELETE /listings/{jobID}                  delete a listing
//	POST   /listings/{jobID}/toggle           flip a listing's active flag
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetPage)
	r.Get("/admin", h.GetPageAdmin)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/categories", h.CreateCategory)
	r.Put("/categories/reorder", h.ReorderCategories)
	r.Patch("/categories/{categoryID}", h.RenameCategory)
	r.Delete("/categories/{categoryID}", h.DeleteCategory)
	r.Post("/categories/{categoryID}/toggle", h.ToggleCategory)

	r.Post("/listings", h.CreateJob)
	r.Patch("/listings/{jobID}", h.UpdateJob)
	r.Delete("/listings/{jobID}", h.DeleteJob)
	r.Post("/listings/{jobID}/toggle", h.ToggleJob)

	// Last so fixed segments above win the match.
	r.Get("/listings/{slugOrID}", h.GetJob)

	return r
}
