// internal/app/features/ecofriendly/routes.go
package ecofriendly

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the eco friendly feature.
//
//	GET    /                          active page, active items only
//	GET    /admin                     active page, all items
//	PUT    /settings                  partial page settings update
//	POST   /milestones                add a milestone
//	PUT    /milestones/reorder        reorder milestones
//	PATCH  /milestones/{id}           update a milestone
//	DELETE /milestones/{id}           remove a milestone
//	POST   /milestones/{id}/toggle    flip a milestone's active flag
//	POST   /core-values               add a core value
//	PUT    /core-values/reorder       reorder core values
//	PATCH  /core-values/{id}          update a core value
//	DELETE /core-values/{id}          remove a core value
//	POST   /core-values/{id}/toggle   flip a core value's active flag
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetPage)
	r.Get("/admin", h.GetPageAdmin)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/milestones", h.CreateMilestone)
	r.Put("/milestones/reorder", h.ReorderMilestones)
	r.Patch("/milestones/{id}", h.UpdateMilestone)
	r.Delete("/milestones/{id}", h.DeleteMilestone)
	r.Post("/milestones/{id}/toggle", h.ToggleMilestone)

	r.Post("/core-values", h.CreateCoreValue)
	r.Put("/core-values/reorder", h.ReorderCoreValues)
	r.Patch("/core-values/{id}", h.UpdateCoreValue)
	r.Delete("/core-values/{id}", h.DeleteCoreValue)
	r.Post("/core-values/{id}/toggle", h.ToggleCoreValue)

	return r
}
