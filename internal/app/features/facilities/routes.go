// internal/app/features/facilities/routes.go
package facilities

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the facilities feature.
//
//	GET    /                       active page, active items only
//	GET    /admin                  active page, all items
//	PUT    /settings               partial page settings update
//	POST   /features               add a feature
//	PUT    /features/reorder       reorder features
//	PATCH  /features/{id}          update a feature
//	DELETE /features/{id}          remove a feature
//	POST   /features/{id}/toggle   flip a feature's active flag
//	POST   /metrics                add a metric
//	PUT    /metrics/reorder        reorder metrics
//	PATCH  /metrics/{id}           update a metric
//	DELETE /metrics/{id}           remove a metric
//	POST   /metrics/{id}/toggle    flip a metric's active flag
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetPage)
	r.Get("/admin", h.GetPageAdmin)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/features", h.CreateFeature)
	r.Put("/features/reorder", h.ReorderFeatures)
	r.Patch("/features/{id}", h.UpdateFeature)
	r.Delete("/features/{id}", h.DeleteFeature)
	r.Post("/features/{id}/toggle", h.ToggleFeature)

	r.Post("/metrics", h.CreateMetric)
	r.Put("/metrics/reorder", h.ReorderMetrics)
	r.Patch("/metrics/{id}", h.UpdateMetric)
	r.Delete("/metrics/{id}", h.DeleteMetric)
	r.Post("/metrics/{id}/toggle", h.ToggleMetric)

	return r
}
