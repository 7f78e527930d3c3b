// internal/app/features/uploads/routes.go
package uploads

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the uploads feature.
//
//	POST /          upload an image and derive its variants
//	POST /delete    remove an asset's original and variants from storage
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Upload)
	r.Post("/delete", h.Delete)

	return r
}
