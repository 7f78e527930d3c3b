// internal/app/features/programs/routes.go
package programs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the programs feature.
//
//	GET    /                  active programs, newest first
//	GET    /admin             all programs
//	POST   /                  create a program
//	GET    /{slugOrID}        resolve by slug, Japanese slug, or id
//	PATCH  /{id}              update a program
//	DELETE /{id}              delete a program
//	POST   /{id}/toggle       flip a program's active flag
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListActive)
	r.Get("/admin", h.ListAll)
	r.Post("/", h.Create)

	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/toggle", h.Toggle)

	// Last so fixed segments above win the match.
	r.Get("/{slugOrID}", h.Get)

	return r
}
