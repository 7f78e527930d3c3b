// internal/app/features/news/routes.go
package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the news feature.
//
//	GET    /                  active articles, newest first
//	GET    /admin             all articles
//	POST   /                  create an article
//	GET    /{slugOrID}        resolve by slug, Japanese slug, or id
//	PATCH  /{id}              update an article
//	DELETE /{id}              delete an article
//	POST   /{id}/toggle       flip an article's active flag
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
