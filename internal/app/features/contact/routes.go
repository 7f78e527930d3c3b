// internal/app/features/contact/routes.go
package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the contact feature.
//
//	POST   /                               public contact-form submit
//	GET    /submissions                    list submissions (priority, handled, limit filters)
//	GET    /submissions/{id}               fetch one submission
//	PATCH  /submissions/{id}/handled       mark a submission handled or not
//	DELETE /submissions/{id}               delete a submission
//	GET    /email-configs                  list recipient configs
//	POST   /email-configs                  save a new config and make it active
//	POST   /email-configs/{id}/activate    switch the active config
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Submit)

	r.Get("/submissions", h.List)
	r.Get("/submissions/{id}", h.Get)
	r.Patch("/submissions/{id}/handled", h.SetHandled)
	r.Delete("/submissions/{id}", h.Delete)

	r.Get("/email-configs", h.ListEmailConfigs)
	r.Post("/email-configs", h.SaveEmailConfig)
	r.Post("/email-configs/{id}/activate", h.ActivateEmailConfig)

	return r
}
