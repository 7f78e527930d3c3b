// internal/app/features/machinery/routes.go
package machinery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the machinery feature.
//
//	GET    /                                             active page, active items only
//	GET    /admin                                        active page, all items
//	PUT    /settings                                     partial page settings update
//	POST   /stages                                       add a stage
//	PUT    /stages/reorder                               reorder stages
//	PATCH  /stages/{stageID}                             update a stage
//	DELETE /stages/{stageID}                             remove a stage and its machines
//	POST   /stages/{stageID}/toggle                      flip a stage's active flag
//	POST   /stages/{stageID}/machines                    add a machine
//	PUT    /stages/{stageID}/machines/reorder            reorder machines within a stage
//	PATCH  /stages/{stageID}/machines/{machineID}        update a machine
//	DELETE /stages/{stageID}/machines/{machineID}        remove a machine
//	POST   /stages/{stageID}/machines/{machineID}/toggle flip a machine's active flag
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetPage)
	r.Get("/admin", h.GetPageAdmin)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/stages", h.CreateStage)
	r.Put("/stages/reorder", h.ReorderStages)
	r.Patch("/stages/{stageID}", h.UpdateStage)
	r.Delete("/stages/{stageID}", h.DeleteStage)
	r.Post("/stages/{stageID}/toggle", h.ToggleStage)

	r.Post("/stages/{stageID}/machines", h.CreateMachine)
	r.Put("/stages/{stageID}/machines/reorder", h.ReorderMachines)
	r.Patch("/stages/{stageID}/machines/{machineID}", h.UpdateMachine)
	r.Delete("/stages/{stageID}/machines/{machineID}", h.DeleteMachine)
	r.Post("/stages/{stageID}/machines/{machineID}/toggle", h.ToggleMachine)

	return r
}
