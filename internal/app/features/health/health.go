// Package health exposes the probe endpoints the load balancer and
// Kubernetes use to decide whether this instance gets traffic. The full
// check reports per-dependency detail for operators; the probe variants
// stay minimal.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
)

// pingTimeout bounds the Mongo round trip so a hung primary cannot hang
// the probe itself.
const pingTimeout = 5 * time.Second

// Handler serves the health endpoints.
type Handler struct {
	mongo   *mongo.Client
	started time.Time
	logger  *zap.Logger
}

// NewHandler creates a health Handler. Uptime counts from this call.
func NewHandler(mongoClient *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{
		mongo:   mongoClient,
		started: time.Now(),
		logger:  logger,
	}
}

// Response is the full health check payload.
type Response struct {
	Status   string            `json:"status"`
	Uptime   string            `json:"uptime"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns the health router: / (full check), /ready, /live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds the Kubernetes probe paths on the root router:
// /ready and /readyz for readiness, /livez for liveness.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check handles GET /health. Reports overall status plus per-service
// detail; anything short of fully healthy answers 503 so dumb pollers
// can alert on the status code alone.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Services: map[string]string{},
	}

	if err := h.pingMongo(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Services["mongodb"] = "unavailable"
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
	} else {
		resp.Services["mongodb"] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	jsonutil.JSON(w, status, resp)
}

// Ready handles the readiness probes. Not ready means the instance
// should be taken out of rotation, so it requires a reachable database.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.pingMongo(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	jsonutil.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Live handles the liveness probe. It only proves the process answers
// HTTP; dependency health is the readiness probe's job.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *Handler) pingMongo(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return h.mongo.Ping(ctx, readpref.Primary())
}
