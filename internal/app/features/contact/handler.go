// Package contact provides the JSON API for contact-form submissions
// and the notification recipient configuration. The public submit
// endpoint queues an admin notification email; everything else is
// admin tooling.
package contact

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	contactstore "github.com/tranchon2702/saigon3-cms/internal/app/store/contact"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/mailer"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/normalize"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/notify"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Handler handles contact submission requests.
type Handler struct {
	store    *contactstore.Store
	notifier *notify.Notifier
	appName  string
	adminURL string
	logger   *zap.Logger
}

// NewHandler creates a new contact Handler. The notifier may be nil,
// in which case submissions are stored without emailing anyone.
func NewHandler(store *contactstore.Store, notifier *notify.Notifier, appName, adminURL string, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		notifier: notifier,
		appName:  appName,
		adminURL: adminURL,
		logger:   logger,
	}
}

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

type submitInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// Submit handles POST /. Public contact-form endpoint.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var in submitInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	sub, err := h.store.Create(r.Context(), contactstore.CreateInput{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Subject:  in.Subject,
		Message:  in.Message,
	})
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	h.notifyAdmins(r, sub)
	jsonutil.Created(w, map[string]any{"id": sub.ID, "priority": sub.Priority})
}

// notifyAdmins queues the new-submission email for the configured
// recipients. Low priority submissions sit in the admin queue without
// emailing anyone.
func (h *Handler) notifyAdmins(r *http.Request, sub *models.ContactSubmission) {
	if h.notifier == nil || sub.Priority == models.ContactPriorityLow {
		return
	}
	cfg, err := h.store.ActiveEmailConfig(r.Context())
	if err != nil {
		h.logger.Warn("contact: no notification recipients configured", zap.Error(err))
		return
	}
	text, html := mailer.ContactNotificationEmail(mailer.ContactNotificationData{
		AppName:     h.appName,
		FullName:    sub.FullName,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Subject:     sub.Subject,
		Message:     sub.Message,
		Priority:    sub.Priority,
		SubmittedAt: sub.CreatedAt,
		AdminURL:    h.adminURL,
	})
	h.notifier.Enqueue(notify.Notification{
		Recipients: cfg.Recipients,
		Subject:    "New contact submission: " + sub.FullName,
		TextBody:   text,
		HTMLBody:   html,
	})
}

// List handles GET /submissions. Query parameters: priority, handled
// (true/false), limit, page.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := contactstore.ListFilter{
		Priority: normalize.Priority(q.Get("priority")),
	}
	switch q.Get("handled") {
	case "true":
		t := true
		f.Handled = &t
	case "false":
		fa := false
		f.Handled = &fa
	}
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if raw := q.Get("page"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			f.Page = n
		}
	}
	subs, err := h.store.List(r.Context(), f)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, subs)
}

// Get handles GET /submissions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	sub, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, sub)
}

type handledInput struct {
	Handled bool `json:"handled"`
}

// SetHandled handles PATCH /submissions/{id}/handled.
func (h *Handler) SetHandled(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	var in handledInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.store.MarkHandled(r.Context(), id, in.Handled); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

// Delete handles DELETE /submissions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}

/* ------------------------------- email configs ------------------------------ */

// ListEmailConfigs handles GET /email-configs.
func (h *Handler) ListEmailConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.store.AllEmailConfigs(r.Context())
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.OK(w, configs)
}

type emailConfigInput struct {
	Recipients []string `json:"recipients"`
}

// SaveEmailConfig handles POST /email-configs. The new config becomes
// the active one.
func (h *Handler) SaveEmailConfig(w http.ResponseWriter, r *http.Request) {
	var in emailConfigInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	cfg, err := h.store.SaveEmailConfig(r.Context(), in.Recipients)
	if err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.Created(w, cfg)
}

// ActivateEmailConfig handles POST /email-configs/{id}/activate.
func (h *Handler) ActivateEmailConfig(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonutil.BadRequest(w, "invalid id")
		return
	}
	if err := h.store.ActivateEmailConfig(r.Context(), id); err != nil {
		jsonutil.FromErr(w, h.logger, err)
		return
	}
	jsonutil.NoContent(w)
}
