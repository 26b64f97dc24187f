// Package handler exposes the application HTTP surface: form submission,
// read-back, and section status. Responses keep the portal's historical
// envelope: {"success": true, ...} or {"success": false, "error": ...}.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mortgageportal/internal/application/models"
	"mortgageportal/internal/application/service"
	"mortgageportal/internal/platform/middleware"
	dErrors "mortgageportal/pkg/domain-errors"
)

// maxFormBytes bounds a submission body. The full form is a few kilobytes;
// anything near the limit is not a browser.
const maxFormBytes = 1 << 20

type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Routes mounts the application endpoints. Auth is applied by the caller.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Save)
	r.Get("/status", h.Status)
	r.Get("/{id}", h.Get)
	return r
}

// Save accepts a form-encoded submission and persists it as a new
// application.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		h.writeError(w, r, dErrors.New(dErrors.CodeUnauthorized, "missing user identity"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed form body"))
		return
	}

	sub := models.SubmissionFromForm(r.PostForm)
	id, err := h.service.Save(r.Context(), sub, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"applicationId": id,
	})
}

// Get returns one application with its entity counts.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return
	}

	summary, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	app := summary.Application
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"application": map[string]any{
			"id":                 app.ID,
			"userId":             app.UserID,
			"priorApplicationId": app.PriorApplicationID,
			"status":             app.Status,
			"loanPurpose":        app.LoanPurpose,
			"sectionStatus":      json.RawMessage(statusBlob(app.SectionStatus)),
			"createdAt":          app.CreatedAt,
		},
		"counts": summary.Counts,
	})
}

// Status returns the caller's cached section progress.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		h.writeError(w, r, dErrors.New(dErrors.CodeUnauthorized, "missing user identity"))
		return
	}

	report, err := h.service.SectionStatus(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"sections": report,
	})
}

// statusBlob guards against an empty or garbage stored blob so the response
// field is always valid JSON. Client-submitted blobs pass through storage
// unvalidated.
func statusBlob(s string) string {
	if s == "" || !json.Valid([]byte(s)) {
		return "{}"
	}
	return s
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}
	h.writeJSON(w, status, map[string]any{
		"success": false,
		"error":   string(code),
	})
}
