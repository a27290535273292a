// Package httphandler implements the JSON API, health and metrics driving adapter.
package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/notify"
	"github.com/ericfisherdev/omnisearch/internal/application"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// Pinger reports whether a dependency is usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	api      driven.BackendAPI
	session  *application.SessionService
	db       Pinger
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	api driven.BackendAPI,
	session *application.SessionService,
	db Pinger,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		api:      api,
		session:  session,
		db:       db,
		gatherer: gatherer,
		logger:   logger,
	}
}

// RegisterAPIRoutes registers the JSON API, health and metrics routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /api/v1/session", h.Session)
	mux.HandleFunc("GET /api/v1/files", h.ListFiles)
}

// Session reports the auth probe outcome for the caller's credential.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	result := h.session.Check(r.Context())

	status := http.StatusOK
	if !result.Authenticated() && !result.NeedsLogin() {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, toSessionResponse(result))
}

// ListFiles proxies the backend file listing as a ResultResponse. HTTP
// failures from the backend keep their status; an unreachable backend is 502.
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	result, err := h.api.ListFiles(r.Context())
	if err != nil {
		h.logger.Error("failed to list files", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusOK
	if !result.OK() {
		status = result.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
	}

	resp := toFilesResponse(result)
	if buf := notify.BufferFrom(r.Context()); buf != nil {
		resp.Notifications = toNotificationResponses(buf.Drain())
	}
	writeJSON(w, status, resp)
}

// Health reports liveness and database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Database: "ok",
		Time:     time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check: database unavailable", "error", err)
			resp.Status = "degraded"
			resp.Database = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, resp)
}
