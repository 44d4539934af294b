// Package api exposes the read-only HTTP surface over stored data.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/cfrsync/internal/metrics"
	"github.com/example/cfrsync/internal/ports/primary"
	"github.com/example/cfrsync/internal/ports/secondary"
)

// Handler is the thin HTTP layer. It delegates to the corrections and
// status services and never touches the store directly.
type Handler struct {
	logger      *slog.Logger
	corrections primary.CorrectionsService
	status      primary.StatusService
	metrics     *metrics.Metrics
}

// New creates a new API Handler.
func New(
	corrections primary.CorrectionsService,
	status primary.StatusService,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		logger:      logger,
		corrections: corrections,
		status:      status,
		metrics:     m,
	}
}

// Router builds the chi router with all read endpoints mounted.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.countRequests)

	r.Get("/api/titles/corrections", h.handleTitleSummaries)
	r.Get("/api/titles/{titleNumber}/corrections", h.handleTitleSummary)
	r.Get("/api/corrections/summary", h.handleLegacySummary)
	r.Get("/api/status", h.handleStatus)
	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// countRequests increments the per-route request counter after the handler
// has written its status. The label is the matched route pattern, not the
// raw path, so parameterized routes stay one time series.
func (h *Handler) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		h.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}

// handleTitleSummaries returns the grouped corrections view for every
// stored title.
func (h *Handler) handleTitleSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.corrections.TitleSummaries(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to build title summaries", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"titles": summaries})
}

// handleTitleSummary returns the grouped corrections view for one title.
func (h *Handler) handleTitleSummary(w http.ResponseWriter, r *http.Request) {
	titleNumber, err := strconv.Atoi(chi.URLParam(r, "titleNumber"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "title number must be an integer")
		return
	}

	summary, err := h.corrections.TitleSummary(r.Context(), titleNumber)
	if errors.Is(err, secondary.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "title not found")
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to build title summary", err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// handleLegacySummary returns the flat per-title totals plus the grouped
// hierarchy breakdown, matching the original summary endpoint shape.
func (h *Handler) handleLegacySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.corrections.LegacySummary(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to build summary", err)
		return
	}
	breakdown, err := h.corrections.Breakdown(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to build breakdown", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"summary":   summary,
		"breakdown": breakdown,
	})
}

// handleStatus returns stored row counts per table.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := h.status.Counts(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to count rows", err)
		return
	}
	h.writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.logger.ErrorContext(r.Context(), message, "path", r.URL.Path, "error", err)
	h.writeError(w, http.StatusInternalServerError, message)
}
