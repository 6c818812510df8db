package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mtlprog/transquote/internal/handler/dto"
	"github.com/mtlprog/transquote/internal/metrics"
	"github.com/mtlprog/transquote/internal/service"
	"github.com/mtlprog/transquote/internal/static"
)

// metricsTimeout bounds how long a request waits on the metrics backend.
const metricsTimeout = 200 * time.Millisecond

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	quotes    *service.QuoteService
	recorder  metrics.Recorder
	languages int
}

// New creates a new Handler. A nil recorder disables metrics.
func New(quotes *service.QuoteService, recorder metrics.Recorder, languages int) *Handler {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &Handler{
		quotes:    quotes,
		recorder:  recorder,
		languages: languages,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// API description
	mux.HandleFunc("GET /api.md", h.handleAPIMd)

	mux.HandleFunc("POST /calculator/calculate", h.handleCalculate)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Languages: h.languages})
}

// handleAPIMd serves the embedded API description.
func (h *Handler) handleAPIMd(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.APIMd))
}

// record stores a metrics event without letting the backend slow the response.
func (h *Handler) record(ctx context.Context, outcome metrics.Outcome, language string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsTimeout)
	defer cancel()

	err := h.recorder.Record(ctx, metrics.Event{
		Outcome:  outcome,
		Language: language,
		At:       time.Now(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record quote metrics", "error", err)
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}
