package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/transquote/internal/handler/dto"
	"github.com/mtlprog/transquote/internal/metrics"
)

// maxBodyBytes caps the request body; a valid one is well under 1 KiB.
const maxBodyBytes = 64 << 10

// handleCalculate prices a job and computes its deadline.
// @Summary Quote a translation job
// @Description Returns the price, raw processing time and completion deadline. Schedule and reference time default to the service configuration and now.
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body dto.CalculateRequest true "Job description"
// @Success 200 {object} dto.CalculateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /calculator/calculate [post]
func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CalculateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.record(ctx, metrics.OutcomeClientError, "")
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	quoteReq, err := req.ToDomain(h.quotes.DefaultSchedule())
	if err != nil {
		h.fail(w, r, req.Language, err)
		return
	}

	quote, err := h.quotes.Quote(ctx, quoteReq)
	if err != nil {
		h.fail(w, r, req.Language, err)
		return
	}

	h.record(ctx, metrics.OutcomeOK, req.Language)
	respondJSON(w, http.StatusOK, dto.NewCalculateResponse(quote))
}

// fail maps err to an error response and records the outcome.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, language string, err error) {
	status, code, message := dto.MapDomainError(err)

	outcome := metrics.OutcomeClientError
	if status >= http.StatusInternalServerError {
		outcome = metrics.OutcomeInternalError
	}
	h.record(r.Context(), outcome, language)

	respondError(w, status, code, message)
}
