package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/transquote/internal/domain"
)

// InternalErrorMessage is returned for every failure the client cannot fix.
const InternalErrorMessage = "Error occurred while processing data. Please, try again later."

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	case errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest, "INVALID_JSON", message

	// Validation errors
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		return http.StatusUnprocessableEntity, "UNSUPPORTED_LANGUAGE", message
	case errors.Is(err, domain.ErrInvalidCharacterCount):
		return http.StatusUnprocessableEntity, "INVALID_CHARACTER_COUNT", message
	case errors.Is(err, domain.ErrInvalidSchedule):
		return http.StatusUnprocessableEntity, "INVALID_SCHEDULE", message

	case errors.Is(err, domain.ErrInternal):
		slog.Error("quote computation failed", "error", err)
		return http.StatusInternalServerError, "INTERNAL_ERROR", InternalErrorMessage

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", InternalErrorMessage
	}
}
