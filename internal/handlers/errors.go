package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"minibrain/internal/apperr"
	"minibrain/internal/contextutil"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// writeJSON writes v with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeServiceError maps service and engine errors to HTTP status codes.
// providerMsg is shown when an upstream model provider failed.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, providerMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *apperr.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "validation failed", "field", validationErr.Field, "error", err)
		writeError(w, http.StatusBadRequest, validationErr.Field+" "+validationErr.Message)
	case errors.Is(err, apperr.ErrInvalidInput):
		logger.WarnContext(ctx, "invalid input", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, apperr.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Unauthenticated")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, apperr.ErrProvider):
		logger.ErrorContext(ctx, "provider error", "error", err)
		writeError(w, http.StatusBadGateway, providerMsg)
	default:
		logger.ErrorContext(ctx, "internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pageError maps an error to a plain-text status for HTML pages.
func pageError(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "note not found"
	default:
		return http.StatusInternalServerError, "failed to load note"
	}
}
