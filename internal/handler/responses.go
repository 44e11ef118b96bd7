package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/feedlink/feedlink/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Messages never carry provider responses or credentials; operators get those
// from the logs.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	switch {
	case errors.Is(err, domain.ErrMissingParameter):
		return http.StatusBadRequest, ErrMsgMissingParameterError
	case errors.Is(err, domain.ErrStateNotFound):
		return http.StatusBadRequest, ErrMsgInvalidStateError
	case errors.Is(err, domain.ErrUnknownProvider):
		return http.StatusBadRequest, ErrMsgUnknownProviderError
	case errors.Is(err, domain.ErrExchangeFailed):
		return http.StatusBadRequest, ErrMsgExchangeFailedError
	case errors.Is(err, domain.ErrProfileFailed):
		return http.StatusBadRequest, ErrMsgProfileFailedError
	case errors.Is(err, domain.ErrBindingNotFound):
		return http.StatusNotFound, ErrMsgBindingNotFoundError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
