package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/feedlink/feedlink/internal/logger"
)

// GetQueryParam retrieves and validates a required query parameter from the request.
// If the parameter is missing or empty, it writes an error response and returns false.
//
// Parameters:
//   - r: The HTTP request to extract the query parameter from
//   - w: The HTTP response writer to send error responses
//   - paramName: The name of the query parameter to retrieve
//
// Returns:
//   - value: The parameter value if present
//   - ok: true if the parameter was found and non-empty, false otherwise
//
// If ok is false, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	state, ok := GetQueryParam(r, w, "state")
//	if !ok {
//	    return
//	}
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
// Unlike GetQueryParam, this does not write an error response if the parameter is missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetChatIDParam retrieves the required chat_id query parameter and parses it as int64.
// On a missing or malformed value the HTTP response has already been written and the
// handler should return.
func GetChatIDParam(r *http.Request, w http.ResponseWriter) (int64, bool) {
	raw, ok := GetQueryParam(r, w, "chat_id")
	if !ok {
		return 0, false
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Warn("Invalid chat_id query parameter", "chat_id", raw)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidChatID)
		return 0, false
	}
	return chatID, true
}
