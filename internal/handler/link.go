package handler

import (
	"net/http"

	"github.com/feedlink/feedlink/internal/domain"
	"github.com/feedlink/feedlink/internal/linkflow"
	"github.com/feedlink/feedlink/internal/logger"
)

// LinkHandlers contains handlers for the account link flow
type LinkHandlers struct {
	svc linkflow.Service
}

// NewLinkHandlers creates new link flow handlers
func NewLinkHandlers(svc linkflow.Service) *LinkHandlers {
	return &LinkHandlers{svc: svc}
}

// successPageHTML is rendered to the browser after a completed link. The chat
// already received the confirmation message, so the page just tells the user
// to close the tab.
const successPageHTML = `<!DOCTYPE html>
<html>
<head><title>Account Linked</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4em;">
<h1>&#9989; Account linked</h1>
<p>You can close this tab and return to the chat.</p>
</body>
</html>
`

// HandleLogin handles GET /login?chat_id=<id>[&provider=<name>].
// It starts a link flow and redirects the browser to the provider's
// authorization page.
func (h *LinkHandlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		chatID, ok := GetChatIDParam(r, w)
		if !ok {
			return
		}
		provider := GetOptionalQueryParam(r, "provider", domain.ProviderTwitter)

		start, err := h.svc.StartLink(r.Context(), provider, chatID)
		if err != nil {
			log.Warn("Failed to start link flow", "provider", provider, "chat_id", chatID, "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		http.Redirect(w, r, start.AuthorizeURL, http.StatusFound)
	}
}

// HandleCallback handles GET /callback?code=<code>&state=<state>, the
// provider's redirect target. A successful flow renders a static HTML page;
// every failure is a JSON error.
func (h *LinkHandlers) HandleCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		// Providers report denial via an error query parameter instead of a
		// code. The state, when present, is still consumed so it cannot be
		// replayed.
		if providerErr := r.URL.Query().Get("error"); providerErr != "" {
			log.Warn("Provider reported callback error", "provider_error", providerErr)
			if state := r.URL.Query().Get("state"); state != "" {
				if err := h.svc.AbortLink(r.Context(), state); err != nil {
					log.Warn("Failed to abort link flow", "error", err)
				}
			}
			respondError(w, http.StatusBadRequest, ErrMsgProviderDeniedError)
			return
		}

		code, ok := GetQueryParam(r, w, "code")
		if !ok {
			return
		}
		state, ok := GetQueryParam(r, w, "state")
		if !ok {
			return
		}

		result, err := h.svc.CompleteLink(r.Context(), code, state)
		if err != nil {
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		log.Info("Link flow completed", "provider", result.Provider, "chat_id", result.ChatID)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(successPageHTML)); err != nil {
			log.Error("Failed to write success page", "error", err)
		}
	}
}

// StatusResponse is the response body for GET /api/v1/link/status
type StatusResponse struct {
	ChatID   int64            `json:"chat_id"`
	Bindings []domain.Binding `json:"bindings"`
}

// HandleStatus handles GET /api/v1/link/status?chat_id=<id>
func (h *LinkHandlers) HandleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		chatID, ok := GetChatIDParam(r, w)
		if !ok {
			return
		}

		bindings, err := h.svc.Status(r.Context(), chatID)
		if err != nil {
			log.Error("Failed to get link status", "chat_id", chatID, "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, StatusResponse{ChatID: chatID, Bindings: bindings})
	}
}
