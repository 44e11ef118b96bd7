package linkflow

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/feedlink/feedlink/internal/domain"
	"github.com/feedlink/feedlink/internal/logger"
	"github.com/feedlink/feedlink/internal/metrics"
	"github.com/feedlink/feedlink/internal/oauth"
	"github.com/feedlink/feedlink/internal/statetoken"
)

// ProviderClient is the slice of oauth.Client the flow needs.
type ProviderClient interface {
	ProviderName() string
	UsePKCE() bool
	AuthorizeURL(state, codeChallenge string) string
	Exchange(ctx context.Context, code, codeVerifier string) (string, error)
	Profile(ctx context.Context, accessToken string) (string, error)
}

// BindingRepository defines persistence for account bindings.
type BindingRepository interface {
	// Upsert writes the binding keyed by (chat, provider), atomically
	// overwriting any existing row.
	Upsert(ctx context.Context, binding domain.Binding) error

	// FindByChat returns the binding for one chat/provider pair, or
	// domain.ErrBindingNotFound.
	FindByChat(ctx context.Context, chatID int64, provider string) (*domain.Binding, error)

	// ListByChat returns every binding for a chat.
	ListByChat(ctx context.Context, chatID int64) ([]domain.Binding, error)
}

// Notifier delivers a text message to a chat. Delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// LinkStart is the result of starting a link flow.
type LinkStart struct {
	Provider     string `json:"provider"`
	AuthorizeURL string `json:"authorize_url"`
	ExpiresIn    int    `json:"expires_in"`
}

// LinkResult is the outcome of a completed link flow.
type LinkResult struct {
	ChatID            int64  `json:"chat_id"`
	Provider          string `json:"provider"`
	ExternalAccountID string `json:"external_account_id"`
}

// Service drives the link flow: start issues a state token and authorize URL,
// complete consumes the callback and persists the binding.
type Service interface {
	// StartLink begins a flow for a chat and returns the authorize URL to
	// present as a login button.
	StartLink(ctx context.Context, provider string, chatID int64) (*LinkStart, error)

	// CompleteLink handles the provider callback. An invalid state aborts
	// before any provider call; exchange, profile and storage failures abort
	// before any binding write.
	CompleteLink(ctx context.Context, code, state string) (*LinkResult, error)

	// AbortLink consumes the state for a flow the provider reported as
	// denied or failed, so the token cannot be replayed, and notifies the
	// chat. Returns domain.ErrStateNotFound for an unknown state.
	AbortLink(ctx context.Context, state string) error

	// Status returns the chat's current bindings.
	Status(ctx context.Context, chatID int64) ([]domain.Binding, error)
}

type service struct {
	states   statetoken.Store
	clients  map[string]ProviderClient
	bindings BindingRepository
	notifier Notifier
	ttl      time.Duration
}

// NewService creates a link flow service over the given provider clients.
func NewService(states statetoken.Store, clients []ProviderClient, bindings BindingRepository, notifier Notifier, ttl time.Duration) Service {
	byName := make(map[string]ProviderClient, len(clients))
	for _, c := range clients {
		byName[c.ProviderName()] = c
	}
	if ttl <= 0 {
		ttl = statetoken.DefaultTTL
	}
	return &service{
		states:   states,
		clients:  byName,
		bindings: bindings,
		notifier: notifier,
		ttl:      ttl,
	}
}

// StartLink begins a flow for a chat and returns the authorize URL.
func (s *service) StartLink(ctx context.Context, provider string, chatID int64) (*LinkStart, error) {
	log := logger.FromContext(ctx)

	client, ok := s.clients[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, provider)
	}

	var verifier, challenge string
	if client.UsePKCE() {
		v, err := oauth.NewCodeVerifier()
		if err != nil {
			return nil, err
		}
		verifier = v
		challenge = oauth.CodeChallenge(v)
	}

	state, err := s.states.Issue(ctx, chatID, provider, verifier)
	if err != nil {
		return nil, fmt.Errorf("failed to issue state token: %w", err)
	}

	metrics.LinkFlowsStarted.WithLabelValues(provider).Inc()
	log.Info("Link flow started", "provider", provider, "chat_id", chatID)

	return &LinkStart{
		Provider:     provider,
		AuthorizeURL: client.AuthorizeURL(state, challenge),
		ExpiresIn:    int(s.ttl.Seconds()),
	}, nil
}

// CompleteLink handles the provider callback.
func (s *service) CompleteLink(ctx context.Context, code, state string) (*LinkResult, error) {
	log := logger.FromContext(ctx)

	// Consume first: an unknown or replayed state never reaches the provider.
	token, err := s.states.Consume(ctx, state)
	if err != nil {
		metrics.LinkFlowsFailed.WithLabelValues("unknown", metrics.ReasonInvalidState).Inc()
		log.Warn("Callback with invalid state", "error", err)
		return nil, err
	}

	client, ok := s.clients[token.Provider]
	if !ok {
		metrics.LinkFlowsFailed.WithLabelValues(token.Provider, metrics.ReasonInvalidState).Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, token.Provider)
	}

	accessToken, err := client.Exchange(ctx, code, token.CodeVerifier)
	if err != nil {
		metrics.LinkFlowsFailed.WithLabelValues(token.Provider, metrics.ReasonExchange).Inc()
		log.Error("Code exchange failed", "provider", token.Provider, "chat_id", token.ChatID, "error", err)
		s.notifyFailure(ctx, token.ChatID, token.Provider)
		return nil, err
	}

	accountID, err := client.Profile(ctx, accessToken)
	if err != nil {
		metrics.LinkFlowsFailed.WithLabelValues(token.Provider, metrics.ReasonProfile).Inc()
		log.Error("Profile fetch failed", "provider", token.Provider, "chat_id", token.ChatID, "error", err)
		s.notifyFailure(ctx, token.ChatID, token.Provider)
		return nil, err
	}

	binding := domain.Binding{
		ChatID:            token.ChatID,
		Provider:          token.Provider,
		ExternalAccountID: accountID,
		AccessToken:       accessToken,
		LinkedAt:          time.Now(),
	}
	if err := s.bindings.Upsert(ctx, binding); err != nil {
		metrics.LinkFlowsFailed.WithLabelValues(token.Provider, metrics.ReasonStorage).Inc()
		log.Error("Binding upsert failed", "provider", token.Provider, "chat_id", token.ChatID, "error", err)
		s.notifyFailure(ctx, token.ChatID, token.Provider)
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseError, err)
	}

	metrics.LinkFlowsCompleted.WithLabelValues(token.Provider).Inc()
	log.Info("Account linked", "provider", token.Provider, "chat_id", token.ChatID, "account", accountID)

	// The binding is durable at this point; a failed notification is logged
	// and swallowed.
	if err := s.notifier.Notify(ctx, token.ChatID, successMessage(token.Provider, accountID)); err != nil {
		log.Warn("Success notification failed", "chat_id", token.ChatID, "error", err)
	}

	return &LinkResult{
		ChatID:            token.ChatID,
		Provider:          token.Provider,
		ExternalAccountID: accountID,
	}, nil
}

// AbortLink consumes the state for a flow the provider denied.
func (s *service) AbortLink(ctx context.Context, state string) error {
	log := logger.FromContext(ctx)

	token, err := s.states.Consume(ctx, state)
	if err != nil {
		metrics.LinkFlowsFailed.WithLabelValues("unknown", metrics.ReasonInvalidState).Inc()
		log.Warn("Abort with invalid state", "error", err)
		return err
	}

	metrics.LinkFlowsFailed.WithLabelValues(token.Provider, metrics.ReasonDenied).Inc()
	log.Info("Link flow denied by provider", "provider", token.Provider, "chat_id", token.ChatID)
	s.notifyFailure(ctx, token.ChatID, token.Provider)
	return nil
}

// Status returns the chat's current bindings.
func (s *service) Status(ctx context.Context, chatID int64) ([]domain.Binding, error) {
	return s.bindings.ListByChat(ctx, chatID)
}

func (s *service) notifyFailure(ctx context.Context, chatID int64, provider string) {
	log := logger.FromContext(ctx)
	text := fmt.Sprintf("❌ Linking your %s account failed. Please try again.", displayName(provider))
	if err := s.notifier.Notify(ctx, chatID, text); err != nil {
		log.Warn("Failure notification failed", "chat_id", chatID, "error", err)
	}
}

func successMessage(provider, accountID string) string {
	if provider == domain.ProviderTwitter {
		accountID = "@" + accountID
	}
	return fmt.Sprintf("✅ Successfully linked your %s account (%s).", displayName(provider), accountID)
}

var titleCaser = cases.Title(language.English)

func displayName(provider string) string {
	return titleCaser.String(provider)
}
