package statetoken

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

const (
	// DefaultTTL bounds how long an issued state token stays consumable.
	DefaultTTL = 5 * time.Minute

	// stateBytes gives 256 bits of entropy per state value.
	stateBytes = 32
)

// Token is the transient correlation record carried across the OAuth redirect
// boundary. It exists only to map the provider callback's state parameter back
// to the originating chat; the PKCE verifier rides along because it must be
// presented at code exchange time.
type Token struct {
	Value        string    `json:"value"`
	ChatID       int64     `json:"chat_id"`
	Provider     string    `json:"provider"`
	CodeVerifier string    `json:"code_verifier,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Store issues and consumes state tokens.
type Store interface {
	// Issue records a pending correlation and returns its opaque state value.
	Issue(ctx context.Context, chatID int64, provider, codeVerifier string) (string, error)

	// Consume atomically looks up and removes the token for a state value.
	// Unknown, expired and already-consumed values all return
	// domain.ErrStateNotFound; a given value can succeed at most once, even
	// under concurrent calls.
	Consume(ctx context.Context, value string) (*Token, error)
}

// newStateValue generates an unguessable state value.
func newStateValue() (string, error) {
	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state value: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
