package statetoken

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/feedlink/feedlink/internal/domain"
)

// Verify interface compliance
var _ Store = (*MemoryStore)(nil)

// maxPendingTokens caps how many in-flight link attempts a single process
// holds before the oldest are evicted.
const maxPendingTokens = 4096

// MemoryStore is an in-process Store. Suitable for a single-instance
// deployment; tokens are lost on restart, which simply invalidates in-flight
// flows. Use RedisStore when the callback handler is scaled out.
type MemoryStore struct {
	mu     sync.Mutex
	tokens *expirable.LRU[string, Token]
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryStore creates a memory-backed store with the given token TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		tokens: expirable.NewLRU[string, Token](maxPendingTokens, nil, ttl),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue records a pending correlation and returns its opaque state value.
func (s *MemoryStore) Issue(ctx context.Context, chatID int64, provider, codeVerifier string) (string, error) {
	value, err := newStateValue()
	if err != nil {
		return "", err
	}

	now := s.now()
	token := Token{
		Value:        value,
		ChatID:       chatID,
		Provider:     provider,
		CodeVerifier: codeVerifier,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	s.mu.Lock()
	s.tokens.Add(value, token)
	s.mu.Unlock()

	return value, nil
}

// Consume atomically looks up and removes the token for a state value.
func (s *MemoryStore) Consume(ctx context.Context, value string) (*Token, error) {
	s.mu.Lock()
	token, ok := s.tokens.Get(value)
	if ok {
		s.tokens.Remove(value)
	}
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrStateNotFound
	}
	// Lazy expiry check: the LRU purges on its own schedule, treat stale
	// entries as absent regardless.
	if s.now().After(token.ExpiresAt) {
		return nil, domain.ErrStateNotFound
	}
	return &token, nil
}
