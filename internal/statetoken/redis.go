package statetoken

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feedlink/feedlink/internal/domain"
)

// Verify interface compliance
var _ Store = (*RedisStore)(nil)

// statePrefix namespaces token keys in Redis
const statePrefix = "linkstate:"

// RedisStore is a Redis-backed Store. The key TTL enforces expiry and GETDEL
// makes consumption atomic, so multiple callback handler instances can share
// one store without double-spending a state value.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store with the given token TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Issue records a pending correlation and returns its opaque state value.
func (s *RedisStore) Issue(ctx context.Context, chatID int64, provider, codeVerifier string) (string, error) {
	value, err := newStateValue()
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := Token{
		Value:        value,
		ChatID:       chatID,
		Provider:     provider,
		CodeVerifier: codeVerifier,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	data, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state token: %w", err)
	}

	if err := s.client.Set(ctx, statePrefix+value, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store state token: %w", err)
	}

	return value, nil
}

// Consume atomically looks up and removes the token for a state value.
func (s *RedisStore) Consume(ctx context.Context, value string) (*Token, error) {
	data, err := s.client.GetDel(ctx, statePrefix+value).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume state token: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state token: %w", err)
	}
	return &token, nil
}
