package statetoken

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedlink/feedlink/internal/domain"
)

// setupTestRedisStore creates a miniredis-backed store
func setupTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_IssueAndConsume(t *testing.T) {
	store, _ := setupTestRedisStore(t, time.Minute)
	ctx := context.Background()

	value, err := store.Issue(ctx, 12345, domain.ProviderTwitter, "verifier-abc")
	require.NoError(t, err)
	assert.NotEmpty(t, value)

	token, err := store.Consume(ctx, value)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), token.ChatID)
	assert.Equal(t, domain.ProviderTwitter, token.Provider)
	assert.Equal(t, "verifier-abc", token.CodeVerifier)
}

func TestRedisStore_ConsumeIsExactlyOnce(t *testing.T) {
	store, _ := setupTestRedisStore(t, time.Minute)
	ctx := context.Background()

	value, err := store.Issue(ctx, 1, domain.ProviderGoogle, "")
	require.NoError(t, err)

	_, err = store.Consume(ctx, value)
	require.NoError(t, err)

	_, err = store.Consume(ctx, value)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestRedisStore_ConsumeUnknownValue(t *testing.T) {
	store, _ := setupTestRedisStore(t, time.Minute)

	_, err := store.Consume(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := setupTestRedisStore(t, time.Minute)
	ctx := context.Background()

	value, err := store.Issue(ctx, 7, domain.ProviderTwitter, "v")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Consume(ctx, value)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}
