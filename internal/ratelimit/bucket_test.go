package ratelimit

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irvrobbi/promusic/internal/config"
)

func newTestBucket(t *testing.T) *TokenBucket {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenBucket(client)
}

func TestTokenBucketAllowsUpToBurst(t *testing.T) {
	bucket := newTestBucket(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := bucket.Allow(ctx, "quote:client:test", 1, 3)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i)
	}

	res, err := bucket.Allow(ctx, "quote:client:test", 1, 3)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter.Nanoseconds(), int64(0))
}

func TestTokenBucketKeysAreIndependent(t *testing.T) {
	bucket := newTestBucket(t)
	ctx := context.Background()

	res, err := bucket.Allow(ctx, "quote:client:a", 1, 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = bucket.Allow(ctx, "quote:client:a", 1, 1)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = bucket.Allow(ctx, "quote:client:b", 1, 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestTokenBucketRejectsBadArguments(t *testing.T) {
	bucket := newTestBucket(t)
	ctx := context.Background()

	_, err := bucket.Allow(ctx, "", 1, 1)
	assert.Error(t, err)

	_, err = bucket.Allow(ctx, "key", 0, 1)
	assert.Error(t, err)

	_, err = bucket.Allow(ctx, "key", 1, 0)
	assert.Error(t, err)
}

func TestNewQuoteLimiterDisabled(t *testing.T) {
	limiter, err := NewQuoteLimiter(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, limiter)
	assert.False(t, limiter.Enabled())

	res, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestNewQuoteLimiterValidation(t *testing.T) {
	cfg := config.Config{RateLimit: config.RateLimitConfig{Enabled: true}}
	_, err := NewQuoteLimiter(cfg)
	assert.Error(t, err)

	cfg.RateLimit.RedisAddr = "localhost:6379"
	_, err = NewQuoteLimiter(cfg)
	assert.Error(t, err)

	cfg.RateLimit.QuoteRate = 5
	cfg.RateLimit.QuoteBurst = 10
	limiter, err := NewQuoteLimiter(cfg)
	require.NoError(t, err)
	assert.True(t, limiter.Enabled())
}
