package ratelimiter_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookshelf/pkg/ratelimiter"
)

// TestRedisStore runs against a live server when BOOKSHELF_TEST_REDIS_URL is set.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("BOOKSHELF_TEST_REDIS_URL")
	if url == "" {
		t.Skip("BOOKSHELF_TEST_REDIS_URL is not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	clock := newFakeClock()
	store := ratelimiter.NewRedisStore(client,
		ratelimiter.WithKeyPrefix("test:ratelimit:"+time.Now().Format("150405.000000")+":"),
		ratelimiter.WithRedisClock(clock.Now),
	)
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	require.NoError(t, err)

	ctx := context.Background()
	t.Cleanup(func() { _ = limiter.Reset(ctx, "ip") })

	res, err := limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, clock.Now().Add(time.Minute).UnixMilli(), res.ResetAt.UnixMilli())

	res, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining)

	res, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	clock.Advance(time.Minute)
	res, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed())

	require.NoError(t, limiter.Reset(ctx, "ip"))
	res, err = limiter.Status(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)

	// Partial intervals carry over to the next refill.
	start := clock.Now()
	for range 2 {
		_, err = limiter.Allow(ctx, "ip")
		require.NoError(t, err)
	}
	clock.Advance(90 * time.Second)
	res, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	require.True(t, res.Allowed())
	assert.Equal(t, start.Add(2*time.Minute).UnixMilli(), res.ResetAt.UnixMilli())

	clock.Advance(30 * time.Second)
	res, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}
