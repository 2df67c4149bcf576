package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookshelf/handler"
	"github.com/dmitrymomot/bookshelf/pkg/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAppConfig(t *testing.T) {
	t.Parallel()

	var cfg appConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))
	assert.Equal(t, driverMongo, cfg.StorageDriver)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
	require.NoError(t, cfg.validate())

	cfg.StorageDriver = "sqlite"
	assert.Error(t, cfg.validate())

	cfg.StorageDriver = driverMemory
	cfg.RateLimit.Store = "etcd"
	assert.Error(t, cfg.validate())

	cfg.RateLimit.Enabled = false
	assert.NoError(t, cfg.validate())
}

func TestOpenStore(t *testing.T) {
	t.Parallel()

	store, err := openStore(context.Background(), driverMemory, discardLogger())
	require.NoError(t, err)
	defer store.close()

	require.Len(t, store.checks, 1)
	assert.NoError(t, store.checks[0].Fn(context.Background()))

	_, err = openStore(context.Background(), "sqlite", discardLogger())
	assert.Error(t, err)
}

func TestNewAuthLimiter(t *testing.T) {
	t.Parallel()

	errorHandler := handler.NewErrorHandler(discardLogger())

	disabled, err := newAuthLimiter(context.Background(), rateLimitConfig{}, errorHandler, discardLogger())
	require.NoError(t, err)
	assert.Empty(t, disabled.options)
	disabled.close()

	_, err = newAuthLimiter(context.Background(), rateLimitConfig{Enabled: true, Store: limitStoreMemory}, errorHandler, discardLogger())
	assert.Error(t, err, "zero capacity is rejected")

	limiter, err := newAuthLimiter(context.Background(), rateLimitConfig{
		Enabled:        true,
		Store:          limitStoreMemory,
		Capacity:       1,
		RefillRate:     1,
		RefillInterval: time.Second,
	}, errorHandler, discardLogger())
	require.NoError(t, err)
	defer limiter.close()
	assert.Len(t, limiter.options, 1)
	assert.Empty(t, limiter.checks)
}
