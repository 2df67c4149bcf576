package main

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/bookshelf/handler"
	"github.com/dmitrymomot/bookshelf/modules/api"
	"github.com/dmitrymomot/bookshelf/pkg/clientip"
	"github.com/dmitrymomot/bookshelf/pkg/config"
	"github.com/dmitrymomot/bookshelf/pkg/httpserver"
	"github.com/dmitrymomot/bookshelf/pkg/logger"
	"github.com/dmitrymomot/bookshelf/pkg/ratelimiter"
	"github.com/dmitrymomot/bookshelf/pkg/redis"
)

type authLimiter struct {
	options []api.AuthOption
	checks  []httpserver.Check
	close   func()
}

// newAuthLimiter builds the per-IP throttle for signup and login. Limiter
// failures answer 503 rather than letting requests through.
func newAuthLimiter(ctx context.Context, cfg rateLimitConfig, errorHandler handler.ErrorHandler[handler.Context], log *slog.Logger) (*authLimiter, error) {
	if !cfg.Enabled {
		return &authLimiter{close: func() {}}, nil
	}

	var (
		store  ratelimiter.Store
		checks []httpserver.Check
		closer func()
	)
	switch cfg.Store {
	case limitStoreRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		store = ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix("bookshelf:ratelimit:"))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		closer = func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", logger.Error(err))
			}
		}
	default:
		mem := ratelimiter.NewMemoryStore()
		store = mem
		closer = mem.Close
	}

	bucket, err := ratelimiter.NewBucket(store, cfg.bucket())
	if err != nil {
		closer()
		return nil, err
	}

	mw := ratelimiter.Middleware(bucket,
		ratelimiter.Composite(ratelimiter.Static("auth"), clientip.KeyFunc),
		ratelimiter.WithDeniedHandler(api.RateLimitDenied),
		ratelimiter.WithErrorHandler(api.RateLimitFailed(errorHandler)),
	)

	return &authLimiter{
		options: []api.AuthOption{api.WithAuthMiddleware(mw)},
		checks:  checks,
		close:   closer,
	}, nil
}

