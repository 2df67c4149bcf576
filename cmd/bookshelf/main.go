// Command bookshelf serves the bookshelf JSON API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/bookshelf/handler"
	"github.com/dmitrymomot/bookshelf/modules/api"
	"github.com/dmitrymomot/bookshelf/pkg/clientip"
	"github.com/dmitrymomot/bookshelf/pkg/config"
	"github.com/dmitrymomot/bookshelf/pkg/environment"
	"github.com/dmitrymomot/bookshelf/pkg/httpserver"
	"github.com/dmitrymomot/bookshelf/pkg/logger"
	"github.com/dmitrymomot/bookshelf/pkg/metrics"
	"github.com/dmitrymomot/bookshelf/pkg/requestid"
	"github.com/dmitrymomot/bookshelf/svc/auth"
	"github.com/dmitrymomot/bookshelf/svc/books"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg  appConfig
		authCfg auth.Config
		httpCfg httpserver.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&authCfg),
		config.Load(&httpCfg),
	); err != nil {
		return err
	}
	if err := appCfg.validate(); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(environment.Parse(appCfg.Env), appCfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			auth.LoggerExtractor(),
		),
	)
	slog.SetDefault(log)

	m, err := metrics.New(appCfg.Name)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, appCfg.StorageDriver, log)
	if err != nil {
		return err
	}
	defer store.close()

	tokens, err := auth.NewTokenService(authCfg.TokenSecret, auth.WithTokenTTL(authCfg.TokenTTL))
	if err != nil {
		return err
	}

	authSvc := auth.NewService(store, tokens,
		auth.WithBcryptCost(authCfg.BcryptCost),
		auth.WithServiceLogger(log),
		auth.WithServiceRecorder(m),
	)
	booksSvc := books.NewService(store, books.WithLogger(log))
	builder := auth.NewContextBuilder(tokens,
		auth.WithBuilderLogger(log),
		auth.WithBuilderRecorder(m),
	)

	errorHandler := handler.NewErrorHandler(log, api.AuthErrorMapper)

	limiter, err := newAuthLimiter(ctx, appCfg.RateLimit, errorHandler, log)
	if err != nil {
		return err
	}
	defer limiter.close()

	checks := append(store.checks, limiter.checks...)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(httpCfg.TrustProxyHeaders),
		m.Middleware,
		middleware.Recoverer,
		middleware.RequestSize(appCfg.MaxBodyBytes),
	)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, appCfg.HealthTimeout, checks...))
	r.Method("GET", appCfg.MetricsPath, m.Handler())

	r.With(auth.Middleware(builder)).Mount("/api", api.Router(api.RouterOptions{
		Auth:    api.NewAuthHandlers(authSvc, errorHandler, limiter.options...),
		Profile: api.NewProfileHandlers(booksSvc, errorHandler),
	}))

	log.InfoContext(ctx, "starting bookshelf",
		slog.String("storage", appCfg.StorageDriver),
		slog.Bool("rate_limit", appCfg.RateLimit.Enabled),
	)

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, r)
}
