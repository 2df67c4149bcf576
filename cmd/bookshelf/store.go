package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/bookshelf/pkg/config"
	"github.com/dmitrymomot/bookshelf/pkg/httpserver"
	"github.com/dmitrymomot/bookshelf/pkg/logger"
	"github.com/dmitrymomot/bookshelf/pkg/mongo"
	"github.com/dmitrymomot/bookshelf/pkg/pg"
	"github.com/dmitrymomot/bookshelf/repository"
	"github.com/dmitrymomot/bookshelf/repository/migrations"
)

type storeBundle struct {
	repository.Store
	checks []httpserver.Check
	close  func()
}

// openStore connects the identity store selected by driver. Only the selected
// driver's configuration is loaded, so its required variables are the only
// ones that must be set.
func openStore(ctx context.Context, driver string, log *slog.Logger) (*storeBundle, error) {
	switch driver {
	case driverMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := repository.NewMongoStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = db.Client().Disconnect(context.WithoutCancel(ctx))
			return nil, err
		}
		return &storeBundle{
			Store:  store,
			checks: []httpserver.Check{{Name: "mongo", Fn: mongo.Healthcheck(db.Client())}},
			close: func() {
				if err := db.Client().Disconnect(context.WithoutCancel(ctx)); err != nil {
					log.Error("failed to disconnect from mongo", logger.Error(err))
				}
			},
		}, nil

	case driverPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, migrations.FS, ".", cfg, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &storeBundle{
			Store:  repository.NewPostgresStore(pool),
			checks: []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}},
			close:  pool.Close,
		}, nil

	case driverMemory:
		log.Warn("using in-memory identity store; data is lost on restart")
		store := repository.NewMemoryStore()
		return &storeBundle{
			Store:  store,
			checks: []httpserver.Check{{Name: "memory", Fn: store.Ping}},
			close:  func() {},
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
