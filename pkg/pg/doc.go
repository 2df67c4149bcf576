// Package pg wraps pgx/v5 connection pooling, goose migrations and error
// classification for PostgreSQL.
//
// Connect opens a pool with retry. Migrate runs goose migrations read from an
// fs.FS over the same pool. Healthcheck plugs into the readiness probe.
// IsDuplicateKeyError and IsForeignKeyViolationError classify *pgconn.PgError
// values by SQLSTATE.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, ".", cfg, slog.Default()); err != nil {
//		return err
//	}
package pg
