// Package mongo connects to MongoDB with environment-driven settings.
//
// New retries the initial connect and ping, which covers the window where the
// application container starts before the database does. Healthcheck returns a
// function that plugs into the HTTP readiness probe.
//
//	cfg := config.MustLoad[mongo.Config]()
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
package mongo
