// Package redis connects to Redis with environment-driven settings and
// exposes a readiness probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// The client backs the distributed rate limiter store
// (ratelimiter.NewRedisStore) so limits hold across replicas.
package redis
