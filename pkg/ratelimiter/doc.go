// Package ratelimiter implements token bucket rate limiting with in-memory
// and Redis storage, plus an HTTP middleware.
//
// A Bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request takes one token; a request that finds too few
// tokens is denied and consumes nothing.
//
//	store := ratelimiter.NewRedisStore(redisClient)
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 6 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.Composite(
//		ratelimiter.Static("auth"),
//		func(r *http.Request) string { return clientip.GetIP(r) },
//	))).Post("/login", login)
//
// MemoryStore limits are per process. RedisStore runs the refill and consume
// steps in one Lua script so concurrent replicas share a bucket safely.
package ratelimiter
