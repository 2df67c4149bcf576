package ratelimiter

import (
	"math"
	"time"
)

// Result is the outcome of a rate limit check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left; negative when the request was denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the checked request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before retrying, or 0 when allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// RetryAfterSeconds is RetryAfter rounded up to whole seconds, the unit of the
// Retry-After header. A client waiting that long finds the bucket refilled.
func (r *Result) RetryAfterSeconds() int {
	return int(math.Ceil(r.RetryAfter().Seconds()))
}

// Config defines the token bucket.
type Config struct {
	Capacity       int           // burst limit
	RefillRate     int           // tokens added per interval
	RefillInterval time.Duration // refill period
}
