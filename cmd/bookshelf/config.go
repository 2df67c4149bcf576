package main

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/bookshelf/pkg/ratelimiter"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	driverMongo    = "mongo"
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

// Rate limit backends accepted by RATE_LIMIT_STORE.
const (
	limitStoreMemory = "memory"
	limitStoreRedis  = "redis"
)

type appConfig struct {
	Env           string        `env:"APP_ENV" envDefault:"development"`         // Env selects the logging preset.
	Name          string        `env:"APP_NAME" envDefault:"bookshelf"`          // Name tags logs and prefixes metrics.
	StorageDriver string        `env:"STORAGE_DRIVER" envDefault:"mongo"`        // StorageDriver is mongo, postgres or memory.
	HealthTimeout time.Duration `env:"HEALTH_CHECK_TIMEOUT" envDefault:"2s"`     // HealthTimeout bounds each readiness probe.
	MaxBodyBytes  int64         `env:"HTTP_MAX_BODY_BYTES" envDefault:"1048576"` // MaxBodyBytes caps JSON request bodies.
	MetricsPath   string        `env:"METRICS_PATH" envDefault:"/metrics"`       // MetricsPath serves the Prometheus registry.
	RateLimit     rateLimitConfig
}

type rateLimitConfig struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`        // Enabled throttles signup and login per client IP.
	Store          string        `env:"RATE_LIMIT_STORE" envDefault:"memory"`        // Store is memory or redis.
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"10"`         // Capacity is the burst size.
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`       // RefillRate is the number of attempts regained per interval.
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"30s"` // RefillInterval is the refill period.
}

func (c appConfig) validate() error {
	switch c.StorageDriver {
	case driverMongo, driverPostgres, driverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.RateLimit.Enabled {
		switch c.RateLimit.Store {
		case limitStoreMemory, limitStoreRedis:
		default:
			return fmt.Errorf("unknown RATE_LIMIT_STORE %q", c.RateLimit.Store)
		}
	}
	return nil
}

func (c rateLimitConfig) bucket() ratelimiter.Config {
	return ratelimiter.Config{
		Capacity:       c.Capacity,
		RefillRate:     c.RefillRate,
		RefillInterval: c.RefillInterval,
	}
}
