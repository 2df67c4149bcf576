package clientip

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/bookshelf/pkg/logger"
)

type clientIPContextKey struct{}

// SetIPToContext stores the client IP in ctx.
func SetIPToContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// GetIPFromContext returns the client IP stored by Middleware, or "".
func GetIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

// LoggerExtractor adds client_ip to records logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		ip := GetIPFromContext(ctx)
		if ip == "" {
			return slog.Attr{}, false
		}
		return logger.ClientIP(ip), true
	}
}
