package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/bookshelf/pkg/jwt"
	"github.com/dmitrymomot/bookshelf/pkg/logger"
)

// RequestContext is the per-request identity state. A nil User means the
// request is anonymous.
type RequestContext struct {
	User *Payload
}

// Authenticated reports whether the request carries a verified identity.
func (c RequestContext) Authenticated() bool {
	return c.User != nil
}

// Anonymous returns a request context without an identity.
func Anonymous() RequestContext {
	return RequestContext{}
}

// TokenVerifier decodes identity tokens.
type TokenVerifier interface {
	Verify(token string) (*Payload, error)
}

// ContextBuilder turns a raw Authorization header into a RequestContext.
//
// Policy: verification never aborts request processing. A missing header, an
// unparseable header and any verification failure all produce an anonymous
// context; mutations are then refused by RequireUser.
type ContextBuilder struct {
	tokens   TokenVerifier
	logger   *slog.Logger
	recorder Recorder
}

// BuilderOption configures a ContextBuilder.
type BuilderOption func(*ContextBuilder)

// WithBuilderLogger sets the logger used to report rejected tokens.
func WithBuilderLogger(l *slog.Logger) BuilderOption {
	return func(b *ContextBuilder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithBuilderRecorder sets the recorder notified about every verification.
func WithBuilderRecorder(r Recorder) BuilderOption {
	return func(b *ContextBuilder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// NewContextBuilder creates a ContextBuilder backed by the given verifier.
func NewContextBuilder(tokens TokenVerifier, opts ...BuilderOption) *ContextBuilder {
	b := &ContextBuilder{
		tokens:   tokens,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build derives the request context from the raw Authorization header value.
func (b *ContextBuilder) Build(ctx context.Context, header string) RequestContext {
	token, err := jwt.TokenFromHeader(header)
	if err != nil {
		b.recorder.ObserveTokenVerification(OutcomeAnonymous)
		return Anonymous()
	}

	payload, err := b.tokens.Verify(token)
	if err != nil {
		b.recorder.ObserveTokenVerification(OutcomeInvalid)
		reason := err
		if cause := errors.Unwrap(err); cause != nil {
			reason = cause
		}
		b.logger.WarnContext(ctx, "invalid token",
			logger.Error(reason),
			logger.Component("auth"),
		)
		return Anonymous()
	}

	b.recorder.ObserveTokenVerification(OutcomeSuccess)
	return RequestContext{User: payload}
}

// Middleware builds the request context for every request and stores it in
// the request's context.Context.
func Middleware(b *ContextBuilder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := b.Build(r.Context(), r.Header.Get("Authorization"))
			next.ServeHTTP(w, r.WithContext(SetRequestContext(r.Context(), rc)))
		})
	}
}

type requestContextKey struct{}

// SetRequestContext stores the request context for downstream handlers.
func SetRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// GetRequestContext returns the stored request context, or an anonymous one
// when nothing was stored.
func GetRequestContext(ctx context.Context) RequestContext {
	rc, _ := ctx.Value(requestContextKey{}).(RequestContext)
	return rc
}

// RequireUser is the authorization gate for state-changing operations. It
// returns the authenticated identity or ErrNotLoggedIn.
func RequireUser(ctx context.Context) (*Payload, error) {
	rc := GetRequestContext(ctx)
	if !rc.Authenticated() {
		return nil, ErrNotLoggedIn
	}
	return rc.User, nil
}

// LoggerExtractor adds the authenticated user id to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if rc := GetRequestContext(ctx); rc.Authenticated() {
			return logger.UserID(rc.User.ID), true
		}
		return slog.Attr{}, false
	}
}
