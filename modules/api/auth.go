package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/bookshelf/handler"
	"github.com/dmitrymomot/bookshelf/pkg/binder"
	"github.com/dmitrymomot/bookshelf/svc/auth"
)

// AuthService is the credential side of svc/auth.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
}

// AuthHandlers serves signup and login.
type AuthHandlers struct {
	svc          AuthService
	errorHandler handler.ErrorHandler[handler.Context]
	middlewares  []func(http.Handler) http.Handler
}

type AuthOption func(*AuthHandlers)

// WithAuthMiddleware wraps the signup and login routes, e.g. with a rate
// limiter. Unmatched paths do not pass through it.
func WithAuthMiddleware(mw ...func(http.Handler) http.Handler) AuthOption {
	return func(h *AuthHandlers) {
		h.middlewares = append(h.middlewares, mw...)
	}
}

func NewAuthHandlers(svc AuthService, errorHandler handler.ErrorHandler[handler.Context], opts ...AuthOption) *AuthHandlers {
	h := &AuthHandlers{svc: svc, errorHandler: errorHandler}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *AuthHandlers) Handle() http.Handler {
	r := chi.NewRouter()
	limited := r.With(h.middlewares...)

	limited.Post("/signup", handler.Wrap(h.signup,
		handler.WithBinders[handler.Context, SignupRequest](binder.JSON(0)),
		handler.WithErrorHandler[handler.Context, SignupRequest](h.errorHandler),
	))
	limited.Post("/login", handler.Wrap(h.login,
		handler.WithBinders[handler.Context, LoginRequest](binder.JSON(0)),
		handler.WithErrorHandler[handler.Context, LoginRequest](h.errorHandler),
	))

	return r
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) signup(ctx handler.Context, req SignupRequest) handler.Response {
	session, err := h.svc.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(session, handler.WithJSONStatus(http.StatusCreated))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) login(ctx handler.Context, req LoginRequest) handler.Response {
	session, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(session)
}
