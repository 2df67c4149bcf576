package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/bookshelf/handler"
)

// Mountable is a group of routes served under one prefix.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the route groups served under /api. Nil groups are
// not mounted.
type RouterOptions struct {
	Auth    Mountable // /signup, /login
	Profile Mountable // /me, /me/books
}

// Router builds the /api subtree. Unknown routes and methods answer with the
// JSON error envelope.
//
//	r := chi.NewRouter()
//	r.Mount("/api", api.Router(api.RouterOptions{
//		Auth:    api.NewAuthHandlers(authSvc, errorHandler, api.WithAuthMiddleware(limit)),
//		Profile: api.NewProfileHandlers(booksSvc, errorHandler),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.NotFound(errorStatus(handler.ErrNotFound))
	r.MethodNotAllowed(errorStatus(handler.ErrMethodNotAllowed))

	if opts.Auth != nil {
		r.Mount("/", opts.Auth.Handle())
	}
	if opts.Profile != nil {
		r.Mount("/me", opts.Profile.Handle())
	}

	return r
}

func errorStatus(e handler.HTTPError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(e.Code, handler.ErrorDetail{
			Code:    e.Key,
			Message: http.StatusText(e.Code),
		}).Render(w, r)
	}
}
