package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/bookshelf/handler"
	"github.com/dmitrymomot/bookshelf/pkg/binder"
	"github.com/dmitrymomot/bookshelf/svc/auth"
)

// BooksService is the signed-in user's side of svc/books.
type BooksService interface {
	Me(ctx context.Context) (*auth.Identity, error)
	SaveBook(ctx context.Context, book auth.Book) (*auth.Identity, error)
	RemoveBook(ctx context.Context, bookID string) (*auth.Identity, error)
}

// ProfileHandlers serves the profile and saved-book routes. Every route
// answers 401 for anonymous requests.
type ProfileHandlers struct {
	svc          BooksService
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewProfileHandlers(svc BooksService, errorHandler handler.ErrorHandler[handler.Context]) *ProfileHandlers {
	return &ProfileHandlers{svc: svc, errorHandler: errorHandler}
}

func (h *ProfileHandlers) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(h.me,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
	r.Post("/books", handler.Wrap(h.saveBook,
		handler.WithBinders[handler.Context, SaveBookRequest](binder.JSON(0)),
		handler.WithErrorHandler[handler.Context, SaveBookRequest](h.errorHandler),
	))
	r.Delete("/books/{bookId}", handler.Wrap(h.removeBook,
		handler.WithBinders[handler.Context, RemoveBookRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, RemoveBookRequest](h.errorHandler),
	))

	return r
}

func (h *ProfileHandlers) me(ctx handler.Context, _ struct{}) handler.Response {
	identity, err := h.svc.Me(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(identity)
}

type SaveBookRequest struct {
	BookID      string   `json:"bookId"`
	Authors     []string `json:"authors"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
}

func (h *ProfileHandlers) saveBook(ctx handler.Context, req SaveBookRequest) handler.Response {
	identity, err := h.svc.SaveBook(ctx, auth.Book(req))
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(identity)
}

type RemoveBookRequest struct {
	BookID string `path:"bookId"`
}

func (h *ProfileHandlers) removeBook(ctx handler.Context, req RemoveBookRequest) handler.Response {
	identity, err := h.svc.RemoveBook(ctx, req.BookID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(identity)
}
