package books

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/bookshelf/pkg/logger"
	"github.com/dmitrymomot/bookshelf/pkg/sanitizer"
	"github.com/dmitrymomot/bookshelf/pkg/validator"
	"github.com/dmitrymomot/bookshelf/svc/auth"
)

// Store defines the identity operations needed to read and change saved books.
// Every method returns auth.ErrIdentityNotFound when the id is unknown.
type Store interface {
	FindByID(ctx context.Context, id string) (*auth.Identity, error)
	// AddBook appends the book unless one with the same BookID is already saved,
	// and returns the updated identity.
	AddBook(ctx context.Context, identityID string, book auth.Book) (*auth.Identity, error)
	// RemoveBook deletes the book with the given id if present, and returns the
	// updated identity.
	RemoveBook(ctx context.Context, identityID, bookID string) (*auth.Identity, error)
}

// Service serves the profile and saved-book operations of the signed-in user.
type Service struct {
	store  Store
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a books service on top of the given store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Me returns the identity of the signed-in user with its saved books.
func (s *Service) Me(ctx context.Context) (*auth.Identity, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	identity, err := s.store.FindByID(ctx, user.ID)
	if err != nil {
		return nil, s.storeError(ctx, err, user.ID, "failed to load profile")
	}
	return identity, nil
}

// SaveBook adds a book to the signed-in user's list. Saving a book that is
// already on the list leaves it unchanged.
func (s *Service) SaveBook(ctx context.Context, book auth.Book) (*auth.Identity, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	book = normalizeBook(book)
	if err := validator.Apply(
		validator.RequiredString("bookId", book.BookID),
		validator.MaxLenString("bookId", book.BookID, 128),
		validator.RequiredString("title", book.Title),
	); err != nil {
		return nil, err
	}

	identity, err := s.store.AddBook(ctx, user.ID, book)
	if err != nil {
		return nil, s.storeError(ctx, err, user.ID, "failed to save book")
	}
	return identity, nil
}

// RemoveBook removes a book from the signed-in user's list. Removing a book
// that is not on the list is not an error.
func (s *Service) RemoveBook(ctx context.Context, bookID string) (*auth.Identity, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	bookID = strings.TrimSpace(bookID)
	if err := validator.Apply(validator.RequiredString("bookId", bookID)); err != nil {
		return nil, err
	}

	identity, err := s.store.RemoveBook(ctx, user.ID, bookID)
	if err != nil {
		return nil, s.storeError(ctx, err, user.ID, "failed to remove book")
	}
	return identity, nil
}

// storeError maps a store failure to a client-safe error. A token can outlive
// its identity (for example after a store reset), so not-found is treated as
// a missing login.
func (s *Service) storeError(ctx context.Context, err error, userID, message string) error {
	if errors.Is(err, auth.ErrIdentityNotFound) {
		return auth.ErrNotLoggedIn
	}
	s.logger.ErrorContext(ctx, message,
		logger.UserID(userID),
		logger.Error(err),
		logger.Component("books"),
	)
	return auth.PersistenceFailure(message)
}

func normalizeBook(b auth.Book) auth.Book {
	b.BookID = strings.TrimSpace(b.BookID)
	b.Title = sanitizer.NormalizeText(b.Title)
	authors := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		if a = sanitizer.NormalizeText(a); a != "" {
			authors = append(authors, a)
		}
	}
	b.Authors = authors
	return b
}
