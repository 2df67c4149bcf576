package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/bookshelf/pkg/logger"
	"github.com/dmitrymomot/bookshelf/pkg/sanitizer"
	"github.com/dmitrymomot/bookshelf/pkg/validator"
)

// Store defines the identity storage operations needed for signup and login.
type Store interface {
	// FindByEmail returns ErrIdentityNotFound when no identity has the email.
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	// Create persists a new identity and returns it with its assigned id.
	// Returns ErrIdentityExists when the username or email is taken.
	Create(ctx context.Context, identity *Identity) (*Identity, error)
}

// TokenIssuer issues identity tokens.
type TokenIssuer interface {
	Issue(identity *Identity) (string, error)
}

// Service implements signup and the credential verifier.
type Service struct {
	store      Store
	tokens     TokenIssuer
	bcryptCost int
	logger     *slog.Logger
	recorder   Recorder
	now        func() time.Time

	comparePassword func(hash, password []byte) error
	dummyOnce       sync.Once
	dummyHash       []byte
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for the service.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithServiceRecorder sets the recorder notified about signup and login outcomes.
func WithServiceRecorder(r Recorder) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewService creates the signup/login service.
func NewService(store Store, tokens TokenIssuer, opts ...ServiceOption) *Service {
	s := &Service{
		store:      store,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:   noopRecorder{},
		now:        time.Now,

		comparePassword: bcrypt.CompareHashAndPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// missingIdentityHash returns a placeholder hash generated once at the
// service's cost. Login compares against it for unknown emails so that both
// failure paths take the same time.
func (s *Service) missingIdentityHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("bookshelf-missing-identity"), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to prepare placeholder password hash",
				logger.Error(err),
				logger.Component("auth"),
			)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Signup creates an identity and immediately issues a token for it.
// No prior request context is required.
func (s *Service) Signup(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.RequiredString("username", username),
		validator.MaxLenString("username", username, 64),
		validator.ValidEmail("email", email),
		validator.Required("password", password),
		validator.MaxLen("password", password, 72),
	); err != nil {
		s.recorder.ObserveSignup(OutcomeInvalid)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.recorder.ObserveSignup(OutcomeError)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity, err := s.store.Create(ctx, &Identity{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		SavedBooks:   []Book{},
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrIdentityExists) {
			s.recorder.ObserveSignup(OutcomeAlreadyExists)
			return nil, ErrAlreadyExists
		}
		s.recorder.ObserveSignup(OutcomeError)
		s.logger.ErrorContext(ctx, "failed to create identity",
			slog.String("email", sanitizer.MaskEmail(email)),
			logger.Error(err),
			logger.Component("auth"),
		)
		return nil, PersistenceFailure("failed to create account")
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		s.recorder.ObserveSignup(OutcomeError)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.recorder.ObserveSignup(OutcomeSuccess)
	return &Session{Token: token, Identity: identity}, nil
}

// Login verifies the email and password and issues a token on success.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials so
// callers cannot tell which field was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = sanitizer.NormalizeEmail(email)

	identity, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			_ = s.comparePassword(s.missingIdentityHash(), []byte(password))
			s.recorder.ObserveLogin(OutcomeInvalidCredentials)
			return nil, ErrInvalidCredentials
		}
		s.recorder.ObserveLogin(OutcomeError)
		s.logger.ErrorContext(ctx, "failed to look up identity",
			slog.String("email", sanitizer.MaskEmail(email)),
			logger.Error(err),
			logger.Component("auth"),
		)
		return nil, PersistenceFailure("login failed")
	}

	if err := s.comparePassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		s.recorder.ObserveLogin(OutcomeInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		s.recorder.ObserveLogin(OutcomeError)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.recorder.ObserveLogin(OutcomeSuccess)
	return &Session{Token: token, Identity: identity}, nil
}
