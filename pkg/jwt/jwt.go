package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// HeaderAlgorithm is the only signing algorithm accepted by the Service.
const HeaderAlgorithm = "HS256"

// RegisteredClaims mirrors the RFC 7519 registered claims. Embed it into custom
// claim structs to get expiry and issued-at validation for free.
type RegisteredClaims = gojwt.RegisteredClaims

// Claims is implemented by every claims structure the Service can sign or parse.
type Claims = gojwt.Claims

// NumericDate is a JSON-encoded Unix timestamp with second precision.
type NumericDate = gojwt.NumericDate

// NewNumericDate truncates t to whole seconds and wraps it into a NumericDate.
func NewNumericDate(t time.Time) *NumericDate {
	return gojwt.NewNumericDate(t)
}

// Service handles JWT token generation and validation using HMAC-SHA256.
// The signing key is kept in memory only and should be cryptographically secure.
type Service struct {
	signingKey []byte
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for temporal claim validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new JWT service with the provided signing key.
// The key should be at least 32 bytes for adequate security with HMAC-SHA256.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: signingKey,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// NewFromString creates a new JWT service from a string signing key.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}
	return New([]byte(signingKey), opts...)
}

// Now returns the current time according to the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Generate signs claims and returns the compact token string.
func (s *Service) Generate(claims Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// Parse validates a token and unmarshals its claims into the provided structure.
// The expiry claim is mandatory: a token without "exp" is rejected. A token is
// expired from the exact second stored in "exp" onwards.
func (s *Service) Parse(tokenString string, claims Claims) error {
	if claims == nil {
		return ErrMissingClaims
	}
	if tokenString == "" {
		return ErrInvalidToken
	}

	token, err := gojwt.ParseWithClaims(tokenString, claims,
		func(*gojwt.Token) (any, error) { return s.signingKey, nil },
		gojwt.WithValidMethods([]string{HeaderAlgorithm}),
		gojwt.WithTimeFunc(s.now),
		gojwt.WithExpirationRequired(),
		gojwt.WithIssuedAt(),
	)
	if err != nil {
		return translateError(err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}

// translateError maps library errors onto the package's sentinel errors while
// keeping the original error in the chain.
func translateError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return errors.Join(ErrInvalidSignature, err)
	case errors.Is(err, gojwt.ErrTokenUnverifiable):
		return errors.Join(ErrUnexpectedSigningMethod, err)
	case errors.Is(err, gojwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, gojwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, gojwt.ErrTokenNotValidYet),
		errors.Is(err, gojwt.ErrTokenInvalidClaims):
		return errors.Join(ErrInvalidClaims, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
