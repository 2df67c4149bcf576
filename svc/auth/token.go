package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/bookshelf/pkg/jwt"
)

// DefaultTokenTTL is the lifetime of an identity token.
const DefaultTokenTTL = 2 * time.Hour

// tokenClaims is the signed token body: the identity payload nested under
// "data" plus the registered iat/exp claims.
type tokenClaims struct {
	Data Payload `json:"data"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies identity tokens.
//
// A single TTL drives both the embedded "exp" claim and the max-age check on
// verification, so the two can never disagree.
type TokenService struct {
	signer *jwt.Service
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithTokenTTL overrides the token lifetime. Non-positive values are ignored.
func WithTokenTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source for issuance and verification.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService creates a token service bound to the given signing secret.
func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	s := &TokenService{
		ttl: DefaultTokenTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	signer, err := jwt.NewFromString(secret, jwt.WithClock(s.now))
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	s.signer = signer

	return s, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the identity's username, email and id.
func (s *TokenService) Issue(identity *Identity) (string, error) {
	if identity == nil || identity.ID == "" {
		return "", errors.New("token service: identity without id")
	}

	issuedAt := s.now().Truncate(time.Second)
	claims := &tokenClaims{
		Data: PayloadOf(identity),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token, err := s.signer.Generate(claims)
	if err != nil {
		return "", fmt.Errorf("token service: %w", err)
	}
	return token, nil
}

// Verify checks the token signature and expiry and returns the embedded payload.
// Every failure, whatever the reason, is reported as ErrInvalidToken with the
// underlying cause attached for logging.
func (s *TokenService) Verify(token string) (*Payload, error) {
	var claims tokenClaims
	if err := s.signer.Parse(token, &claims); err != nil {
		return nil, invalidToken(err)
	}

	if claims.IssuedAt == nil {
		return nil, invalidToken(errors.New("missing iat claim"))
	}
	if !s.now().Before(claims.IssuedAt.Add(s.ttl)) {
		return nil, invalidToken(jwt.ErrExpiredToken)
	}
	if claims.Data.ID == "" {
		return nil, invalidToken(errors.New("missing identity id"))
	}

	payload := claims.Data
	return &payload, nil
}
