package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookshelf/pkg/jwt"
)

const testSecret = "test-secret-32-chars-long-123456"

var issuedAt = time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)

// clock is a mutable test clock.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTokens(t *testing.T, c *clock, opts ...TokenOption) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, append([]TokenOption{WithClock(c.Now)}, opts...)...)
	require.NoError(t, err)
	return svc
}

func testIdentity() *Identity {
	return &Identity{ID: "665f1b2c9d3e4a0012345678", Username: "reader", Email: "reader@example.com"}
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	t.Run("requires secret", func(t *testing.T) {
		svc, err := NewTokenService("")
		require.ErrorIs(t, err, jwt.ErrMissingSigningKey)
		assert.Nil(t, svc)
	})

	t.Run("default ttl is two hours", func(t *testing.T) {
		svc, err := NewTokenService(testSecret)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, svc.TTL())
	})

	t.Run("ttl option", func(t *testing.T) {
		svc, err := NewTokenService(testSecret, WithTokenTTL(15*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, svc.TTL())
	})

	t.Run("non-positive ttl ignored", func(t *testing.T) {
		svc, err := NewTokenService(testSecret, WithTokenTTL(0))
		require.NoError(t, err)
		assert.Equal(t, DefaultTokenTTL, svc.TTL())
	})
}

func TestTokenService_IssueVerify(t *testing.T) {
	t.Parallel()

	c := &clock{t: issuedAt}
	svc := newTestTokens(t, c)
	identity := testIdentity()

	token, err := svc.Issue(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	for _, offset := range []time.Duration{0, time.Minute, time.Hour, 2*time.Hour - time.Second} {
		c := &clock{t: issuedAt.Add(offset)}
		verifier := newTestTokens(t, c)

		payload, err := verifier.Verify(token)
		require.NoError(t, err, "offset %s", offset)
		assert.Equal(t, Payload{Username: "reader", Email: "reader@example.com", ID: identity.ID}, *payload)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	t.Parallel()

	c := &clock{t: issuedAt}
	svc := newTestTokens(t, c)

	token, err := svc.Issue(testIdentity())
	require.NoError(t, err)

	t.Run("exactly at expiry", func(t *testing.T) {
		verifier := newTestTokens(t, &clock{t: issuedAt.Add(2 * time.Hour)})
		payload, err := verifier.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, payload)
	})

	t.Run("after expiry", func(t *testing.T) {
		verifier := newTestTokens(t, &clock{t: issuedAt.Add(3 * time.Hour)})
		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("sub-second issuance truncated", func(t *testing.T) {
		issuer := newTestTokens(t, &clock{t: issuedAt.Add(900 * time.Millisecond)})
		token, err := issuer.Issue(testIdentity())
		require.NoError(t, err)

		verifier := newTestTokens(t, &clock{t: issuedAt.Add(2 * time.Hour)})
		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenService_MaxAgeMatchesExpiry(t *testing.T) {
	t.Parallel()

	// A token minted by a longer-lived issuer is still bounded by the
	// verifier's configured lifetime.
	issuer := newTestTokens(t, &clock{t: issuedAt}, WithTokenTTL(24*time.Hour))
	token, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	verifier := newTestTokens(t, &clock{t: issuedAt.Add(2 * time.Hour)})
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	verifier = newTestTokens(t, &clock{t: issuedAt.Add(2*time.Hour - time.Second)})
	_, err = verifier.Verify(token)
	require.NoError(t, err)
}

func TestTokenService_Invalid(t *testing.T) {
	t.Parallel()

	c := &clock{t: issuedAt}
	svc := newTestTokens(t, c)

	token, err := svc.Issue(testIdentity())
	require.NoError(t, err)

	other, err := NewTokenService("another-secret", WithClock(c.Now))
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *TokenService
		token string
	}{
		{name: "empty", svc: svc, token: ""},
		{name: "garbage", svc: svc, token: "garbage"},
		{name: "three garbage segments", svc: svc, token: "a.b.c"},
		{name: "truncated", svc: svc, token: token[:len(token)-4]},
		{name: "different secret", svc: other, token: token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := tt.svc.Verify(tt.token)
			require.Error(t, err)
			assert.Nil(t, payload)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Equal(t, KindInvalidToken, KindOf(err))
			assert.NotNil(t, errors.Unwrap(err), "cause should be kept for logging")
		})
	}
}

func TestTokenService_IssueRequiresID(t *testing.T) {
	t.Parallel()

	svc := newTestTokens(t, &clock{t: issuedAt})

	_, err := svc.Issue(nil)
	require.Error(t, err)

	_, err = svc.Issue(&Identity{Username: "x", Email: "x@example.com"})
	require.Error(t, err)
}

func TestTokenService_TokenWithoutIdentityRejected(t *testing.T) {
	t.Parallel()

	signer, err := jwt.NewFromString(testSecret, jwt.WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)

	token, err := signer.Generate(&tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	})
	require.NoError(t, err)

	svc := newTestTokens(t, &clock{t: issuedAt})
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
