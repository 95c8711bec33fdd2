package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"sportshop/internal/apperror"
	"sportshop/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_jwt_secret"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	svc, err := auth.NewTokenService("")
	assert.Nil(t, svc)
	assert.True(t, errors.Is(err, apperror.ErrConfig))
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	clock := newClock()
	svc, err := auth.NewTokenService(testJWTSecret, auth.WithClock(clock.Now))
	require.NoError(t, err)

	token, err := svc.Issue("user-123", "test@example.com", true, time.Hour)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.True(t, claims.IssuedAt.Time.Equal(clock.Now()))
	assert.True(t, claims.ExpiresAt.Time.Equal(clock.Now().Add(time.Hour)))
}

func TestTokenService_DefaultTTL(t *testing.T) {
	clock := newClock()
	svc, err := auth.NewTokenService(testJWTSecret, auth.WithClock(clock.Now))
	require.NoError(t, err)

	token, err := svc.Issue("user-123", "test@example.com", false, 0)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Equal(clock.Now().Add(auth.DefaultTokenTTL)))

	clock.Advance(auth.DefaultTokenTTL - time.Minute)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, auth.ErrExpired))
}

func TestTokenService_ConfiguredTTL(t *testing.T) {
	clock := newClock()
	svc, err := auth.NewTokenService(testJWTSecret, auth.WithClock(clock.Now), auth.WithTTL(30*time.Minute))
	require.NoError(t, err)

	token, err := svc.Issue("user-123", "test@example.com", false, 0)
	require.NoError(t, err)

	clock.Advance(31 * time.Minute)
	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, auth.ErrExpired))
}

func TestTokenService_Expired(t *testing.T) {
	clock := newClock()
	svc, err := auth.NewTokenService(testJWTSecret, auth.WithClock(clock.Now))
	require.NoError(t, err)

	token, err := svc.Issue("user-123", "test@example.com", false, time.Hour)
	require.NoError(t, err)

	clock.Advance(time.Hour + time.Second)
	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, auth.ErrExpired))
	assert.False(t, errors.Is(err, auth.ErrInvalidSignature))
}

func TestTokenService_InvalidSignature(t *testing.T) {
	issuer, err := auth.NewTokenService("another_secret")
	require.NoError(t, err)
	verifier, err := auth.NewTokenService(testJWTSecret)
	require.NoError(t, err)

	token, err := issuer.Issue("user-123", "test@example.com", false, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.True(t, errors.Is(err, auth.ErrInvalidSignature))
}

func TestTokenService_TamperedPayload(t *testing.T) {
	svc, err := auth.NewTokenService(testJWTSecret)
	require.NoError(t, err)

	token, err := svc.Issue("user-123", "test@example.com", false, time.Hour)
	require.NoError(t, err)
	forged, err := svc.Issue("admin-1", "admin@example.com", true, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = svc.Verify(tampered)
	assert.True(t, errors.Is(err, auth.ErrInvalidSignature))
}

func TestTokenService_Malformed(t *testing.T) {
	svc, err := auth.NewTokenService(testJWTSecret)
	require.NoError(t, err)

	for _, raw := range []string{"", "invalid.token.string", "abc", "a.b"} {
		_, err = svc.Verify(raw)
		assert.True(t, errors.Is(err, auth.ErrMalformed), "token %q: %v", raw, err)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc, err := auth.NewTokenService(testJWTSecret)
	require.NoError(t, err)

	claims := auth.Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrInvalidSignature))
}

func TestTokenService_RequiresExpiry(t *testing.T) {
	svc, err := auth.NewTokenService(testJWTSecret)
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{UserID: "user-123"}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}
