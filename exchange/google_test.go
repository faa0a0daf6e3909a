package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type testOAuthConfig struct{ strict bool }

func (c testOAuthConfig) GetClientID() string { return "test-client-id" }
func (c testOAuthConfig) GetClientSecret() string { return "test-secret" }
func (c testOAuthConfig) GetScopes() []string { return []string{"scope-a"} }
func (c testOAuthConfig) GetSessionTTL() time.Duration { return 30 * time.Minute }
func (c testOAuthConfig) GetStrictIDTokenVerification() bool { return c.strict }

type failingLimiter struct{}

func (failingLimiter) Wait(ctx context.Context) error {
	return errors.New("limiter saturated")
}

func TestIdentityClaims(t *testing.T) {
	t.Run("extracts email and subject", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"email": "user@example.com",
			"sub":   "subject-123",
		})
		raw, err := token.SignedString([]byte("test-key"))
		require.NoError(t, err)

		email, subject, err := identityClaims(raw)
		require.NoError(t, err)
		require.Equal(t, "user@example.com", email)
		require.Equal(t, "subject-123", subject)
	})

	t.Run("tolerates missing claims", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{})
		raw, err := token.SignedString([]byte("test-key"))
		require.NoError(t, err)

		email, subject, err := identityClaims(raw)
		require.NoError(t, err)
		require.Empty(t, email)
		require.Empty(t, subject)
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		_, _, err := identityClaims("not-a-jwt")
		require.Error(t, err)
	})
}

func TestGoogleExchanger_Exchange(t *testing.T) {
	t.Run("limiter failure is surfaced before the network call", func(t *testing.T) {
		g := NewGoogleExchanger(testOAuthConfig{}, failingLimiter{})
		_, err := g.Exchange(context.Background(), "code", "http://localhost:8080/oauth-callback")
		require.Error(t, err)
		require.Contains(t, err.Error(), "limiter saturated")
	})
}

func TestNewGoogleExchanger(t *testing.T) {
	t.Run("verifier disabled by default", func(t *testing.T) {
		g := NewGoogleExchanger(testOAuthConfig{}, nil)
		require.Nil(t, g.verifier)
	})

	t.Run("strict mode builds a verifier", func(t *testing.T) {
		g := NewGoogleExchanger(testOAuthConfig{strict: true}, nil)
		require.NotNil(t, g.verifier)
	})
}
