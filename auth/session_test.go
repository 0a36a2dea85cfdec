package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/portfolio-api/auth"
)

func newTestIssuer(t *testing.T, accessTTL, refreshTTL time.Duration) (*auth.SessionIssuer, auth.TokenService) {
	t.Helper()
	service := auth.NewTokenService([]byte("test-signing-key"), "test-issuer", nil, nil)
	return auth.NewSessionIssuer(service, accessTTL, refreshTTL, nil), service
}

func TestSessionIssuer_IssuePair(t *testing.T) {
	identity := testIdentity{id: "user-1", email: "user@example.com", role: "user"}

	t.Run("mints both tokens from one snapshot", func(t *testing.T) {
		issuer, service := newTestIssuer(t, 30*time.Minute, 5*24*time.Hour)

		pair, err := issuer.IssuePair(identity)
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)

		accessClaims, err := service.Validate(pair.AccessToken)
		require.NoError(t, err)
		refreshClaims, err := service.Validate(pair.RefreshToken)
		require.NoError(t, err)

		// Shared issuing instant means the expiries differ by exactly the
		// TTL difference.
		assert.Equal(t, accessClaims.IssuedAt().Unix(), refreshClaims.IssuedAt().Unix())
		assert.Equal(t,
			(5*24*time.Hour - 30*time.Minute),
			refreshClaims.Expires().Sub(accessClaims.Expires()))

		assert.Equal(t, "user@example.com", accessClaims.Subject())
		assert.Equal(t, "user", accessClaims.Role())
		assert.Equal(t, "user@example.com", refreshClaims.Subject())
		assert.Equal(t, "user", refreshClaims.Role())
	})

	t.Run("applies default TTLs when none configured", func(t *testing.T) {
		issuer, service := newTestIssuer(t, 0, 0)

		pair, err := issuer.IssuePair(identity)
		require.NoError(t, err)

		accessClaims, err := service.Validate(pair.AccessToken)
		require.NoError(t, err)
		refreshClaims, err := service.Validate(pair.RefreshToken)
		require.NoError(t, err)

		assert.Equal(t,
			(5*24*time.Hour - 30*time.Minute),
			refreshClaims.Expires().Sub(accessClaims.Expires()))
	})
}

func TestSessionIssuer_Refresh(t *testing.T) {
	identity := testIdentity{id: "admin-1", email: "admin@example.com", role: "admin"}

	t.Run("mints a new access token carrying the role forward", func(t *testing.T) {
		issuer, service := newTestIssuer(t, 30*time.Minute, 5*24*time.Hour)

		refreshToken, err := issuer.IssueRefreshToken(identity)
		require.NoError(t, err)

		accessToken, err := issuer.Refresh(refreshToken)
		require.NoError(t, err)

		claims, err := service.Validate(accessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", claims.Subject())
		assert.Equal(t, "admin", claims.Role())
	})

	t.Run("expired refresh token fails like any expired token", func(t *testing.T) {
		issuer, service := newTestIssuer(t, 30*time.Minute, 5*24*time.Hour)

		expired, err := service.Generate(identity, time.Now().Add(-48*time.Hour), time.Hour)
		require.NoError(t, err)

		_, err = issuer.Refresh(expired)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("tampered refresh token is rejected", func(t *testing.T) {
		issuer, _ := newTestIssuer(t, 30*time.Minute, 5*24*time.Hour)

		refreshToken, err := issuer.IssueRefreshToken(identity)
		require.NoError(t, err)

		_, err = issuer.Refresh(refreshToken + "tampered")
		assert.Error(t, err)
	})

	t.Run("refresh token without a role is rejected", func(t *testing.T) {
		issuer, service := newTestIssuer(t, 30*time.Minute, 5*24*time.Hour)

		noRole := testIdentity{email: "user@example.com"}
		token, err := service.Generate(noRole, time.Now(), time.Hour)
		require.NoError(t, err)

		_, err = issuer.Refresh(token)
		assert.ErrorIs(t, err, auth.ErrMissingClaims)
	})
}
