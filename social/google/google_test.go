package google_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/portfolio-api/social"
	"github.com/goliatone/portfolio-api/social/google"
)

func TestAuthCodeURL(t *testing.T) {
	provider := google.New(google.Config{
		ClientID:    "client-id",
		CallbackURL: "https://app.example.com/auth/callback",
	})

	raw := provider.AuthCodeURL("state-nonce")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "https://app.example.com/auth/callback", query.Get("redirect_uri"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "state-nonce", query.Get("state"))
	assert.Equal(t, "offline", query.Get("access_type"))
	assert.Equal(t, "consent", query.Get("prompt"))
	assert.Contains(t, query.Get("scope"), "email")
}

func TestExchange(t *testing.T) {
	t.Run("successful exchange", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
			assert.Equal(t, "the-code", r.Form.Get("code"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"access_token": "provider-access-token",
				"token_type": "Bearer",
				"expires_in": 3600,
				"refresh_token": "provider-refresh-token",
				"scope": "openid email profile",
				"id_token": "id-token"
			}`))
		}))
		defer ts.Close()

		provider := google.New(google.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			TokenURL:     ts.URL,
		})

		token, err := provider.Exchange(context.Background(), "the-code")
		require.NoError(t, err)

		assert.Equal(t, "provider-access-token", token.AccessToken)
		assert.Equal(t, "provider-refresh-token", token.RefreshToken)
		assert.Contains(t, token.Scopes, "email")
		assert.False(t, token.ExpiresAt.IsZero())
	})

	t.Run("provider error response", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid_grant", "error_description": "Bad authorization code"}`))
		}))
		defer ts.Close()

		provider := google.New(google.Config{TokenURL: ts.URL})

		_, err := provider.Exchange(context.Background(), "expired-code")
		require.Error(t, err)

		var providerErr *social.ProviderError
		require.ErrorAs(t, err, &providerErr)
		assert.Equal(t, "invalid_grant", providerErr.Code)
		assert.Equal(t, "exchange", providerErr.Operation)
	})

	t.Run("missing access token", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token_type": "Bearer"}`))
		}))
		defer ts.Close()

		provider := google.New(google.Config{TokenURL: ts.URL})

		_, err := provider.Exchange(context.Background(), "the-code")
		assert.Error(t, err)
	})
}

func TestUserInfo(t *testing.T) {
	t.Run("maps the profile", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer provider-access-token", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"sub": "1234567890",
				"email": "user@example.com",
				"email_verified": true,
				"name": "Test User",
				"picture": "https://example.com/avatar.png"
			}`))
		}))
		defer ts.Close()

		provider := google.New(google.Config{UserInfoURL: ts.URL})

		profile, err := provider.UserInfo(context.Background(), &social.Token{AccessToken: "provider-access-token"})
		require.NoError(t, err)

		assert.Equal(t, "1234567890", profile.ProviderUserID)
		assert.Equal(t, "google", profile.Provider)
		assert.Equal(t, "user@example.com", profile.Email)
		assert.True(t, profile.EmailVerified)
		assert.Equal(t, "Test User", profile.Name)
	})

	t.Run("unverified email passes through for the caller to reject", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"sub": "1", "email": "user@example.com", "email_verified": false}`))
		}))
		defer ts.Close()

		provider := google.New(google.Config{UserInfoURL: ts.URL})

		profile, err := provider.UserInfo(context.Background(), &social.Token{AccessToken: "tok"})
		require.NoError(t, err)
		assert.False(t, profile.EmailVerified)
	})

	t.Run("non-200 is a provider error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "invalid_token"}`))
		}))
		defer ts.Close()

		provider := google.New(google.Config{UserInfoURL: ts.URL})

		_, err := provider.UserInfo(context.Background(), &social.Token{AccessToken: "bad"})

		var providerErr *social.ProviderError
		require.ErrorAs(t, err, &providerErr)
		assert.Equal(t, "user_info", providerErr.Operation)
		assert.Equal(t, http.StatusUnauthorized, providerErr.Status)
	})
}
