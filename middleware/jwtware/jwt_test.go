package jwtware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/middleware/jwtware"
)

// stubAuthenticator maps raw tokens to principals.
type stubAuthenticator struct {
	principals map[string]auth.Principal
}

func (s *stubAuthenticator) Authenticate(token string) (auth.Principal, error) {
	if principal, ok := s.principals[token]; ok {
		return principal, nil
	}
	return auth.Principal{}, auth.ErrInvalidCredentials
}

func newTestApp(cfg jwtware.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", jwtware.New(cfg), func(c *fiber.Ctx) error {
		principal, _ := jwtware.PrincipalFromCtx(c)
		return c.JSON(principal)
	})
	return app
}

func newStub() *stubAuthenticator {
	return &stubAuthenticator{principals: map[string]auth.Principal{
		"user-token":  {Email: "user@example.com", Role: "user"},
		"admin-token": {Email: "admin@example.com", Role: "admin"},
	}}
}

func doRequest(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestMiddleware_Authentication(t *testing.T) {
	app := newTestApp(jwtware.Config{Authenticator: newStub()})

	t.Run("valid bearer token passes", func(t *testing.T) {
		res := doRequest(t, app, "Bearer user-token")
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("scheme prefix is case-insensitive", func(t *testing.T) {
		res := doRequest(t, app, "bearer user-token")
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		res := doRequest(t, app, "")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "Bearer", res.Header.Get(fiber.HeaderWWWAuthenticate))
	})

	t.Run("wrong scheme is unauthorized", func(t *testing.T) {
		res := doRequest(t, app, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("unknown token is unauthorized", func(t *testing.T) {
		res := doRequest(t, app, "Bearer bogus-token")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("empty token after scheme is unauthorized", func(t *testing.T) {
		res := doRequest(t, app, "Bearer ")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}

func TestMiddleware_RoleGate(t *testing.T) {
	app := newTestApp(jwtware.Config{
		Authenticator: newStub(),
		RequiredRole:  auth.RoleAdmin,
	})

	t.Run("matching role passes", func(t *testing.T) {
		res := doRequest(t, app, "Bearer admin-token")
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("insufficient role is forbidden, not unauthorized", func(t *testing.T) {
		res := doRequest(t, app, "Bearer user-token")
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
		assert.Empty(t, res.Header.Get(fiber.HeaderWWWAuthenticate))
	})

	t.Run("authentication still precedes authorization", func(t *testing.T) {
		res := doRequest(t, app, "Bearer bogus-token")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}

func TestMiddleware_OwnerParam(t *testing.T) {
	app := fiber.New()
	app.Get("/users/:email", jwtware.New(jwtware.Config{
		Authenticator: newStub(),
		RequiredRole:  auth.RoleAdmin,
		OwnerParam:    "email",
	}), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	request := func(target, token string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		res, err := app.Test(req)
		require.NoError(t, err)
		return res
	}

	t.Run("owner passes without the role", func(t *testing.T) {
		res := request("/users/user@example.com", "user-token")
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("admin passes for any owner", func(t *testing.T) {
		res := request("/users/other@example.com", "admin-token")
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("non-owner without role is forbidden", func(t *testing.T) {
		res := request("/users/other@example.com", "user-token")
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})
}

func TestMiddleware_Filter(t *testing.T) {
	app := newTestApp(jwtware.Config{
		Authenticator: newStub(),
		Filter: func(c *fiber.Ctx) bool {
			return c.Query("skip") == "true"
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/protected?skip=true", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
