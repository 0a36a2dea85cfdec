package jwtware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/portfolio-api/auth"
)

// ErrJWTMissingOrMalformed is returned when no bearer token can be extracted
// from the request.
var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

const (
	defaultContextKey = "principal"
	defaultAuthScheme = "Bearer"
)

// Authenticator mirrors auth.Authenticator's token side without importing a
// concrete implementation.
type Authenticator interface {
	Authenticate(token string) (auth.Principal, error)
}

type Config struct {
	// Filter defines a function to skip the middleware.
	Filter func(*fiber.Ctx) bool

	// Authenticator validates the bearer token. Required.
	Authenticator Authenticator

	// ErrorHandler runs when extraction, authentication, or authorization
	// fails. Defaults to JSON 401/403 responses.
	ErrorHandler fiber.ErrorHandler

	// ContextKey is where the authenticated Principal is stored in Locals.
	ContextKey string

	// AuthScheme expected in the Authorization header. Defaults to "Bearer".
	AuthScheme string

	// RequiredRole, when set, runs the role gate after authentication.
	RequiredRole string

	// OwnerParam, when set with RequiredRole, names a route parameter holding
	// a resource owner email; the gate then passes for the owner even without
	// the required role.
	OwnerParam string
}

func configDefault(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = defaultContextKey
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = defaultAuthScheme
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return cfg
}

// New returns a middleware that authenticates the bearer token and, when
// configured, authorizes the principal's role before the handler runs. The
// principal is stored under ContextKey so handlers receive it explicitly via
// PrincipalFromCtx, never by re-decoding the token.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := TokenFromHeader(c, cfg.AuthScheme)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		principal, err := cfg.Authenticator.Authenticate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		if cfg.RequiredRole != "" {
			if err := authorize(c, principal, cfg); err != nil {
				return cfg.ErrorHandler(c, err)
			}
		}

		c.Locals(cfg.ContextKey, principal)

		return c.Next()
	}
}

func authorize(c *fiber.Ctx, principal auth.Principal, cfg Config) error {
	if cfg.OwnerParam != "" {
		return auth.AuthorizeSelfOrRole(principal, cfg.RequiredRole, c.Params(cfg.OwnerParam))
	}
	return auth.Authorize(principal, cfg.RequiredRole)
}

// TokenFromHeader extracts the raw token from the Authorization header.
func TokenFromHeader(c *fiber.Ctx, authScheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrJWTMissingOrMalformed
	}

	if authScheme == "" {
		return header, nil
	}

	prefix := authScheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrJWTMissingOrMalformed
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrJWTMissingOrMalformed
	}

	return token, nil
}

// PrincipalFromCtx retrieves the authenticated principal stored by the
// middleware under the default context key.
func PrincipalFromCtx(c *fiber.Ctx) (auth.Principal, bool) {
	return PrincipalFromCtxKey(c, defaultContextKey)
}

// PrincipalFromCtxKey retrieves the principal stored under a custom key.
func PrincipalFromCtxKey(c *fiber.Ctx, key string) (auth.Principal, bool) {
	principal, ok := c.Locals(key).(auth.Principal)
	return principal, ok
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	if auth.IsForbiddenError(err) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"detail": "Permission denied",
		})
	}

	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": "Could not validate credentials",
	})
}
