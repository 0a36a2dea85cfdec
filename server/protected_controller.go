package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/middleware/jwtware"
)

// Dashboard handles GET /protected/dashboard. Any authenticated principal
// may enter regardless of role.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	principal, ok := jwtware.PrincipalFromCtx(c)
	if !ok {
		return renderError(c, auth.ErrInvalidCredentials)
	}

	return c.JSON(fiber.Map{
		"message": "Welcome to your dashboard",
		"user":    principal.Email,
	})
}

// Profile handles GET /protected/profile, echoing the token-derived identity.
func (s *Server) Profile(c *fiber.Ctx) error {
	principal, ok := jwtware.PrincipalFromCtx(c)
	if !ok {
		return renderError(c, auth.ErrInvalidCredentials)
	}

	return c.JSON(principal)
}
