package server

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/social"
	"github.com/goliatone/portfolio-api/store"
)

const (
	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// LoginRequest is the password grant payload.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshRequest carries the refresh token to trade for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// TokenResponse is the bearer token envelope returned by login and callback.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Login handles POST /auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	payload := LoginRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return renderError(c, errors.Wrap(err, errors.CategoryBadInput, "invalid login payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return renderValidationError(c, err)
	}

	pair, err := s.auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		s.log().Debug("login rejected for %s: %v", payload.Email, err)
		return renderError(c, err)
	}

	return c.JSON(TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

// RefreshToken handles POST /auth/refresh.
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	payload := RefreshRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return renderError(c, errors.Wrap(err, errors.CategoryBadInput, "invalid refresh payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return renderValidationError(c, err)
	}

	accessToken, err := s.auther.Refresh(payload.RefreshToken)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// GoogleLogin handles GET /auth/login/google by redirecting to the consent
// screen with a fresh state nonce bound to a cookie.
func (s *Server) GoogleLogin(c *fiber.Ctx) error {
	if s.provider == nil {
		return fiber.NewError(fiber.StatusNotFound, "social login not configured")
	}

	state := newStateNonce()

	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Expires:  time.Now().Add(stateCookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(s.provider.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /auth/callback: verify state, exchange the code,
// fetch the profile, provision the account if needed, and mint a token pair.
func (s *Server) GoogleCallback(c *fiber.Ctx) error {
	if s.provider == nil {
		return fiber.NewError(fiber.StatusNotFound, "social login not configured")
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookieName) {
		return renderError(c, social.ErrInvalidState)
	}

	c.ClearCookie(stateCookieName)

	code := c.Query("code")
	if code == "" {
		return renderError(c, errors.New("missing authorization code", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest))
	}

	ctx := c.UserContext()

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.log().Warn("%s code exchange failed: %v", s.provider.Name(), err)
		return renderError(c, social.ErrTokenExchangeFailed)
	}

	profile, err := s.provider.UserInfo(ctx, token)
	if err != nil {
		s.log().Warn("%s userinfo fetch failed: %v", s.provider.Name(), err)
		return renderError(c, social.ErrUserInfoFailed)
	}

	if !profile.EmailVerified {
		return renderError(c, social.ErrEmailNotVerified)
	}

	user, err := s.repo.Users().GetOrCreate(ctx, &store.User{
		Email:        profile.Email,
		PasswordHash: auth.OAuthPasswordSentinel,
		Role:         auth.RoleUser,
	})
	if err != nil {
		return renderError(c, err)
	}

	pair, err := s.auther.IssuePair(userIdentity{user})
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

func (s *Server) log() auth.Logger {
	if s.logger != nil {
		return s.logger
	}
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// userIdentity adapts a stored user to the identity contract the token
// issuer expects.
type userIdentity struct {
	user *store.User
}

func (u userIdentity) ID() string    { return u.user.ID.String() }
func (u userIdentity) Email() string { return u.user.Email }
func (u userIdentity) Role() string  { return u.user.Role }
