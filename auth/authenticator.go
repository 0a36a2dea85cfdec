package auth

import (
	"context"
	"reflect"

	"github.com/golang-jwt/jwt/v5"
)

// Auther is the concrete Authenticator: it verifies credentials through an
// IdentityProvider, mints token pairs through a SessionIssuer, and turns
// bearer tokens back into principals.
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	issuer       *SessionIssuer
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetIssuer(),
		jwt.ClaimStrings(opts.GetAudience()),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		issuer: NewSessionIssuer(
			tokenService,
			opts.GetAccessTokenTTL(),
			opts.GetRefreshTokenTTL(),
			defLogger{},
		),
		logger: defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the identifier/password pair against the identity provider
// and mints an access/refresh pair for the verified identity.
func (s *Auther) Login(ctx context.Context, identifier, password string) (TokenPair, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error: %v", err)
		return TokenPair{}, err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return TokenPair{}, ErrIdentityNotFound
	}

	return s.issuer.IssuePair(identity)
}

// IssuePair mints a token pair for an already verified identity, e.g. after
// OAuth provisioning.
func (s *Auther) IssuePair(identity Identity) (TokenPair, error) {
	return s.issuer.IssuePair(identity)
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *Auther) Refresh(refreshToken string) (string, error) {
	return s.issuer.Refresh(refreshToken)
}

// Authenticate decodes and validates a bearer token, producing the principal
// it encodes. Every codec failure collapses into ErrInvalidCredentials at
// this boundary; the underlying cause is logged but never surfaced, so
// callers cannot distinguish expired from tampered from malformed.
func (s *Auther) Authenticate(token string) (Principal, error) {
	claims, err := s.tokenService.Validate(token)
	if err != nil {
		s.logger.Debug("Authenticate token validation failed: %v", err)
		return Principal{}, ErrInvalidCredentials
	}

	if claims.Subject() == "" || claims.Role() == "" {
		s.logger.Debug("Authenticate token missing sub or role claim")
		return Principal{}, ErrInvalidCredentials
	}

	return Principal{
		Email: claims.Subject(),
		Role:  claims.Role(),
	}, nil
}

var _ Authenticator = (*Auther)(nil)
