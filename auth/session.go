package auth

import (
	"time"
)

// SessionIssuer mints access and refresh tokens for verified identities.
type SessionIssuer struct {
	tokenService    TokenService
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	logger          Logger
}

// NewSessionIssuer creates a SessionIssuer backed by the given token service.
func NewSessionIssuer(tokenService TokenService, accessTTL, refreshTTL time.Duration, logger Logger) *SessionIssuer {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 5 * 24 * time.Hour
	}
	if logger == nil {
		logger = defLogger{}
	}
	return &SessionIssuer{
		tokenService:    tokenService,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		logger:          logger,
	}
}

// IssueAccessToken mints a short-lived access token for the identity.
func (s *SessionIssuer) IssueAccessToken(identity Identity) (string, error) {
	return s.tokenService.Generate(identity, time.Now(), s.accessTokenTTL)
}

// IssueRefreshToken mints a long-lived refresh token for the identity.
func (s *SessionIssuer) IssueRefreshToken(identity Identity) (string, error) {
	return s.tokenService.Generate(identity, time.Now(), s.refreshTokenTTL)
}

// IssuePair mints both token classes from a single now snapshot so their
// expiries cannot skew against each other.
func (s *SessionIssuer) IssuePair(identity Identity) (TokenPair, error) {
	now := time.Now()

	access, err := s.tokenService.Generate(identity, now, s.accessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := s.tokenService.Generate(identity, now, s.refreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  now.Add(s.accessTokenTTL),
		RefreshExpiresAt: now.Add(s.refreshTokenTTL),
	}, nil
}

// Refresh validates a refresh token and mints a fresh access token carrying
// the refresh token's sub and role claims forward. Validation failures
// propagate unchanged so an expired refresh token fails exactly like any
// other expired token.
func (s *SessionIssuer) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokenService.Validate(refreshToken)
	if err != nil {
		return "", err
	}

	if claims.Subject() == "" || claims.Role() == "" {
		return "", ErrMissingClaims
	}

	identity := claimsIdentity{
		email: claims.Subject(),
		role:  claims.Role(),
	}

	return s.tokenService.Generate(identity, time.Now(), s.accessTokenTTL)
}

// claimsIdentity adapts a decoded claim set back into an Identity so the
// refresh flow can re-issue through the same minting path.
type claimsIdentity struct {
	email string
	role  string
}

func (c claimsIdentity) ID() string    { return c.email }
func (c claimsIdentity) Email() string { return c.email }
func (c claimsIdentity) Role() string  { return c.role }

var _ Identity = claimsIdentity{}
