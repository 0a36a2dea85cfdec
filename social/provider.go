package social

import (
	"context"
	"fmt"
	"time"
)

// SocialProvider defines the interface for OAuth2 social login providers.
// The auth core treats it as an opaque identity assertion source.
type SocialProvider interface {
	// Name returns the provider identifier (e.g., "google").
	Name() string

	// AuthCodeURL returns the URL to redirect users for authorization.
	// The state parameter should be included for CSRF protection.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for an access token.
	Exchange(ctx context.Context, code string) (*Token, error)

	// UserInfo fetches the user's profile using the access token.
	UserInfo(ctx context.Context, token *Token) (*SocialProfile, error)
}

// Token represents an OAuth2 token response.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	ExpiresAt    time.Time
	Scopes       []string
	Raw          map[string]any
}

// SocialProfile is the normalized identity assertion a provider returns.
type SocialProfile struct {
	ProviderUserID string
	Provider       string
	Email          string
	EmailVerified  bool
	Name           string
	AvatarURL      string
	Raw            map[string]any
}

// ProviderError captures a provider-side failure with enough context to log
// without leaking it to the caller.
type ProviderError struct {
	Provider    string
	Operation   string
	Status      int
	Code        string
	Description string
	Err         error
	Raw         map[string]any
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s failed: %s (%s)", e.Provider, e.Operation, e.Description, e.Code)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Provider, e.Operation, e.Description)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
