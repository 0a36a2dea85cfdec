package config

import (
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration, constructed once at startup and
// passed by reference into every collaborator. There is no ambient global
// state: components that need options receive this struct.
type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	DB     DatabaseConfig
	Google GoogleConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Host string
	Port string
}

// AuthConfig holds token signing options.
type AuthConfig struct {
	SigningKey      string
	SigningMethod   string
	Issuer          string
	Audience        []string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// DatabaseConfig holds store options.
type DatabaseConfig struct {
	DSN string
}

// GoogleConfig holds the OAuth client options.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
	File  string
}

// Load reads configuration from the environment. A .env file is honored when
// present. SECRET_KEY is required: the process must not start with a
// hardcoded default secret.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8000")
	v.SetDefault("SIGNING_ALGORITHM", "HS256")
	v.SetDefault("TOKEN_ISSUER", "portfolio-api")
	v.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 30)
	v.SetDefault("REFRESH_TOKEN_TTL_DAYS", 5)
	v.SetDefault("DATABASE_URL", "file:portfolio.db?cache=shared&mode=rwc")
	v.SetDefault("LOG_LEVEL", "info")

	secret := v.GetString("SECRET_KEY")
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("SECRET_KEY must be set", errors.CategoryValidation).
			WithTextCode("MISSING_SECRET_KEY")
	}

	if alg := v.GetString("SIGNING_ALGORITHM"); alg != "HS256" {
		return nil, errors.New("only the HS256 signing algorithm is supported", errors.CategoryValidation).
			WithMetadata(map[string]any{"algorithm": alg})
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("HOST"),
			Port: v.GetString("PORT"),
		},
		Auth: AuthConfig{
			SigningKey:      secret,
			SigningMethod:   v.GetString("SIGNING_ALGORITHM"),
			Issuer:          v.GetString("TOKEN_ISSUER"),
			Audience:        splitList(v.GetString("TOKEN_AUDIENCE")),
			AccessTokenTTL:  time.Duration(v.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute,
			RefreshTokenTTL: time.Duration(v.GetInt("REFRESH_TOKEN_TTL_DAYS")) * 24 * time.Hour,
		},
		DB: DatabaseConfig{
			DSN: v.GetString("DATABASE_URL"),
		},
		Google: GoogleConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURI:  v.GetString("GOOGLE_REDIRECT_URI"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
	}

	return cfg, nil
}

// auth.Config implementation

func (c *Config) GetSigningKey() string {
	return c.Auth.SigningKey
}

func (c *Config) GetSigningMethod() string {
	return c.Auth.SigningMethod
}

func (c *Config) GetIssuer() string {
	return c.Auth.Issuer
}

func (c *Config) GetAudience() []string {
	return c.Auth.Audience
}

func (c *Config) GetAccessTokenTTL() time.Duration {
	return c.Auth.AccessTokenTTL
}

func (c *Config) GetRefreshTokenTTL() time.Duration {
	return c.Auth.RefreshTokenTTL
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
