package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ProviderCredentials holds the OAuth client credentials for one provider
type ProviderCredentials struct {
	ClientID     string
	ClientSecret string
}

// Configured reports whether credentials have been supplied for this provider
func (p ProviderCredentials) Configured() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// Config holds the link server configuration
type Config struct {
	Port        int    `validate:"gte=1,lte=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string
	ServiceName string
	Version     string

	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required"`
	DBName     string `validate:"required"`

	// APIKey protects the internal API routes; browser-facing endpoints
	// stay public.
	APIKey string `validate:"required"`

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honored.
	TrustedProxies []string

	// RedisAddr is optional; when empty the state token store falls back to
	// the in-process implementation.
	RedisAddr string

	// PublicBaseURL is the externally reachable base of this server; the
	// OAuth redirect URI is derived from it.
	PublicBaseURL string `validate:"required,url"`

	TelegramToken string `validate:"required"`

	StateTokenTTL time.Duration `validate:"gt=0"`

	Twitter ProviderCredentials
	Google  ProviderCredentials
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "feedlink"),
		Version:     getEnv("VERSION", "dev"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "feedlink"),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitAndTrim(getEnv("TRUSTED_PROXIES", "")),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		Twitter: ProviderCredentials{
			ClientID:     getEnv("TWITTER_CLIENT_ID", ""),
			ClientSecret: getEnv("TWITTER_CLIENT_SECRET", ""),
		},
		Google: ProviderCredentials{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	ttlStr := getEnv("STATE_TOKEN_TTL", "5m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STATE_TOKEN_TTL value: %w", err)
	}
	cfg.StateTokenTTL = ttl

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitAndTrim splits a comma separated list, dropping empty entries
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// RedirectURI returns the OAuth callback URI registered with providers
func (c *Config) RedirectURI() string {
	return c.PublicBaseURL + "/callback"
}
