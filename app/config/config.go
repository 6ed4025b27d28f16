package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the session service
type Config struct {
	// Server
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`

	// Database
	DatabaseURL      string `yaml:"database_url"`
	DatabaseHost     string `yaml:"db_host"`
	DatabasePort     string `yaml:"db_port"`
	DatabaseName     string `yaml:"db_name"`
	DatabaseUser     string `yaml:"db_user"`
	DatabasePassword string `yaml:"db_password"`
	DatabaseSSLMode  string `yaml:"db_ssl_mode"`

	// Redis session record store
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Credential tokens
	JWTSecret   string        `yaml:"jwt_secret"`
	JWTIssuer   string        `yaml:"jwt_issuer"`
	JWTAudience string        `yaml:"jwt_audience"`
	SessionTTL  time.Duration `yaml:"-"`
	RefreshTTL  time.Duration `yaml:"-"`

	// OAuth providers
	Providers []ProviderConfig `yaml:"providers"`

	// Cookies
	CookieSecure bool `yaml:"-"`

	// Background work
	TokenCleanupInterval time.Duration `yaml:"-"`

	// Features
	EnableDebug   bool `yaml:"enable_debug"`
	EnableMetrics bool `yaml:"-"`

	// These default to true, so the overlay has to distinguish "set to
	// false" from "absent"; the pointer fields on fileOverlay record
	// presence here.
	cookieSecureSet  bool
	enableMetricsSet bool
}

// ProviderConfig describes one external OAuth provider.
type ProviderConfig struct {
	Name         string   `yaml:"name"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURL  string   `yaml:"redirect_url"`
	AuthURL      string   `yaml:"auth_url"`
	TokenURL     string   `yaml:"token_url"`
	UserInfoURL  string   `yaml:"userinfo_url"`
	Scopes       []string `yaml:"scopes"`
}

// Load reads configuration from the environment, with an optional YAML
// overlay named by CONFIG_FILE applied first. A local .env file is
// honored when present.
func Load() (*Config, error) {
	// absence of a .env file is the normal production case
	_ = godotenv.Load()

	config := &Config{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", defaultString(config.Port, "9500"))
	config.Host = getEnvOrDefault("HOST", defaultString(config.Host, "0.0.0.0"))
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", defaultString(config.LogLevel, "info"))

	// Database configuration
	config.DatabaseURL = getEnvOrDefault("DATABASE_URL", config.DatabaseURL)
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	config.DatabaseHost = getEnvOrDefault("DB_HOST", defaultString(config.DatabaseHost, "session-postgres"))
	config.DatabasePort = getEnvOrDefault("DB_PORT", defaultString(config.DatabasePort, "5432"))
	config.DatabaseName = getEnvOrDefault("DB_NAME", defaultString(config.DatabaseName, "session_db"))
	config.DatabaseUser = getEnvOrDefault("DB_USER", defaultString(config.DatabaseUser, "session_user"))
	config.DatabasePassword = getEnvOrDefault("DB_PASSWORD", config.DatabasePassword)
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", defaultString(config.DatabaseSSLMode, "require"))

	// Redis configuration
	config.RedisAddr = getEnvOrDefault("REDIS_ADDR", defaultString(config.RedisAddr, "session-redis:6379"))
	config.RedisPassword = getEnvOrDefault("REDIS_PASSWORD", config.RedisPassword)
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		config.RedisDB = db
	}

	// Token configuration
	config.JWTSecret = getEnvOrDefault("JWT_SECRET", config.JWTSecret)
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	config.JWTIssuer = getEnvOrDefault("JWT_ISSUER", defaultString(config.JWTIssuer, "session-service"))
	config.JWTAudience = getEnvOrDefault("JWT_AUDIENCE", defaultString(config.JWTAudience, "vyomtech"))

	var err error
	if config.SessionTTL, err = durationEnv("SESSION_TTL", config.SessionTTL, 24*time.Hour); err != nil {
		return nil, err
	}
	if config.RefreshTTL, err = durationEnv("REFRESH_TTL", config.RefreshTTL, 30*24*time.Hour); err != nil {
		return nil, err
	}
	if config.TokenCleanupInterval, err = durationEnv("TOKEN_CLEANUP_INTERVAL", config.TokenCleanupInterval, time.Hour); err != nil {
		return nil, err
	}

	if !config.cookieSecureSet {
		config.CookieSecure = true
	}
	config.CookieSecure = getBoolEnv("COOKIE_SECURE", config.CookieSecure)

	// Feature flags
	config.EnableDebug = getBoolEnv("ENABLE_DEBUG", config.EnableDebug)
	if !config.enableMetricsSet {
		config.EnableMetrics = true
	}
	config.EnableMetrics = getBoolEnv("ENABLE_METRICS", config.EnableMetrics)

	// Providers configured through env come in as a fixed trio; the
	// YAML overlay can name arbitrary providers.
	config.Providers = append(config.Providers, providersFromEnv()...)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// fileOverlay mirrors Config for the YAML file, with durations as
// strings since yaml.v3 has no native duration decoding.
type fileOverlay struct {
	Config           `yaml:",inline"`
	SessionTTLRaw    string `yaml:"session_ttl"`
	RefreshTTLRaw    string `yaml:"refresh_ttl"`
	TokenCleanupRaw  string `yaml:"token_cleanup_interval"`
	CookieSecureRaw  *bool  `yaml:"cookie_secure"`
	EnableMetricsRaw *bool  `yaml:"enable_metrics"`
}

// loadFile applies a YAML overlay
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}

	parsed := overlay.Config
	if overlay.SessionTTLRaw != "" {
		if parsed.SessionTTL, err = time.ParseDuration(overlay.SessionTTLRaw); err != nil {
			return fmt.Errorf("invalid session_ttl: %w", err)
		}
	}
	if overlay.RefreshTTLRaw != "" {
		if parsed.RefreshTTL, err = time.ParseDuration(overlay.RefreshTTLRaw); err != nil {
			return fmt.Errorf("invalid refresh_ttl: %w", err)
		}
	}
	if overlay.TokenCleanupRaw != "" {
		if parsed.TokenCleanupInterval, err = time.ParseDuration(overlay.TokenCleanupRaw); err != nil {
			return fmt.Errorf("invalid token_cleanup_interval: %w", err)
		}
	}
	if overlay.CookieSecureRaw != nil {
		parsed.CookieSecure = *overlay.CookieSecureRaw
		parsed.cookieSecureSet = true
	}
	if overlay.EnableMetricsRaw != nil {
		parsed.EnableMetrics = *overlay.EnableMetricsRaw
		parsed.enableMetricsSet = true
	}

	*c = parsed
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 bytes, got: %d", len(c.JWTSecret))
	}

	if c.SessionTTL < time.Minute {
		return fmt.Errorf("session TTL must be at least 1 minute, got: %v", c.SessionTTL)
	}
	if c.RefreshTTL < c.SessionTTL {
		return fmt.Errorf("refresh TTL (%v) must outlive the session TTL (%v)", c.RefreshTTL, c.SessionTTL)
	}

	for _, p := range c.Providers {
		if p.Name == "" || p.ClientID == "" || p.ClientSecret == "" {
			return fmt.Errorf("provider config incomplete: %q", p.Name)
		}
	}

	return nil
}

// providersFromEnv builds provider configs for the well-known trio
// when their client credentials are present in the environment.
func providersFromEnv() []ProviderConfig {
	known := []struct {
		name        string
		authURL     string
		tokenURL    string
		userInfoURL string
		scopes      []string
	}{
		{
			name:        "google",
			authURL:     "https://accounts.google.com/o/oauth2/auth",
			tokenURL:    "https://oauth2.googleapis.com/token",
			userInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
			scopes:      []string{"openid", "email", "profile"},
		},
		{
			name:        "github",
			authURL:     "https://github.com/login/oauth/authorize",
			tokenURL:    "https://github.com/login/oauth/access_token",
			userInfoURL: "https://api.github.com/user",
			scopes:      []string{"read:user", "user:email"},
		},
		{
			name:        "microsoft",
			authURL:     "https://login.microsoftonline.com/common/oauth2/v2.0/authorize",
			tokenURL:    "https://login.microsoftonline.com/common/oauth2/v2.0/token",
			userInfoURL: "https://graph.microsoft.com/oidc/userinfo",
			scopes:      []string{"openid", "email", "profile"},
		},
	}

	var providers []ProviderConfig
	for _, k := range known {
		prefix := "OAUTH_" + strings.ToUpper(k.name)
		clientID := os.Getenv(prefix + "_CLIENT_ID")
		clientSecret := os.Getenv(prefix + "_CLIENT_SECRET")
		if clientID == "" || clientSecret == "" {
			continue
		}
		providers = append(providers, ProviderConfig{
			Name:         k.name,
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  os.Getenv(prefix + "_REDIRECT_URL"),
			AuthURL:      k.authURL,
			TokenURL:     k.tokenURL,
			UserInfoURL:  k.userInfoURL,
			Scopes:       k.scopes,
		})
	}
	return providers
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func durationEnv(key string, current, fallback time.Duration) (time.Duration, error) {
	if raw := os.Getenv(key); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return parsed, nil
	}
	if current != 0 {
		return current, nil
	}
	return fallback, nil
}

func defaultString(current, fallback string) string {
	if current != "" {
		return current
	}
	return fallback
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
