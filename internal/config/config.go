package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// placeholderAPIKey is the value shipped in .env.example; treated as "no key".
const placeholderAPIKey = "YOUR_TMDB_API_KEY"

// devJWTSecret is only accepted outside production so a fresh checkout runs.
const devJWTSecret = "cinelog-development-secret-change-me-please"

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP server
	HTTPHost string `env:"HTTP_HOST" default:"127.0.0.1"`
	HTTPPort int    `env:"HTTP_PORT" default:"8080"`

	// Database (empty = demo mode, in-memory store)
	DatabaseURL string `env:"DATABASE_URL"`

	// Authentication
	JWTSecret         string        `env:"JWT_SECRET" required:"production"`
	AccessTokenTTL    time.Duration `env:"ACCESS_TOKEN_TTL" default:"24h"`
	RefreshTokenTTL   time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" default:"cinelog_session"`
	CookieSecure      bool          `env:"COOKIE_SECURE" default:"false"`

	// Redis cache for catalog responses (empty = no cache)
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" default:"3600"`

	// Movie catalog (TMDB)
	TMDBAPIKey    string  `env:"TMDB_API_KEY"`
	TMDBAPIURL    string  `env:"TMDB_API_URL" default:"https://api.themoviedb.org/3"`
	TMDBImageURL  string  `env:"TMDB_IMAGE_URL" default:"https://image.tmdb.org/t/p"`
	TMDBLanguage  string  `env:"TMDB_LANGUAGE" default:"es-ES"`
	TMDBRateLimit float64 `env:"TMDB_RATE_LIMIT" default:"40"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env is fine; system env vars still apply.
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	loadEnvString(&config.HTTPHost, "HTTP_HOST", "127.0.0.1")
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	loadEnvString(&config.DatabaseURL, "DATABASE_URL", "")

	// Authentication
	if config.IsProduction() {
		if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
			return nil, err
		}
	} else {
		loadEnvString(&config.JWTSecret, "JWT_SECRET", devJWTSecret)
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenTTL, "REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	loadEnvString(&config.SessionCookieName, "SESSION_COOKIE_NAME", "cinelog_session")
	if err := loadEnvBool(&config.CookieSecure, "COOKIE_SECURE", false); err != nil {
		return nil, err
	}

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "")
	loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", "")
	if err := loadEnvInt(&config.CacheTTL, "CACHE_TTL", 3600); err != nil {
		return nil, err
	}

	// Catalog
	loadEnvString(&config.TMDBAPIKey, "TMDB_API_KEY", "")
	loadEnvString(&config.TMDBAPIURL, "TMDB_API_URL", "https://api.themoviedb.org/3")
	loadEnvString(&config.TMDBImageURL, "TMDB_IMAGE_URL", "https://image.tmdb.org/t/p")
	loadEnvString(&config.TMDBLanguage, "TMDB_LANGUAGE", "es-ES")
	if err := loadEnvFloat(&config.TMDBRateLimit, "TMDB_RATE_LIMIT", 40); err != nil {
		return nil, err
	}

	// Logging
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvStringRequired(target *string, key string) error {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		errors = append(errors, "ACCESS_TOKEN_TTL and REFRESH_TOKEN_TTL must be positive")
	}
	if c.CacheTTL < 0 {
		errors = append(errors, "CACHE_TTL must not be negative")
	}
	if c.TMDBRateLimit <= 0 {
		errors = append(errors, "TMDB_RATE_LIMIT must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsDemoMode reports whether no durable store is configured.
func (c *Config) IsDemoMode() bool {
	return c.DatabaseURL == ""
}

// UseCatalogFallback reports whether the built-in movie dataset replaces TMDB.
func (c *Config) UseCatalogFallback() bool {
	return c.TMDBAPIKey == "" || c.TMDBAPIKey == placeholderAPIKey
}

// CacheDuration is CACHE_TTL as a time.Duration.
func (c *Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Address is the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
