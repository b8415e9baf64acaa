package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GO_ENV", "HTTP_HOST", "HTTP_PORT", "DATABASE_URL", "JWT_SECRET",
		"ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "SESSION_COOKIE_NAME", "COOKIE_SECURE",
		"REDIS_URL", "REDIS_PASSWORD", "CACHE_TTL", "TMDB_API_KEY", "TMDB_API_URL",
		"TMDB_IMAGE_URL", "TMDB_LANGUAGE", "TMDB_RATE_LIMIT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.True(t, cfg.IsDemoMode())
	assert.True(t, cfg.UseCatalogFallback())
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, time.Hour, cfg.CacheDuration())
	assert.Equal(t, "es-ES", cfg.TMDBLanguage)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigProductionRequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://cinelog@localhost/cinelog")
	t.Setenv("TMDB_API_KEY", "real-key")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.False(t, cfg.IsDemoMode())
	assert.False(t, cfg.UseCatalogFallback())
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "eighty")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestPlaceholderAPIKeyUsesFallback(t *testing.T) {
	cfg := &Config{TMDBAPIKey: "YOUR_TMDB_API_KEY"}
	assert.True(t, cfg.UseCatalogFallback())
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		HTTPPort:        0,
		LogLevel:        "verbose",
		LogFormat:       "xml",
		JWTSecret:       "short",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		TMDBRateLimit:   1,
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"HTTP_PORT", "LOG_LEVEL", "LOG_FORMAT", "JWT_SECRET"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{LogLevel: "warn", LogFormat: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "movie_id", 550)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"movie_id":550`)
}
