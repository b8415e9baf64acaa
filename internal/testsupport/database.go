package testsupport

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"cinelog/database"
	"cinelog/internal/config"
	"cinelog/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s-%d?mode=memory&cache=shared", name, time.Now().UnixNano())

	db, err := database.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := database.Migrate(db, DiscardLogger()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// CreateUser inserts a user with a unique email and returns it.
func CreateUser(t testing.TB, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@example.com", strings.ToLower(name), time.Now().UnixNano()),
		Password: "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

// NewConfig produces a development config suitable for services under test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	return &config.Config{
		GoEnv:             "test",
		HTTPHost:          "127.0.0.1",
		HTTPPort:          8080,
		JWTSecret:         "test-secret-that-is-long-enough-for-hs256",
		AccessTokenTTL:    15 * time.Minute,
		RefreshTokenTTL:   24 * time.Hour,
		SessionCookieName: "cinelog_session",
		CacheTTL:          60,
		TMDBAPIURL:        "https://api.themoviedb.org/3",
		TMDBImageURL:      "https://image.tmdb.org/t/p",
		TMDBLanguage:      "en-US",
		TMDBRateLimit:     100,
		LogLevel:          "error",
		LogFormat:         "text",
	}
}

// DiscardLogger swallows all log output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
