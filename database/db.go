package database

import (
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	"cinelog/internal/config"
	"cinelog/internal/microservices/http-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// demoDSN keeps one shared in-memory database for the life of the process.
const demoDSN = "file:cinelog-demo?mode=memory&cache=shared"

// OpenGorm opens the process-wide database handle. With no DATABASE_URL the
// application runs in demo mode on an in-memory SQLite database that is lost
// on exit. The handle is opened once at start-up and injected everywhere else.
func OpenGorm(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.IsDemoMode() {
		logger.Warn("DATABASE_URL not set - running in demo mode, data will not survive a restart")
		db, err := OpenSQLite(demoDSN)
		if err != nil {
			return nil, err
		}
		return db, Migrate(db, logger)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db, logger); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Info("Connected to the database successfully", "driver", "postgres")
	return db, nil
}

// OpenSQLite opens an SQLite database through the pure-Go driver. A single
// connection serializes access, which SQLite needs for writes anyway.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.LogLevel == "debug" {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
