package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinelog/database"
	"cinelog/internal/catalog/tmdb"
	"cinelog/internal/config"
	"cinelog/internal/microservices/http-api/handler"
	"cinelog/internal/microservices/http-api/repository"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	shutdownTimeout = 10 * time.Second
	pruneInterval   = time.Hour
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("api server stopped", "error", err)
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled. Every store it opens is closed
// before it returns, including on start-up failures.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	defer database.Close(db)

	rdb := openRedis(cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	catalog, err := tmdb.New(cfg, rdb, logger)
	if err != nil {
		return fmt.Errorf("catalog unavailable: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	statusRepo := repository.NewUserMovieListRepository(db)

	authService := service.NewAuthService(userRepo, repository.NewRefreshTokenRepository(db), cfg)
	ratingService := service.NewRatingService(repository.NewRatingRepository(db))

	router := handler.NewRouter(cfg, handler.Services{
		Auth:     authService,
		Movies:   service.NewMovieService(catalog, ratingService, reviewRepo, cfg.TMDBImageURL),
		Ratings:  ratingService,
		Reviews:  service.NewReviewService(reviewRepo),
		Lists:    service.NewCustomListService(repository.NewCustomListRepository(db)),
		Statuses: service.NewUserListService(statusRepo),
		Users:    service.NewUserService(userRepo, reviewRepo, statusRepo),
	})

	go pruneRefreshTokens(ctx, authService, logger)

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.GoEnv, "demo", cfg.IsDemoMode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

// openRedis returns nil when no cache is configured or the server cannot be
// reached; the catalog then talks to TMDB directly.
func openRedis(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, catalog cache disabled", "error", err)
		return nil
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, catalog cache disabled", "addr", opts.Addr, "error", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func pruneRefreshTokens(ctx context.Context, auth service.AuthService, logger *slog.Logger) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.PruneRefreshTokens(ctx)
			if err != nil {
				logger.Warn("prune refresh tokens", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("pruned expired refresh tokens", "count", n)
			}
		}
	}
}
