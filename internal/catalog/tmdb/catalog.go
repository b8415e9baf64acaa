package tmdb

import (
	"context"
	"errors"
	"log/slog"

	"cinelog/internal/config"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when the catalog has no movie with the requested id.
var ErrNotFound = errors.New("movie not found")

// Catalog is the read-only movie metadata source used by the API.
type Catalog interface {
	Popular(ctx context.Context, page int) (*MoviePage, error)
	Trending(ctx context.Context, page int) (*MoviePage, error)
	TopRated(ctx context.Context, page int) (*MoviePage, error)
	NowPlaying(ctx context.Context, page int) (*MoviePage, error)
	Search(ctx context.Context, query string, page int) (*MoviePage, error)
	Discover(ctx context.Context, params DiscoverParams) (*MoviePage, error)
	ByGenre(ctx context.Context, genreID, page int, year string) (*MoviePage, error)
	MovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error)
	MovieCredits(ctx context.Context, movieID int64) (*Credits, error)
	Genres(ctx context.Context) (*GenreList, error)
}

// New picks the catalog for cfg: the built-in dataset when no usable API key
// is configured, otherwise the TMDB client. When rdb is non-nil the TMDB
// client is wrapped in the Redis cache. The fallback is never cached.
func New(cfg *config.Config, rdb *redis.Client, logger *slog.Logger) (Catalog, error) {
	if cfg.UseCatalogFallback() {
		logger.Warn("TMDB_API_KEY not configured - serving the built-in movie dataset")
		return NewFallback(), nil
	}

	client, err := NewClient(cfg.TMDBAPIKey, cfg.TMDBAPIURL, cfg.TMDBLanguage, WithRateLimit(cfg.TMDBRateLimit))
	if err != nil {
		return nil, err
	}
	if rdb == nil {
		return client, nil
	}
	logger.Info("catalog cache enabled", "ttl", cfg.CacheDuration())
	return NewCached(client, rdb, cfg.CacheDuration(), logger), nil
}
