package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "catalog:"

// Cached is a read-through Redis cache in front of another Catalog. Redis
// failures are logged and the request goes to the wrapped catalog instead.
type Cached struct {
	next   Catalog
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ Catalog = (*Cached)(nil)

func NewCached(next Catalog, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *Cached) Popular(ctx context.Context, page int) (*MoviePage, error) {
	return readThrough(ctx, c, "popular:"+strconv.Itoa(normalizePage(page)), func() (*MoviePage, error) {
		return c.next.Popular(ctx, page)
	})
}

func (c *Cached) Trending(ctx context.Context, page int) (*MoviePage, error) {
	return readThrough(ctx, c, "trending:"+strconv.Itoa(normalizePage(page)), func() (*MoviePage, error) {
		return c.next.Trending(ctx, page)
	})
}

func (c *Cached) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	return readThrough(ctx, c, "top_rated:"+strconv.Itoa(normalizePage(page)), func() (*MoviePage, error) {
		return c.next.TopRated(ctx, page)
	})
}

func (c *Cached) NowPlaying(ctx context.Context, page int) (*MoviePage, error) {
	return readThrough(ctx, c, "now_playing:"+strconv.Itoa(normalizePage(page)), func() (*MoviePage, error) {
		return c.next.NowPlaying(ctx, page)
	})
}

func (c *Cached) Search(ctx context.Context, query string, page int) (*MoviePage, error) {
	return readThrough(ctx, c, fmt.Sprintf("search:%d:%s", normalizePage(page), query), func() (*MoviePage, error) {
		return c.next.Search(ctx, query, page)
	})
}

func (c *Cached) Discover(ctx context.Context, params DiscoverParams) (*MoviePage, error) {
	return readThrough(ctx, c, "discover:"+params.CacheKey(), func() (*MoviePage, error) {
		return c.next.Discover(ctx, params)
	})
}

func (c *Cached) ByGenre(ctx context.Context, genreID, page int, year string) (*MoviePage, error) {
	return readThrough(ctx, c, fmt.Sprintf("genre:%d:%d:%s", genreID, normalizePage(page), year), func() (*MoviePage, error) {
		return c.next.ByGenre(ctx, genreID, page, year)
	})
}

func (c *Cached) MovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	return readThrough(ctx, c, "movie:"+strconv.FormatInt(movieID, 10), func() (*MovieDetails, error) {
		return c.next.MovieDetails(ctx, movieID)
	})
}

func (c *Cached) MovieCredits(ctx context.Context, movieID int64) (*Credits, error) {
	return readThrough(ctx, c, "credits:"+strconv.FormatInt(movieID, 10), func() (*Credits, error) {
		return c.next.MovieCredits(ctx, movieID)
	})
}

func (c *Cached) Genres(ctx context.Context) (*GenreList, error) {
	return readThrough(ctx, c, "genres", func() (*GenreList, error) {
		return c.next.Genres(ctx)
	})
}

// readThrough returns the cached value for key or calls fetch and stores its
// result. Errors from fetch are never cached.
func readThrough[T any](ctx context.Context, c *Cached, key string, fetch func() (*T, error)) (*T, error) {
	key = cacheKeyPrefix + key

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			c.logger.Debug("catalog cache hit", "key", key)
			return &value, nil
		}
		c.logger.Warn("discarding unreadable catalog cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", "key", key, "error", err)
	}

	value, err := fetch()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", "key", key, "error", err)
		return value, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
	return value, nil
}
