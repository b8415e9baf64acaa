package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRateLimit = 40
	rateBurst        = 10
)

// Client provides access to the TMDB v3 API.
type Client struct {
	apiKey      string
	baseURL     string
	language    string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), rateBurst)
		}
	}
}

// NewClient creates a TMDB client.
func NewClient(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		language:    strings.TrimSpace(language),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: rate.NewLimiter(rate.Limit(defaultRateLimit), rateBurst),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) Popular(ctx context.Context, page int) (*MoviePage, error) {
	return c.moviePage(ctx, "/movie/popular", pageParams(page))
}

// Trending uses the weekly window.
func (c *Client) Trending(ctx context.Context, page int) (*MoviePage, error) {
	return c.moviePage(ctx, "/trending/movie/week", pageParams(page))
}

func (c *Client) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	return c.moviePage(ctx, "/movie/top_rated", pageParams(page))
}

func (c *Client) NowPlaying(ctx context.Context, page int) (*MoviePage, error) {
	return c.moviePage(ctx, "/movie/now_playing", pageParams(page))
}

// Search performs a TMDB movie title search.
func (c *Client) Search(ctx context.Context, query string, page int) (*MoviePage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := pageParams(page)
	params.Set("query", query)
	return c.moviePage(ctx, "/search/movie", params)
}

func (c *Client) Discover(ctx context.Context, params DiscoverParams) (*MoviePage, error) {
	return c.moviePage(ctx, "/discover/movie", params.Values())
}

// ByGenre discovers movies in one genre, optionally limited to a release year.
func (c *Client) ByGenre(ctx context.Context, genreID, page int, year string) (*MoviePage, error) {
	gte, lte := YearRange(year)
	return c.Discover(ctx, DiscoverParams{
		Page:           page,
		WithGenres:     genreID,
		ReleaseDateGTE: gte,
		ReleaseDateLTE: lte,
	})
}

// MovieDetails fetches movie details by TMDB ID.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb movie details: %w", err)
	}
	return &payload, nil
}

func (c *Client) MovieCredits(ctx context.Context, movieID int64) (*Credits, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Credits
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb movie credits: %w", err)
	}
	return &payload, nil
}

func (c *Client) Genres(ctx context.Context) (*GenreList, error) {
	var payload GenreList
	if err := c.get(ctx, "/genre/movie/list", nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb genres: %w", err)
	}
	return &payload, nil
}

func (c *Client) moviePage(ctx context.Context, path string, params url.Values) (*MoviePage, error) {
	var payload MoviePage
	if err := c.get(ctx, path, params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb %s: %w", path, err)
	}
	return &payload, nil
}

// get issues one rate-limited GET. There are no retries; a failure is
// returned to the caller as is.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("tmdb returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

func pageParams(page int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(page)))
	return params
}
