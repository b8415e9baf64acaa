package tmdb

import (
	"context"
	"errors"
	"testing"

	"cinelog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackFirstPageHoldsAllMovies(t *testing.T) {
	f := NewFallback()

	page, err := f.Popular(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 10, page.TotalResults)
	require.Len(t, page.Results, 10)
	assert.Equal(t, int64(550), page.Results[0].ID)
}

func TestFallbackSecondPageIsEmpty(t *testing.T) {
	page, err := NewFallback().TopRated(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Empty(t, page.Results)
	assert.NotNil(t, page.Results)
}

func TestFallbackSearchIsCaseInsensitive(t *testing.T) {
	page, err := NewFallback().Search(context.Background(), "the G", 3)
	require.NoError(t, err)

	titles := make([]string, 0, len(page.Results))
	for _, m := range page.Results {
		titles = append(titles, m.Title)
	}
	assert.ElementsMatch(t, []string{"The Godfather", "The Green Mile"}, titles)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.TotalResults)
}

func TestFallbackSearchNoMatch(t *testing.T) {
	page, err := NewFallback().Search(context.Background(), "zzz", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Equal(t, 0, page.TotalResults)
}

func TestFallbackMovieDetails(t *testing.T) {
	details, err := NewFallback().MovieDetails(context.Background(), 155)
	require.NoError(t, err)

	assert.Equal(t, "The Dark Knight", details.Title)
	require.NotNil(t, details.Runtime)
	assert.Equal(t, 120, *details.Runtime)
	assert.Equal(t, int64(50000000), details.Budget)
	assert.Equal(t, int64(150000000), details.Revenue)
	assert.Equal(t, "Released", details.Status)
	assert.Equal(t, []Genre{{ID: 18, Name: "Drama"}, {ID: 53, Name: "Thriller"}}, details.Genres)
}

func TestFallbackMovieDetailsUnknownID(t *testing.T) {
	_, err := NewFallback().MovieDetails(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFallbackCredits(t *testing.T) {
	credits, err := NewFallback().MovieCredits(context.Background(), 680)
	require.NoError(t, err)
	assert.Equal(t, int64(680), credits.ID)
	assert.Len(t, credits.Cast, 2)
	require.Len(t, credits.Crew, 1)
	assert.Equal(t, "Director", credits.Crew[0].Job)
}

func TestFallbackGenres(t *testing.T) {
	genres, err := NewFallback().Genres(context.Background())
	require.NoError(t, err)
	assert.Len(t, genres.Genres, 3)
}

func TestNewPicksFallbackWithoutKey(t *testing.T) {
	for _, key := range []string{"", "YOUR_TMDB_API_KEY"} {
		cfg := &config.Config{TMDBAPIKey: key, TMDBAPIURL: "https://api.themoviedb.org/3"}
		catalog, err := New(cfg, nil, discardLogger())
		require.NoError(t, err)
		assert.IsType(t, &Fallback{}, catalog)
	}
}

func TestNewPicksClientWithKey(t *testing.T) {
	cfg := &config.Config{TMDBAPIKey: "real", TMDBAPIURL: "https://api.themoviedb.org/3", TMDBRateLimit: 10}
	catalog, err := New(cfg, nil, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &Client{}, catalog)
}
