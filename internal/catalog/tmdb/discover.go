package tmdb

import (
	"net/url"
	"strconv"
	"strings"
)

// SortByRating is the discover ordering that gets an implicit vote floor.
const SortByRating = "vote_average.desc"

// ratingSortMinVotes keeps titles with a handful of perfect votes off the top.
const ratingSortMinVotes = 500

// DiscoverParams holds the /discover/movie filters the API exposes.
type DiscoverParams struct {
	Page           int
	SortBy         string
	WithGenres     int
	ReleaseDateGTE string
	ReleaseDateLTE string
	VoteAverageGTE *float64
	VoteAverageLTE *float64
	VoteCountGTE   int
}

// EffectiveMinVotes returns the vote-count floor for a discover query. An
// explicit value always wins; otherwise sorting by rating implies 500 and any
// other ordering applies no floor.
func EffectiveMinVotes(minVotes *int, sortBy string) int {
	if minVotes != nil {
		return *minVotes
	}
	if sortBy == SortByRating {
		return ratingSortMinVotes
	}
	return 0
}

// YearRange expands a four digit year into release_date bounds.
func YearRange(year string) (gte, lte string) {
	year = strings.TrimSpace(year)
	if year == "" {
		return "", ""
	}
	return year + "-01-01", year + "-12-31"
}

// Values encodes the params as TMDB query parameters. Zero values are omitted.
func (p DiscoverParams) Values() url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(p.Page)))
	if p.SortBy != "" {
		params.Set("sort_by", p.SortBy)
	}
	if p.WithGenres > 0 {
		params.Set("with_genres", strconv.Itoa(p.WithGenres))
	}
	if p.ReleaseDateGTE != "" {
		params.Set("release_date.gte", p.ReleaseDateGTE)
	}
	if p.ReleaseDateLTE != "" {
		params.Set("release_date.lte", p.ReleaseDateLTE)
	}
	if p.VoteAverageGTE != nil {
		params.Set("vote_average.gte", strconv.FormatFloat(*p.VoteAverageGTE, 'f', -1, 64))
	}
	if p.VoteAverageLTE != nil {
		params.Set("vote_average.lte", strconv.FormatFloat(*p.VoteAverageLTE, 'f', -1, 64))
	}
	if p.VoteCountGTE > 0 {
		params.Set("vote_count.gte", strconv.Itoa(p.VoteCountGTE))
	}
	return params
}

// CacheKey returns a stable string representation for caching.
func (p DiscoverParams) CacheKey() string {
	return p.Values().Encode()
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
