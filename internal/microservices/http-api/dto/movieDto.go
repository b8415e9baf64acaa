package dto

import "cinelog/internal/catalog/tmdb"

// MovieListQuery binds GET /api/movies
type MovieListQuery struct {
	Type string `form:"type"`
	Page int    `form:"page" binding:"omitempty,min=1,max=500"`
}

// MovieSearchQuery binds GET /api/movies/search. q wins over genre, genre
// wins over the discover filters.
type MovieSearchQuery struct {
	Query     string   `form:"q"`
	Genre     int      `form:"genre" binding:"omitempty,min=1"`
	SortBy    string   `form:"sort_by"`
	Year      string   `form:"year" binding:"omitempty,numeric,len=4"`
	MinRating *float64 `form:"min_rating" binding:"omitempty,min=0,max=10"`
	MaxRating *float64 `form:"max_rating" binding:"omitempty,min=0,max=10"`
	MinVotes  *int     `form:"min_votes" binding:"omitempty,min=0"`
	Page      int      `form:"page" binding:"omitempty,min=1,max=500"`
}

// MovieDetailResponse is catalog data merged with the community's activity
type MovieDetailResponse struct {
	tmdb.MovieDetails
	PosterURL       string           `json:"posterUrl"`
	BackdropURL     string           `json:"backdropUrl"`
	Credits         *tmdb.Credits    `json:"credits"`
	CommunityRating *float64         `json:"communityRating"`
	RatingCount     int64            `json:"ratingCount"`
	Reviews         []ReviewResponse `json:"reviews"`
}
