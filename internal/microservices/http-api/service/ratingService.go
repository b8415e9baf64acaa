package service

import (
	"context"

	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/models"
	"cinelog/internal/microservices/http-api/repository"
)

const (
	MinRating = 1
	MaxRating = 5
)

type RatingService interface {
	RateMovie(ctx context.Context, userID string, movieID int64, rating int) (*models.MovieRating, error)
	GetUserRating(ctx context.Context, userID string, movieID int64) (*models.MovieRating, error)
	GetMovieRatings(ctx context.Context, movieID int64) (*dto.MovieRatingsResponse, error)
	ComputeAverageRating(ctx context.Context, movieID int64) (*float64, int64, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
}

func NewRatingService(ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo}
}

// AverageRating is the arithmetic mean of ratings, or nil for no ratings.
func AverageRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return &mean
}

// RateMovie creates or replaces the user's rating for a movie
func (s *ratingService) RateMovie(ctx context.Context, userID string, movieID int64, rating int) (*models.MovieRating, error) {
	if movieID <= 0 {
		return nil, invalidInput("movieId is required")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, invalidInput("rating must be between 1 and 5")
	}
	return s.ratingRepo.Upsert(ctx, userID, movieID, rating)
}

// GetUserRating retrieves a user's rating for a specific movie
func (s *ratingService) GetUserRating(ctx context.Context, userID string, movieID int64) (*models.MovieRating, error) {
	rating, err := s.ratingRepo.GetByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		return nil, notFound(err, "rating not found")
	}
	return rating, nil
}

// GetMovieRatings returns the community rating together with the raw values
func (s *ratingService) GetMovieRatings(ctx context.Context, movieID int64) (*dto.MovieRatingsResponse, error) {
	values, err := s.ratingRepo.ListValues(ctx, movieID)
	if err != nil {
		return nil, err
	}

	ratings := make([]dto.RatingValue, 0, len(values))
	for _, v := range values {
		ratings = append(ratings, dto.RatingValue{Rating: v})
	}
	return &dto.MovieRatingsResponse{
		Average: AverageRating(values),
		Count:   int64(len(values)),
		Ratings: ratings,
	}, nil
}

// ComputeAverageRating recomputes the mean from stored rows on every call.
func (s *ratingService) ComputeAverageRating(ctx context.Context, movieID int64) (*float64, int64, error) {
	values, err := s.ratingRepo.ListValues(ctx, movieID)
	if err != nil {
		return nil, 0, err
	}
	return AverageRating(values), int64(len(values)), nil
}
