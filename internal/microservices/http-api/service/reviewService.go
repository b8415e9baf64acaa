package service

import (
	"context"
	"unicode/utf8"

	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/models"
	"cinelog/internal/microservices/http-api/repository"
)

// MinReviewLength is counted in characters, not bytes.
const MinReviewLength = 10

const (
	defaultReviewPageSize = 10
	maxReviewPageSize     = 50
)

type ReviewService interface {
	SubmitReview(ctx context.Context, userID string, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	ToggleLike(ctx context.Context, userID, reviewID string) (bool, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

// SubmitReview creates the caller's review of a movie or replaces it
func (s *reviewService) SubmitReview(ctx context.Context, userID string, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if req.MovieID <= 0 || utf8.RuneCountInString(req.Content) < MinReviewLength {
		return nil, invalidInput("review must be at least 10 characters")
	}
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, invalidInput("rating must be between 1 and 5")
	}

	review, err := s.reviewRepo.Upsert(ctx, &models.Review{
		UserID:  userID,
		MovieID: req.MovieID,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

// GetMovieReviews retrieves all reviews for a movie with pagination
func (s *reviewService) GetMovieReviews(ctx context.Context, movieID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultReviewPageSize
	}
	if pageSize > maxReviewPageSize {
		pageSize = maxReviewPageSize
	}

	reviews, total, err := s.reviewRepo.ListByMovie(ctx, movieID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedReviewResponse(dto.FromModelsToReviewResponses(reviews), int(total), page, pageSize), nil
}

// ToggleLike likes the review, or removes the caller's like if present.
func (s *reviewService) ToggleLike(ctx context.Context, userID, reviewID string) (bool, error) {
	if !validID(reviewID) {
		return false, notFound(repository.ErrNotFound, "review not found")
	}
	liked, err := s.reviewRepo.ToggleLike(ctx, userID, reviewID)
	if err != nil {
		return false, notFound(err, "review not found")
	}
	return liked, nil
}
