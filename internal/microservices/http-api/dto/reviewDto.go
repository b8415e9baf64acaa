package dto

import (
	"time"

	"cinelog/internal/microservices/http-api/models"
)

// CreateReviewDTO for creating or replacing the caller's review of a movie
type CreateReviewDTO struct {
	MovieID int64  `json:"movieId" binding:"required,min=1"`
	Content string `json:"content" binding:"required,min=10,max=10000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// UserSnippet is the author block attached to reviews and lists
type UserSnippet struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	MovieID   int64        `json:"movieId"`
	Content   string       `json:"content"`
	Rating    int          `json:"rating"`
	Likes     int          `json:"likes"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	User      *UserSnippet `json:"user,omitempty"`
}

// FromModelToUserSnippet returns nil when the association was not loaded
func FromModelToUserSnippet(user *models.User) *UserSnippet {
	if user == nil {
		return nil
	}
	return &UserSnippet{ID: user.ID, Name: user.Name, Image: user.Image}
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		MovieID:   review.MovieID,
		Content:   review.Content,
		Rating:    review.Rating,
		Likes:     review.Likes,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
		User:      FromModelToUserSnippet(review.User),
	}
}

// FromModelsToReviewResponses keeps the input order
func FromModelsToReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, *FromModelToReviewResponse(&reviews[i]))
	}
	return out
}

// LikeResponse reports the like state after a toggle
type LikeResponse struct {
	Liked bool `json:"liked"`
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedReviewResponse creates a paginated review response
func NewPaginatedReviewResponse(data []ReviewResponse, total, page, pageSize int) *PaginatedReviewResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
