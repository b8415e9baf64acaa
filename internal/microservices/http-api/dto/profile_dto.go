package dto

import "cinelog/internal/microservices/http-api/models"

// UpdateProfileDTO used for PUT /api/user/profile. Omitted fields are kept.
type UpdateProfileDTO struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Bio   *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	Image *string `json:"image,omitempty" binding:"omitempty,url"`
}

// ProfileResponse: the caller's account, latest reviews and status lists
type ProfileResponse struct {
	User          *UserResponse          `json:"user"`
	RecentReviews []ReviewResponse       `json:"recentReviews"`
	Favorites     []models.UserMovieList `json:"favorites"`
	WantToWatch   []models.UserMovieList `json:"wantToWatch"`
	Watched       []models.UserMovieList `json:"watched"`
}
