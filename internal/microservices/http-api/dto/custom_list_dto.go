package dto

import (
	"time"

	"cinelog/internal/microservices/http-api/models"
)

// CreateCustomListDTO used for POST /api/custom-lists
type CreateCustomListDTO struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	IsPublic    bool    `json:"isPublic"`
}

// UpdateCustomListDTO used for PUT /api/custom-lists/:id (partial updates allowed)
type UpdateCustomListDTO struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// AddListMovieDTO used for POST /api/custom-lists/movies
type AddListMovieDTO struct {
	ListID      string  `json:"listId" binding:"required"`
	MovieID     int64   `json:"movieId" binding:"required,min=1"`
	MovieTitle  string  `json:"movieTitle" binding:"required"`
	MoviePoster *string `json:"moviePoster,omitempty"`
}

// RemoveListMovieQuery binds DELETE /api/custom-lists/movies?listId=&movieId=
type RemoveListMovieQuery struct {
	ListID  string `form:"listId" binding:"required"`
	MovieID int64  `form:"movieId" binding:"required,min=1"`
}

// CustomListResponse DTO for responses. Movies holds every entry on the
// detail view and at most four on the owner's overview.
type CustomListResponse struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"userId"`
	Name        string                   `json:"name"`
	Description *string                  `json:"description"`
	IsPublic    bool                     `json:"isPublic"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
	User        *UserSnippet             `json:"user,omitempty"`
	Movies      []models.CustomListMovie `json:"movies"`
	MovieCount  int64                    `json:"movieCount"`
}

// FromModelToCustomListResponse converts a CustomList model. movieCount is
// the number of entries in the whole list.
func FromModelToCustomListResponse(list *models.CustomList, movieCount int64) *CustomListResponse {
	movies := list.Movies
	if movies == nil {
		movies = []models.CustomListMovie{}
	}
	return &CustomListResponse{
		ID:          list.ID,
		UserID:      list.UserID,
		Name:        list.Name,
		Description: list.Description,
		IsPublic:    list.IsPublic,
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
		User:        FromModelToUserSnippet(list.User),
		Movies:      movies,
		MovieCount:  movieCount,
	}
}

// SuccessResponse is returned by deletes
type SuccessResponse struct {
	Success bool `json:"success"`
}
