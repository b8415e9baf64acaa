package dto

import "cinelog/internal/microservices/http-api/models"

// UpsertStatusDTO: payload to tag a movie in the caller's personal lists
type UpsertStatusDTO struct {
	MovieID int64             `json:"movieId" binding:"required,min=1"`
	Status  models.ListStatus `json:"status" binding:"required"`
}

// StatusQuery filters GET /api/user/lists; DELETE requires both fields
type StatusQuery struct {
	MovieID int64             `form:"movieId" binding:"omitempty,min=1"`
	Status  models.ListStatus `form:"status"`
}
