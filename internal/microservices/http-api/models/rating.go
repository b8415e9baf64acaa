package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovieRating is a user's 1-5 score for a catalog movie. One per (user, movie).
type MovieRating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_movie_ratings_user_movie"`
	MovieID   int64     `json:"movieId" gorm:"not null;uniqueIndex:idx_movie_ratings_user_movie;index"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (r *MovieRating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

func (MovieRating) TableName() string {
	return "movie_ratings"
}
