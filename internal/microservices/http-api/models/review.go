package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a written review with its own rating. Likes is a counter kept in
// step with the likes table by ReviewRepository.ToggleLike.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_movie"`
	MovieID   int64     `json:"movieId" gorm:"not null;uniqueIndex:idx_reviews_user_movie;index"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Likes     int       `json:"likes" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

func (Review) TableName() string {
	return "reviews"
}
