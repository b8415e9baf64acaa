package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like records that a user liked a review.
// The combination of UserID and ReviewID must be unique.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_review"`
	ReviewID  string    `json:"reviewId" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_review;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	Review *Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

func (Like) TableName() string {
	return "likes"
}
