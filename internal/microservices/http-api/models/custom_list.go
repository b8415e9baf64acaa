package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomList struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"userId"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	IsPublic    bool      `gorm:"not null;default:false" json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Associations
	User   *User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Movies []CustomListMovie `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE;" json:"movies,omitempty"`
}

func (l *CustomList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

func (CustomList) TableName() string {
	return "custom_lists"
}

// CustomListMovie is a movie inside a custom list. Title and poster are a
// snapshot taken when the movie was added.
type CustomListMovie struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	ListID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_custom_list_movies_list_movie" json:"listId"`
	MovieID     int64     `gorm:"not null;uniqueIndex:idx_custom_list_movies_list_movie" json:"movieId"`
	MovieTitle  string    `gorm:"not null" json:"movieTitle"`
	MoviePoster *string   `json:"moviePoster"`
	AddedAt     time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

func (m *CustomListMovie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (CustomListMovie) TableName() string {
	return "custom_list_movies"
}
