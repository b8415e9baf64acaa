package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListStatus tags a movie in a user's personal lists. Each status is an
// independent row, so a movie can be FAVORITE and WATCHED at once.
type ListStatus string

const (
	StatusFavorite    ListStatus = "FAVORITE"
	StatusWantToWatch ListStatus = "WANT_TO_WATCH"
	StatusWatched     ListStatus = "WATCHED"
)

// Valid reports whether s is one of the known statuses.
func (s ListStatus) Valid() bool {
	switch s {
	case StatusFavorite, StatusWantToWatch, StatusWatched:
		return true
	}
	return false
}

type UserMovieList struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex:idx_user_movie_lists_user_movie_status" json:"userId"`
	MovieID   int64      `gorm:"not null;uniqueIndex:idx_user_movie_lists_user_movie_status" json:"movieId"`
	Status    ListStatus `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_movie_lists_user_movie_status" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (e *UserMovieList) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

func (UserMovieList) TableName() string {
	return "user_movie_lists"
}
