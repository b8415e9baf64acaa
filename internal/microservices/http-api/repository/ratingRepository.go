package repository

import (
	"context"
	"fmt"
	"time"

	"cinelog/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, userID string, movieID int64, rating int) (*models.MovieRating, error)
	GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.MovieRating, error)
	ListValues(ctx context.Context, movieID int64) ([]int, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert creates the user's rating for a movie or replaces its value. The
// unique (user_id, movie_id) index serializes concurrent writers; the last
// one wins.
func (r *ratingRepository) Upsert(ctx context.Context, userID string, movieID int64, rating int) (*models.MovieRating, error) {
	row := &models.MovieRating{
		UserID:    userID,
		MovieID:   movieID,
		Rating:    rating,
		UpdatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	// On conflict the generated ID is not the stored one, so read it back.
	return r.GetByUserAndMovie(ctx, userID, movieID)
}

// GetByUserAndMovie retrieves a user's rating for a specific movie
func (r *ratingRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.MovieRating, error) {
	var rating models.MovieRating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListValues returns every stored rating value for a movie, newest first.
func (r *ratingRepository) ListValues(ctx context.Context, movieID int64) ([]int, error) {
	values := make([]int, 0)
	err := r.db.WithContext(ctx).
		Model(&models.MovieRating{}).
		Where("movie_id = ?", movieID).
		Order("updated_at DESC").
		Pluck("rating", &values).Error
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return values, nil
}
