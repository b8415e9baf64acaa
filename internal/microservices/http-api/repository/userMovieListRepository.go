package repository

import (
	"context"
	"fmt"
	"time"

	"cinelog/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusFilter narrows a status listing. Zero values match everything.
type StatusFilter struct {
	MovieID int64
	Status  models.ListStatus
}

type UserMovieListRepository interface {
	Upsert(ctx context.Context, userID string, movieID int64, status models.ListStatus) (*models.UserMovieList, error)
	List(ctx context.Context, userID string, filter StatusFilter) ([]models.UserMovieList, error)
	Delete(ctx context.Context, userID string, movieID int64, status models.ListStatus) error
}

type userMovieListRepository struct {
	db *gorm.DB
}

func NewUserMovieListRepository(db *gorm.DB) UserMovieListRepository {
	return &userMovieListRepository{db: db}
}

// Upsert is keyed by (user, movie, status); the status is part of the key so
// tagging a movie twice with the same status only refreshes updated_at.
func (r *userMovieListRepository) Upsert(ctx context.Context, userID string, movieID int64, status models.ListStatus) (*models.UserMovieList, error) {
	row := &models.UserMovieList{
		UserID:    userID,
		MovieID:   movieID,
		Status:    status,
		UpdatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}, {Name: "status"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert movie status: %w", err)
	}

	var stored models.UserMovieList
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ? AND status = ?", userID, movieID, status).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("reload movie status: %w", err)
	}
	return &stored, nil
}

// List returns the user's status entries, newest first.
func (r *userMovieListRepository) List(ctx context.Context, userID string, filter StatusFilter) ([]models.UserMovieList, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.MovieID > 0 {
		query = query.Where("movie_id = ?", filter.MovieID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	entries := make([]models.UserMovieList, 0)
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list movie statuses: %w", err)
	}
	return entries, nil
}

func (r *userMovieListRepository) Delete(ctx context.Context, userID string, movieID int64, status models.ListStatus) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ? AND status = ?", userID, movieID, status).
		Delete(&models.UserMovieList{})
	if result.Error != nil {
		return fmt.Errorf("delete movie status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
