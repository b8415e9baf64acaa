package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinelog/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Upsert(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListByMovie(ctx context.Context, movieID int64, page, pageSize int) ([]models.Review, int64, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]models.Review, error)
	ToggleLike(ctx context.Context, userID, reviewID string) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Upsert writes the user's single review of a movie, replacing content and
// rating if one exists. The like counter is left alone.
func (r *reviewRepository) Upsert(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "rating", "updated_at"}),
	}).Create(review).Error
	if err != nil {
		return nil, fmt.Errorf("upsert review: %w", err)
	}

	var stored models.Review
	err = r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND movie_id = ?", review.UserID, review.MovieID).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	return &stored, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByMovie retrieves a movie's reviews with pagination, newest first
func (r *reviewRepository) ListByMovie(ctx context.Context, movieID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Review{}).Where("movie_id = ?", movieID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	offset := (page - 1) * pageSize
	err := db.Where("movie_id = ?", movieID).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *reviewRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("recent reviews: %w", err)
	}
	return reviews, nil
}

// ToggleLike flips the user's like on a review and moves the review's like
// counter by one in the same transaction. On PostgreSQL the review row is
// locked first so concurrent toggles queue up behind each other.
func (r *reviewRepository) ToggleLike(ctx context.Context, userID, reviewID string) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lookup := tx.Select("id")
		if tx.Dialector.Name() == "postgres" {
			lookup = lookup.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var review models.Review
		if err := lookup.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lock review: %w", err)
		}

		removed := tx.Where("user_id = ? AND review_id = ?", userID, reviewID).Delete(&models.Like{})
		if removed.Error != nil {
			return fmt.Errorf("remove like: %w", removed.Error)
		}

		delta := -1
		if removed.RowsAffected == 0 {
			if err := tx.Create(&models.Like{UserID: userID, ReviewID: reviewID}).Error; err != nil {
				return fmt.Errorf("create like: %w", err)
			}
			delta = 1
			liked = true
		}

		return tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}
