package repository

import (
	"context"
	"fmt"
	"time"

	"cinelog/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CustomListRepository interface {
	Create(ctx context.Context, list *models.CustomList) error
	GetByID(ctx context.Context, id string) (*models.CustomList, error)
	GetWithMovies(ctx context.Context, id string) (*models.CustomList, error)
	ListByOwner(ctx context.Context, userID string, previewSize int) ([]ListWithCount, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.CustomList, error)
	Delete(ctx context.Context, id string) error
	AddMovie(ctx context.Context, entry *models.CustomListMovie) error
	RemoveMovie(ctx context.Context, listID string, movieID int64) error
	CountMovies(ctx context.Context, listID string) (int64, error)
}

// ListWithCount is a list carrying a preview of its movies and the size of
// the whole list.
type ListWithCount struct {
	List       models.CustomList
	MovieCount int64
}

type customListRepository struct {
	db *gorm.DB
}

func NewCustomListRepository(db *gorm.DB) CustomListRepository {
	return &customListRepository{db: db}
}

func (r *customListRepository) Create(ctx context.Context, list *models.CustomList) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	return nil
}

// GetByID loads the list row only; used for ownership checks.
func (r *customListRepository) GetByID(ctx context.Context, id string) (*models.CustomList, error) {
	var list models.CustomList
	if err := r.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// GetWithMovies loads the list with its owner and every entry, newest first.
func (r *customListRepository) GetWithMovies(ctx context.Context, id string) (*models.CustomList, error) {
	var list models.CustomList
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Movies", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at DESC")
		}).
		First(&list, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListByOwner returns the user's lists, most recently updated first, each with
// up to previewSize of its latest movies.
func (r *customListRepository) ListByOwner(ctx context.Context, userID string, previewSize int) ([]ListWithCount, error) {
	db := r.db.WithContext(ctx)

	var lists []models.CustomList
	if err := db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("list custom lists: %w", err)
	}
	if len(lists) == 0 {
		return []ListWithCount{}, nil
	}

	ids := make([]string, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}

	var entries []models.CustomListMovie
	if err := db.Where("list_id IN ?", ids).Order("added_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list custom list movies: %w", err)
	}

	counts := make(map[string]int64, len(lists))
	previews := make(map[string][]models.CustomListMovie, len(lists))
	for _, e := range entries {
		counts[e.ListID]++
		if len(previews[e.ListID]) < previewSize {
			previews[e.ListID] = append(previews[e.ListID], e)
		}
	}

	out := make([]ListWithCount, 0, len(lists))
	for _, l := range lists {
		l.Movies = previews[l.ID]
		if l.Movies == nil {
			l.Movies = []models.CustomListMovie{}
		}
		out = append(out, ListWithCount{List: l, MovieCount: counts[l.ID]})
	}
	return out, nil
}

func (r *customListRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.CustomList, error) {
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&models.CustomList{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, fmt.Errorf("update list: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the list and its entries together. Entries are deleted
// explicitly so the outcome does not depend on foreign key support.
func (r *customListRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&models.CustomListMovie{}).Error; err != nil {
			return fmt.Errorf("delete list movies: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.CustomList{})
		if result.Error != nil {
			return fmt.Errorf("delete list: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddMovie inserts an entry and bumps the list's updated_at. A movie already
// in the list yields ErrDuplicate and changes nothing.
func (r *customListRepository) AddMovie(ctx context.Context, entry *models.CustomListMovie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.CustomListMovie{}).
			Where("list_id = ? AND movie_id = ?", entry.ListID, entry.MovieID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("check list movie: %w", err)
		}
		if existing > 0 {
			return ErrDuplicate
		}

		if err := tx.Create(entry).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("add list movie: %w", err)
		}

		return tx.Model(&models.CustomList{}).
			Where("id = ?", entry.ListID).
			UpdateColumn("updated_at", time.Now()).Error
	})
}

func (r *customListRepository) RemoveMovie(ctx context.Context, listID string, movieID int64) error {
	result := r.db.WithContext(ctx).
		Where("list_id = ? AND movie_id = ?", listID, movieID).
		Delete(&models.CustomListMovie{})
	if result.Error != nil {
		return fmt.Errorf("remove list movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customListRepository) CountMovies(ctx context.Context, listID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomListMovie{}).Where("list_id = ?", listID).Count(&count).Error
	return count, err
}
