package service

import (
	"context"

	"cinelog/internal/microservices/http-api/models"
	"cinelog/internal/microservices/http-api/repository"
)

// UserListService manages the FAVORITE / WANT_TO_WATCH / WATCHED tags.
type UserListService interface {
	SetStatus(ctx context.Context, userID string, movieID int64, status models.ListStatus) (*models.UserMovieList, error)
	ListStatuses(ctx context.Context, userID string, filter repository.StatusFilter) ([]models.UserMovieList, error)
	RemoveStatus(ctx context.Context, userID string, movieID int64, status models.ListStatus) error
}

type userListService struct {
	repo repository.UserMovieListRepository
}

func NewUserListService(repo repository.UserMovieListRepository) UserListService {
	return &userListService{repo: repo}
}

// SetStatus is idempotent: tagging a movie twice keeps a single entry.
func (s *userListService) SetStatus(ctx context.Context, userID string, movieID int64, status models.ListStatus) (*models.UserMovieList, error) {
	if movieID <= 0 {
		return nil, invalidInput("movieId is required")
	}
	if !status.Valid() {
		return nil, invalidInput("status must be FAVORITE, WANT_TO_WATCH or WATCHED")
	}
	return s.repo.Upsert(ctx, userID, movieID, status)
}

func (s *userListService) ListStatuses(ctx context.Context, userID string, filter repository.StatusFilter) ([]models.UserMovieList, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalidInput("unknown status")
	}
	return s.repo.List(ctx, userID, filter)
}

func (s *userListService) RemoveStatus(ctx context.Context, userID string, movieID int64, status models.ListStatus) error {
	if movieID <= 0 || !status.Valid() {
		return invalidInput("movieId and status are required")
	}
	if err := s.repo.Delete(ctx, userID, movieID, status); err != nil {
		return notFound(err, "movie not in list")
	}
	return nil
}
