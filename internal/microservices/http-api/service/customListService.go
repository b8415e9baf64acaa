package service

import (
	"context"
	"strings"

	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/models"
	"cinelog/internal/microservices/http-api/repository"
)

// listPreviewSize is how many movies the owner's overview shows per list.
const listPreviewSize = 4

type CustomListService interface {
	CreateList(ctx context.Context, userID string, req dto.CreateCustomListDTO) (*dto.CustomListResponse, error)
	GetList(ctx context.Context, listID, viewerID string) (*dto.CustomListResponse, error)
	ListOwnedLists(ctx context.Context, userID string) ([]dto.CustomListResponse, error)
	UpdateList(ctx context.Context, userID, listID string, req dto.UpdateCustomListDTO) (*dto.CustomListResponse, error)
	DeleteList(ctx context.Context, userID, listID string) error
	AddMovie(ctx context.Context, userID string, req dto.AddListMovieDTO) (*models.CustomListMovie, error)
	RemoveMovie(ctx context.Context, userID, listID string, movieID int64) error
}

type customListService struct {
	repo repository.CustomListRepository
}

func NewCustomListService(repo repository.CustomListRepository) CustomListService {
	return &customListService{repo: repo}
}

func (s *customListService) CreateList(ctx context.Context, userID string, req dto.CreateCustomListDTO) (*dto.CustomListResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}

	list := &models.CustomList{
		UserID:      userID,
		Name:        name,
		Description: trimmedOrNil(req.Description),
		IsPublic:    req.IsPublic,
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, err
	}
	return dto.FromModelToCustomListResponse(list, 0), nil
}

// GetList returns a list with all its movies. Private lists are visible to
// their owner only; viewerID is empty for anonymous requests.
func (s *customListService) GetList(ctx context.Context, listID, viewerID string) (*dto.CustomListResponse, error) {
	if !validID(listID) {
		return nil, notFound(repository.ErrNotFound, "list not found")
	}
	list, err := s.repo.GetWithMovies(ctx, listID)
	if err != nil {
		return nil, notFound(err, "list not found")
	}
	if !list.IsPublic && list.UserID != viewerID {
		return nil, ErrUnauthorized
	}
	return dto.FromModelToCustomListResponse(list, int64(len(list.Movies))), nil
}

func (s *customListService) ListOwnedLists(ctx context.Context, userID string) ([]dto.CustomListResponse, error) {
	lists, err := s.repo.ListByOwner(ctx, userID, listPreviewSize)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomListResponse, 0, len(lists))
	for i := range lists {
		out = append(out, *dto.FromModelToCustomListResponse(&lists[i].List, lists[i].MovieCount))
	}
	return out, nil
}

// UpdateList applies only the fields present in req.
func (s *customListService) UpdateList(ctx context.Context, userID, listID string, req dto.UpdateCustomListDTO) (*dto.CustomListResponse, error) {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = trimmedOrNil(req.Description)
	}
	if req.IsPublic != nil {
		fields["is_public"] = *req.IsPublic
	}

	if _, err := s.repo.Update(ctx, listID, fields); err != nil {
		return nil, notFound(err, "list not found")
	}
	list, err := s.repo.GetWithMovies(ctx, listID)
	if err != nil {
		return nil, notFound(err, "list not found")
	}
	return dto.FromModelToCustomListResponse(list, int64(len(list.Movies))), nil
}

func (s *customListService) DeleteList(ctx context.Context, userID, listID string) error {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, listID); err != nil {
		return notFound(err, "list not found")
	}
	return nil
}

// AddMovie appends a movie to one of the caller's lists. A movie can appear
// in a list once.
func (s *customListService) AddMovie(ctx context.Context, userID string, req dto.AddListMovieDTO) (*models.CustomListMovie, error) {
	title := strings.TrimSpace(req.MovieTitle)
	if req.MovieID <= 0 || title == "" {
		return nil, invalidInput("listId, movieId and movieTitle are required")
	}
	if _, err := s.ownedList(ctx, userID, req.ListID); err != nil {
		return nil, err
	}

	entry := &models.CustomListMovie{
		ListID:      req.ListID,
		MovieID:     req.MovieID,
		MovieTitle:  title,
		MoviePoster: trimmedOrNil(req.MoviePoster),
	}
	if err := s.repo.AddMovie(ctx, entry); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return entry, nil
}

func (s *customListService) RemoveMovie(ctx context.Context, userID, listID string, movieID int64) error {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}
	if err := s.repo.RemoveMovie(ctx, listID, movieID); err != nil {
		return notFound(err, "movie not in list")
	}
	return nil
}

// ownedList loads a list for mutation and checks the caller owns it.
func (s *customListService) ownedList(ctx context.Context, userID, listID string) (*models.CustomList, error) {
	if !validID(listID) {
		return nil, notFound(repository.ErrNotFound, "list not found")
	}
	list, err := s.repo.GetByID(ctx, listID)
	if err != nil {
		return nil, notFound(err, "list not found")
	}
	if list.UserID != userID {
		return nil, ErrUnauthorized
	}
	return list, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
