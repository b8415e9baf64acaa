package service

import (
	"context"
	"strings"

	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/models"
	"cinelog/internal/microservices/http-api/repository"
)

const profileRecentReviews = 5

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	statusRepo repository.UserMovieListRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
	statusRepo repository.UserMovieListRepository,
) UserService {
	return &userService{userRepo: userRepo, reviewRepo: reviewRepo, statusRepo: statusRepo}
}

// GetProfile returns the user with their latest reviews and status lists.
func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}

	reviews, err := s.reviewRepo.RecentByUser(ctx, userID, profileRecentReviews)
	if err != nil {
		return nil, err
	}
	entries, err := s.statusRepo.List(ctx, userID, repository.StatusFilter{})
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileResponse{
		User:          dto.FromModelToUserResponse(user),
		RecentReviews: dto.FromModelsToReviewResponses(reviews),
		Favorites:     []models.UserMovieList{},
		WantToWatch:   []models.UserMovieList{},
		Watched:       []models.UserMovieList{},
	}
	for _, e := range entries {
		switch e.Status {
		case models.StatusFavorite:
			profile.Favorites = append(profile.Favorites, e)
		case models.StatusWantToWatch:
			profile.WantToWatch = append(profile.WantToWatch, e)
		case models.StatusWatched:
			profile.Watched = append(profile.Watched, e)
		}
	}
	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileDTO) (*dto.UserResponse, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
		fields["name"] = name
	}
	if req.Bio != nil {
		fields["bio"] = trimmedOrNil(req.Bio)
	}
	if req.Image != nil {
		fields["image"] = trimmedOrNil(req.Image)
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, fields)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return dto.FromModelToUserResponse(user), nil
}
