package service

import (
	"context"
	"strings"

	"cinelog/internal/catalog/tmdb"
	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/models"
	"cinelog/internal/microservices/http-api/repository"

	"golang.org/x/sync/errgroup"
)

// detailReviewCount is how many of the newest reviews the movie page embeds.
const detailReviewCount = 10

// Movie list types accepted by ListMovies.
const (
	ListPopular    = "popular"
	ListTrending   = "trending"
	ListTopRated   = "top_rated"
	ListNowPlaying = "now_playing"
)

type MovieService interface {
	ListMovies(ctx context.Context, listType string, page int) (*tmdb.MoviePage, error)
	SearchMovies(ctx context.Context, q dto.MovieSearchQuery) (*tmdb.MoviePage, error)
	Genres(ctx context.Context) (*tmdb.GenreList, error)
	GetMovieDetail(ctx context.Context, movieID int64) (*dto.MovieDetailResponse, error)
}

type movieService struct {
	catalog    tmdb.Catalog
	ratings    RatingService
	reviewRepo repository.ReviewRepository
	imageBase  string
}

func NewMovieService(catalog tmdb.Catalog, ratings RatingService, reviewRepo repository.ReviewRepository, imageBase string) MovieService {
	return &movieService{catalog: catalog, ratings: ratings, reviewRepo: reviewRepo, imageBase: imageBase}
}

// ListMovies returns one of the curated catalog pages. Unknown types fall
// back to popular.
func (s *movieService) ListMovies(ctx context.Context, listType string, page int) (*tmdb.MoviePage, error) {
	switch listType {
	case ListTrending:
		return s.catalog.Trending(ctx, page)
	case ListTopRated:
		return s.catalog.TopRated(ctx, page)
	case ListNowPlaying:
		return s.catalog.NowPlaying(ctx, page)
	default:
		return s.catalog.Popular(ctx, page)
	}
}

// SearchMovies dispatches on the most specific filter present: a text query,
// then a genre, then the discover filters.
func (s *movieService) SearchMovies(ctx context.Context, q dto.MovieSearchQuery) (*tmdb.MoviePage, error) {
	if query := strings.TrimSpace(q.Query); query != "" {
		return s.catalog.Search(ctx, query, q.Page)
	}
	if q.Genre > 0 {
		return s.catalog.ByGenre(ctx, q.Genre, q.Page, q.Year)
	}

	gte, lte := tmdb.YearRange(q.Year)
	return s.catalog.Discover(ctx, tmdb.DiscoverParams{
		Page:           q.Page,
		SortBy:         q.SortBy,
		ReleaseDateGTE: gte,
		ReleaseDateLTE: lte,
		VoteAverageGTE: q.MinRating,
		VoteAverageLTE: q.MaxRating,
		VoteCountGTE:   tmdb.EffectiveMinVotes(q.MinVotes, q.SortBy),
	})
}

func (s *movieService) Genres(ctx context.Context) (*tmdb.GenreList, error) {
	return s.catalog.Genres(ctx)
}

// GetMovieDetail merges catalog data with community activity. The four
// lookups run concurrently and any failure fails the whole request.
func (s *movieService) GetMovieDetail(ctx context.Context, movieID int64) (*dto.MovieDetailResponse, error) {
	if movieID <= 0 {
		return nil, invalidInput("invalid movie id")
	}

	var (
		details *tmdb.MovieDetails
		credits *tmdb.Credits
		average *float64
		count   int64
		reviews []models.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = s.catalog.MovieDetails(gctx, movieID)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = s.catalog.MovieCredits(gctx, movieID)
		return err
	})
	g.Go(func() error {
		var err error
		average, count, err = s.ratings.ComputeAverageRating(gctx, movieID)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, _, err = s.reviewRepo.ListByMovie(gctx, movieID, 1, detailReviewCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, notFound(err, "movie not found")
	}

	return &dto.MovieDetailResponse{
		MovieDetails:    *details,
		PosterURL:       tmdb.ImageURL(s.imageBase, details.PosterPath, tmdb.SizePoster),
		BackdropURL:     tmdb.ImageURL(s.imageBase, details.BackdropPath, tmdb.SizeOriginal),
		Credits:         credits,
		CommunityRating: average,
		RatingCount:     count,
		Reviews:         dto.FromModelsToReviewResponses(reviews),
	}, nil
}
