package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinelog/internal/catalog/tmdb"
	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/repository"
	"cinelog/internal/microservices/http-api/service"
	"cinelog/internal/testsupport"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiClient drives the full router against real services, an in-memory
// database and the built-in catalog.
type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testsupport.NewDB(t)
	cfg := testsupport.NewConfig(t)

	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	statusRepo := repository.NewUserMovieListRepository(db)
	ratings := service.NewRatingService(repository.NewRatingRepository(db))

	router := NewRouter(cfg, Services{
		Auth:     service.NewAuthService(userRepo, repository.NewRefreshTokenRepository(db), cfg),
		Movies:   service.NewMovieService(tmdb.NewFallback(), ratings, reviewRepo, cfg.TMDBImageURL),
		Ratings:  ratings,
		Reviews:  service.NewReviewService(reviewRepo),
		Lists:    service.NewCustomListService(repository.NewCustomListRepository(db)),
		Statuses: service.NewUserListService(statusRepo),
		Users:    service.NewUserService(userRepo, reviewRepo, statusRepo),
	})
	return &apiClient{t: t, router: router}
}

func (a *apiClient) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signup registers and logs in a user, returning the access token.
func (a *apiClient) signup(name string) string {
	a.t.Helper()
	email := fmt.Sprintf("%s@example.com", name)
	w := a.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Name: name, Email: email, Password: "password123"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "password123"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var auth dto.AuthResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &auth))
	return auth.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCheckConn(t *testing.T) {
	api := newAPI(t)
	w := api.do(http.MethodGet, "/check-conn", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCustomListVisibilityOverHTTP(t *testing.T) {
	api := newAPI(t)
	alice := api.signup("alice")
	bob := api.signup("bob")

	w := api.do(http.MethodPost, "/api/custom-lists", alice, dto.CreateCustomListDTO{Name: "Favorites"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	list := decode[dto.CustomListResponse](t, w)

	w = api.do(http.MethodPost, "/api/custom-lists/movies", alice, dto.AddListMovieDTO{ListID: list.ID, MovieID: 550, MovieTitle: "Fight Club"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/api/custom-lists/movies", alice, dto.AddListMovieDTO{ListID: list.ID, MovieID: 550, MovieTitle: "Fight Club"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/custom-lists/"+list.ID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.CustomListResponse](t, w)
	require.Len(t, got.Movies, 1)
	assert.Equal(t, "Fight Club", got.Movies[0].MovieTitle)

	w = api.do(http.MethodGet, "/api/custom-lists/"+list.ID, bob, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = api.do(http.MethodGet, "/api/custom-lists/"+list.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	public := true
	w = api.do(http.MethodPut, "/api/custom-lists/"+list.ID, bob, dto.UpdateCustomListDTO{IsPublic: &public})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = api.do(http.MethodPut, "/api/custom-lists/"+list.ID, alice, dto.UpdateCustomListDTO{IsPublic: &public})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/api/custom-lists/"+list.ID, bob, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodDelete, fmt.Sprintf("/api/custom-lists/movies?listId=%s&movieId=550", list.ID), alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodDelete, fmt.Sprintf("/api/custom-lists/movies?listId=%s&movieId=550", list.ID), alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/custom-lists/00000000-0000-4000-8000-000000000000", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRatingsAndMovieDetailOverHTTP(t *testing.T) {
	api := newAPI(t)
	alice := api.signup("alice")

	w := api.do(http.MethodPost, "/api/ratings", "", dto.CreateRatingDTO{MovieID: 155, Rating: 4})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/api/ratings", alice, dto.CreateRatingDTO{MovieID: 155, Rating: 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = api.do(http.MethodPost, "/api/ratings", alice, dto.CreateRatingDTO{MovieID: 155, Rating: 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/api/ratings", alice, dto.CreateRatingDTO{MovieID: 155, Rating: 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/ratings?movieId=155", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[dto.MovieRatingsResponse](t, w)
	require.NotNil(t, summary.Average)
	assert.InDelta(t, 2.0, *summary.Average, 1e-9)
	assert.Equal(t, int64(1), summary.Count)

	w = api.do(http.MethodGet, "/api/ratings/me?movieId=550", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(http.MethodGet, "/api/ratings?movieId=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/movies/155", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "The Dark Knight", detail["title"])
	assert.InDelta(t, 2.0, detail["communityRating"], 1e-9)
	assert.EqualValues(t, 1, detail["ratingCount"])
	assert.Contains(t, detail["posterUrl"], "/w500/")

	w = api.do(http.MethodGet, "/api/movies/424242", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(http.MethodGet, "/api/movies/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogRoutesOverHTTP(t *testing.T) {
	api := newAPI(t)

	w := api.do(http.MethodGet, "/api/movies?type=trending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[tmdb.MoviePage](t, w)
	assert.Len(t, page.Results, 10)

	w = api.do(http.MethodGet, "/api/movies/search?q=GODFATHER", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[tmdb.MoviePage](t, w)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(238), page.Results[0].ID)

	w = api.do(http.MethodGet, "/api/movies/search?year=19x9", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/movies/genres", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	genres := decode[tmdb.GenreList](t, w)
	assert.NotEmpty(t, genres.Genres)
}

func TestReviewsLikesAndProfileOverHTTP(t *testing.T) {
	api := newAPI(t)
	alice := api.signup("alice")
	bob := api.signup("bob")

	w := api.do(http.MethodPost, "/api/reviews", bob, dto.CreateReviewDTO{MovieID: 550, Content: "You do not talk about it.", Rating: 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	review := decode[dto.ReviewResponse](t, w)

	w = api.do(http.MethodPost, "/api/reviews", bob, dto.CreateReviewDTO{MovieID: 550, Content: "short", Rating: 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/reviews/"+review.ID+"/like", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":true}`, w.Body.String())
	w = api.do(http.MethodPost, "/api/reviews/"+review.ID+"/like", alice, nil)
	assert.JSONEq(t, `{"liked":false}`, w.Body.String())
	w = api.do(http.MethodPost, "/api/reviews/not-a-review/like", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/reviews?movieId=550", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reviews := decode[dto.PaginatedReviewResponse](t, w)
	assert.Equal(t, 1, reviews.Total)
	require.Len(t, reviews.Data, 1)
	assert.Equal(t, 0, reviews.Data[0].Likes)

	w = api.do(http.MethodPost, "/api/user/lists", bob, dto.UpsertStatusDTO{MovieID: 550, Status: "WATCHED"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = api.do(http.MethodPost, "/api/user/lists", bob, dto.UpsertStatusDTO{MovieID: 550, Status: "LOVED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = api.do(http.MethodDelete, "/api/user/lists?movieId=550&status=FAVORITE", bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/user/profile", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[dto.ProfileResponse](t, w)
	assert.Equal(t, "bob", profile.User.Name)
	assert.Len(t, profile.RecentReviews, 1)
	assert.Len(t, profile.Watched, 1)

	w = api.do(http.MethodGet, "/api/user/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
