package client

// http_client.go = typed wrapper around the cinelog JSON API.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinelog/internal/catalog/tmdb"
	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends body as JSON and decodes a 2xx response into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Auth

func (c *HTTPClient) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var auth dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *HTTPClient) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	var auth dto.AuthResponse
	body := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, dto.LogoutRequest{RefreshToken: refreshToken}, nil)
}

// Catalog

func (c *HTTPClient) ListMovies(ctx context.Context, listType string, page int) (*tmdb.MoviePage, error) {
	q := url.Values{}
	if listType != "" {
		q.Set("type", listType)
	}
	setPage(q, page)

	var movies tmdb.MoviePage
	if err := c.do(ctx, http.MethodGet, "/api/movies", q, nil, &movies); err != nil {
		return nil, err
	}
	return &movies, nil
}

// SearchMovies passes the filters through as query parameters; see
// dto.MovieSearchQuery for the names the server accepts.
func (c *HTTPClient) SearchMovies(ctx context.Context, filters url.Values) (*tmdb.MoviePage, error) {
	var movies tmdb.MoviePage
	if err := c.do(ctx, http.MethodGet, "/api/movies/search", filters, nil, &movies); err != nil {
		return nil, err
	}
	return &movies, nil
}

func (c *HTTPClient) Genres(ctx context.Context) (*tmdb.GenreList, error) {
	var genres tmdb.GenreList
	if err := c.do(ctx, http.MethodGet, "/api/movies/genres", nil, nil, &genres); err != nil {
		return nil, err
	}
	return &genres, nil
}

func (c *HTTPClient) GetMovie(ctx context.Context, movieID int64) (*dto.MovieDetailResponse, error) {
	var detail dto.MovieDetailResponse
	if err := c.do(ctx, http.MethodGet, "/api/movies/"+strconv.FormatInt(movieID, 10), nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Ratings

func (c *HTTPClient) RateMovie(ctx context.Context, movieID int64, rating int) (*models.MovieRating, error) {
	var result models.MovieRating
	body := dto.CreateRatingDTO{MovieID: movieID, Rating: rating}
	if err := c.do(ctx, http.MethodPost, "/api/ratings", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) MovieRatings(ctx context.Context, movieID int64) (*dto.MovieRatingsResponse, error) {
	var result dto.MovieRatingsResponse
	if err := c.do(ctx, http.MethodGet, "/api/ratings", movieQuery(movieID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) MyRating(ctx context.Context, movieID int64) (*models.MovieRating, error) {
	var result models.MovieRating
	if err := c.do(ctx, http.MethodGet, "/api/ratings/me", movieQuery(movieID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reviews

func (c *HTTPClient) SubmitReview(ctx context.Context, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	var review dto.ReviewResponse
	if err := c.do(ctx, http.MethodPost, "/api/reviews", nil, req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *HTTPClient) MovieReviews(ctx context.Context, movieID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	q := movieQuery(movieID)
	setPage(q, page)
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	var result dto.PaginatedReviewResponse
	if err := c.do(ctx, http.MethodGet, "/api/reviews", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ToggleLike(ctx context.Context, reviewID string) (bool, error) {
	var result dto.LikeResponse
	if err := c.do(ctx, http.MethodPost, "/api/reviews/"+url.PathEscape(reviewID)+"/like", nil, nil, &result); err != nil {
		return false, err
	}
	return result.Liked, nil
}

// Custom lists

func (c *HTTPClient) MyLists(ctx context.Context) ([]dto.CustomListResponse, error) {
	var lists []dto.CustomListResponse
	if err := c.do(ctx, http.MethodGet, "/api/custom-lists", nil, nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *HTTPClient) CreateList(ctx context.Context, req dto.CreateCustomListDTO) (*dto.CustomListResponse, error) {
	var list dto.CustomListResponse
	if err := c.do(ctx, http.MethodPost, "/api/custom-lists", nil, req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *HTTPClient) GetList(ctx context.Context, listID string) (*dto.CustomListResponse, error) {
	var list dto.CustomListResponse
	if err := c.do(ctx, http.MethodGet, "/api/custom-lists/"+url.PathEscape(listID), nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *HTTPClient) UpdateList(ctx context.Context, listID string, req dto.UpdateCustomListDTO) (*dto.CustomListResponse, error) {
	var list dto.CustomListResponse
	if err := c.do(ctx, http.MethodPut, "/api/custom-lists/"+url.PathEscape(listID), nil, req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *HTTPClient) DeleteList(ctx context.Context, listID string) error {
	return c.do(ctx, http.MethodDelete, "/api/custom-lists/"+url.PathEscape(listID), nil, nil, nil)
}

func (c *HTTPClient) AddToList(ctx context.Context, req dto.AddListMovieDTO) (*models.CustomListMovie, error) {
	var entry models.CustomListMovie
	if err := c.do(ctx, http.MethodPost, "/api/custom-lists/movies", nil, req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) RemoveFromList(ctx context.Context, listID string, movieID int64) error {
	q := movieQuery(movieID)
	q.Set("listId", listID)
	return c.do(ctx, http.MethodDelete, "/api/custom-lists/movies", q, nil, nil)
}

// Status lists and profile

func (c *HTTPClient) SetStatus(ctx context.Context, movieID int64, status models.ListStatus) (*models.UserMovieList, error) {
	var entry models.UserMovieList
	body := dto.UpsertStatusDTO{MovieID: movieID, Status: status}
	if err := c.do(ctx, http.MethodPost, "/api/user/lists", nil, body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Statuses lists the caller's tagged movies; zero values mean no filter.
func (c *HTTPClient) Statuses(ctx context.Context, movieID int64, status models.ListStatus) ([]models.UserMovieList, error) {
	q := url.Values{}
	if movieID > 0 {
		q = movieQuery(movieID)
	}
	if status != "" {
		q.Set("status", string(status))
	}

	var entries []models.UserMovieList
	if err := c.do(ctx, http.MethodGet, "/api/user/lists", q, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) RemoveStatus(ctx context.Context, movieID int64, status models.ListStatus) error {
	q := movieQuery(movieID)
	q.Set("status", string(status))
	return c.do(ctx, http.MethodDelete, "/api/user/lists", q, nil, nil)
}

func (c *HTTPClient) Profile(ctx context.Context) (*dto.ProfileResponse, error) {
	var profile dto.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req dto.UpdateProfileDTO) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(ctx, http.MethodPut, "/api/user/profile", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func movieQuery(movieID int64) url.Values {
	return url.Values{"movieId": {strconv.FormatInt(movieID, 10)}}
}

func setPage(q url.Values, page int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
}
