package handler

import (
	"net/http"
	"strconv"

	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/middleware"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating-related routes
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", middleware.RequireAuth(), h.CreateOrUpdate)
	rg.GET("/me", middleware.RequireAuth(), h.GetUserRating)
}

// CreateOrUpdate creates or replaces the caller's rating
// POST /api/ratings
func (h *RatingHandler) CreateOrUpdate(c *gin.Context) {
	var req dto.CreateRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rating, err := h.ratingService.RateMovie(ctx, middleware.CurrentUserID(c), req.MovieID, req.Rating)
	if err != nil {
		respondError(c, err, "save rating")
		return
	}
	c.JSON(http.StatusOK, rating)
}

// GetUserRating retrieves the caller's rating for a movie
// GET /api/ratings/me?movieId=
func (h *RatingHandler) GetUserRating(c *gin.Context) {
	movieID, ok := queryMovieID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rating, err := h.ratingService.GetUserRating(ctx, middleware.CurrentUserID(c), movieID)
	if err != nil {
		respondError(c, err, "load rating")
		return
	}
	c.JSON(http.StatusOK, rating)
}

// List returns the community rating of a movie
// GET /api/ratings?movieId=
func (h *RatingHandler) List(c *gin.Context) {
	movieID, ok := queryMovieID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ratings, err := h.ratingService.GetMovieRatings(ctx, movieID)
	if err != nil {
		respondError(c, err, "load ratings")
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// queryMovieID reads a required positive movieId query parameter and answers
// 400 when it is missing or malformed.
func queryMovieID(c *gin.Context) (int64, bool) {
	movieID, err := strconv.ParseInt(c.Query("movieId"), 10, 64)
	if err != nil || movieID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movieId is required"})
		return 0, false
	}
	return movieID, true
}
