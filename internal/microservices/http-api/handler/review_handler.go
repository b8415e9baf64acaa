package handler

import (
	"net/http"
	"strconv"

	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/middleware"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", middleware.RequireAuth(), h.Submit)
	rg.POST("/:id/like", middleware.RequireAuth(), h.ToggleLike)
}

// Submit creates or replaces the caller's review
// POST /api/reviews
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.reviewService.SubmitReview(ctx, middleware.CurrentUserID(c), req)
	if err != nil {
		respondError(c, err, "save review")
		return
	}
	c.JSON(http.StatusOK, review)
}

// List retrieves a movie's reviews, newest first
// GET /api/reviews?movieId=&page=1&page_size=10
func (h *ReviewHandler) List(c *gin.Context) {
	movieID, ok := queryMovieID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, err := h.reviewService.GetMovieReviews(ctx, movieID, page, pageSize)
	if err != nil {
		respondError(c, err, "load reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ToggleLike likes or unlikes a review
// POST /api/reviews/:id/like
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	liked, err := h.reviewService.ToggleLike(ctx, middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "update like")
		return
	}
	c.JSON(http.StatusOK, dto.LikeResponse{Liked: liked})
}
