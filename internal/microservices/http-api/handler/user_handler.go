package handler

import (
	"net/http"

	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/middleware"
	"cinelog/internal/microservices/http-api/repository"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the caller's own data: status lists and profile. Every
// route requires a session.
type UserHandler struct {
	lists   service.UserListService
	profile service.UserService
}

func NewUserHandler(lists service.UserListService, profile service.UserService) *UserHandler {
	return &UserHandler{lists: lists, profile: profile}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.RequireAuth())
	rg.GET("/lists", h.ListStatuses)
	rg.POST("/lists", h.SetStatus)
	rg.DELETE("/lists", h.RemoveStatus)
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.UpdateProfile)
}

// ListStatuses GET /api/user/lists?movieId=&status=
func (h *UserHandler) ListStatuses(c *gin.Context) {
	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	entries, err := h.lists.ListStatuses(ctx, middleware.CurrentUserID(c), repository.StatusFilter{MovieID: q.MovieID, Status: q.Status})
	if err != nil {
		respondError(c, err, "load lists")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *UserHandler) SetStatus(c *gin.Context) {
	var req dto.UpsertStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	entry, err := h.lists.SetStatus(ctx, middleware.CurrentUserID(c), req.MovieID, req.Status)
	if err != nil {
		respondError(c, err, "update list")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// RemoveStatus DELETE /api/user/lists?movieId=&status=
func (h *UserHandler) RemoveStatus(c *gin.Context) {
	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.lists.RemoveStatus(ctx, middleware.CurrentUserID(c), q.MovieID, q.Status); err != nil {
		respondError(c, err, "update list")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.profile.GetProfile(ctx, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err, "load profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.profile.UpdateProfile(ctx, middleware.CurrentUserID(c), req)
	if err != nil {
		respondError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}
