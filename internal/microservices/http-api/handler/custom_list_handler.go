package handler

import (
	"net/http"

	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/middleware"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CustomListHandler struct {
	svc service.CustomListService
}

func NewCustomListHandler(svc service.CustomListService) *CustomListHandler {
	return &CustomListHandler{svc: svc}
}

func (h *CustomListHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", middleware.RequireAuth(), h.ListOwned)
	rg.POST("", middleware.RequireAuth(), h.Create)
	rg.POST("/movies", middleware.RequireAuth(), h.AddMovie)
	rg.DELETE("/movies", middleware.RequireAuth(), h.RemoveMovie)

	// public lists are readable without a session
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", middleware.RequireAuth(), h.Update)
	rg.DELETE("/:id", middleware.RequireAuth(), h.Delete)
}

func (h *CustomListHandler) ListOwned(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	lists, err := h.svc.ListOwnedLists(ctx, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err, "load lists")
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h *CustomListHandler) Create(c *gin.Context) {
	var req dto.CreateCustomListDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.CreateList(ctx, middleware.CurrentUserID(c), req)
	if err != nil {
		respondError(c, err, "create list")
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *CustomListHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.GetList(ctx, c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err, "load list")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CustomListHandler) Update(c *gin.Context) {
	var req dto.UpdateCustomListDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.UpdateList(ctx, middleware.CurrentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "update list")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CustomListHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteList(ctx, middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err, "delete list")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// AddMovie POST /api/custom-lists/movies
func (h *CustomListHandler) AddMovie(c *gin.Context) {
	var req dto.AddListMovieDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	entry, err := h.svc.AddMovie(ctx, middleware.CurrentUserID(c), req)
	if err != nil {
		respondError(c, err, "add movie to list")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// RemoveMovie DELETE /api/custom-lists/movies?listId=&movieId=
func (h *CustomListHandler) RemoveMovie(c *gin.Context) {
	var q dto.RemoveListMovieQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.RemoveMovie(ctx, middleware.CurrentUserID(c), q.ListID, q.MovieID); err != nil {
		respondError(c, err, "remove movie from list")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
