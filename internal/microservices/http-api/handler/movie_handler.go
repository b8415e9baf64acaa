package handler

import (
	"net/http"
	"strconv"

	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// MovieHandler serves catalog data. All routes are public.
type MovieHandler struct {
	movieService service.MovieService
}

func NewMovieHandler(movieService service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/genres", h.Genres)
	rg.GET("/:id", h.Detail)
}

// List GET /api/movies?type=popular&page=1
func (h *MovieHandler) List(c *gin.Context) {
	var q dto.MovieListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.movieService.ListMovies(ctx, q.Type, q.Page)
	if err != nil {
		respondError(c, err, "load movies")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Search GET /api/movies/search
func (h *MovieHandler) Search(c *gin.Context) {
	var q dto.MovieSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.movieService.SearchMovies(ctx, q)
	if err != nil {
		respondError(c, err, "search movies")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *MovieHandler) Genres(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	genres, err := h.movieService.Genres(ctx)
	if err != nil {
		respondError(c, err, "load genres")
		return
	}
	c.JSON(http.StatusOK, genres)
}

// Detail GET /api/movies/:id
func (h *MovieHandler) Detail(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || movieID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	detail, err := h.movieService.GetMovieDetail(ctx, movieID)
	if err != nil {
		respondError(c, err, "load movie details")
		return
	}
	c.JSON(http.StatusOK, detail)
}
