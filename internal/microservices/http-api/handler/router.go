package handler

import (
	"net/http"

	"cinelog/internal/config"
	"cinelog/internal/microservices/http-api/middleware"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Services is everything the HTTP API is built from.
type Services struct {
	Auth     service.AuthService
	Movies   service.MovieService
	Ratings  service.RatingService
	Reviews  service.ReviewService
	Lists    service.CustomListService
	Statuses service.UserListService
	Users    service.UserService
}

// NewRouter builds the gin engine with every API route mounted under /api.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive"})
	})

	api := r.Group("/api")
	api.Use(middleware.SessionMiddleware(svc.Auth, cfg.SessionCookieName))

	NewAuthHandler(svc.Auth, cfg).RegisterRoutes(api.Group("/auth"))
	NewMovieHandler(svc.Movies).RegisterRoutes(api.Group("/movies"))
	NewRatingHandler(svc.Ratings).RegisterRoutes(api.Group("/ratings"))
	NewReviewHandler(svc.Reviews).RegisterRoutes(api.Group("/reviews"))
	NewCustomListHandler(svc.Lists).RegisterRoutes(api.Group("/custom-lists"))
	NewUserHandler(svc.Statuses, svc.Users).RegisterRoutes(api.Group("/user"))

	return r
}
