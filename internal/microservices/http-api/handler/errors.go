package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cinelog/internal/catalog/tmdb"
	"cinelog/internal/microservices/http-api/repository"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

// requestContext bounds store and catalog calls made on behalf of c.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// respondError writes the status for err. Unexpected errors are logged and
// answered with a generic message naming the failed action.
func respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateEntry):
		c.JSON(http.StatusBadRequest, gin.H{"error": "movie already in list"})
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, tmdb.ErrNotFound),
		repository.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed",
			"action", action,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

// badRequest answers binding and parsing failures.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
