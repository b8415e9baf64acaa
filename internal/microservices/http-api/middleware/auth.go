package middleware

import (
	"net/http"
	"strings"

	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by SessionMiddleware.
const (
	ContextUserID = "userID"
	ContextClaims = "claims"
	ContextEmail  = "email"
)

// TokenValidator is the part of service.AuthService the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// SessionMiddleware resolves the caller from an "Authorization: Bearer" header
// or, failing that, the session cookie. It never rejects a request; routes
// that need a session add RequireAuth after it.
func SessionMiddleware(validator TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" && cookieName != "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			// a stale cookie is treated as no session
			c.Next()
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// RequireAuth answers 401 unless SessionMiddleware found a valid session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// bearerToken extracts the token from "Bearer <token>"
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
