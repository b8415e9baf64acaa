package handler

import (
	"log/slog"
	"net/http"
	"time"

	"cinelog/internal/config"
	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  service.AuthService
	cookieName   string
	cookieSecure bool
	accessTTL    time.Duration
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieName:   cfg.SessionCookieName,
		cookieSecure: cfg.CookieSecure,
		accessTTL:    cfg.AccessTokenTTL,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.RefreshToken)
	rg.POST("/logout", h.Logout)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "create account")
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	accessToken, refreshToken, user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "log in")
		return
	}

	h.setSessionCookie(c, accessToken)
	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.accessTTL.Seconds()),
		User:         dto.FromModelToUserResponse(user),
	})
}

// RefreshToken rotates both tokens and renews the session cookie.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	newAccessToken, newRefreshToken, err := h.authService.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		respondError(c, err, "refresh session")
		return
	}

	h.setSessionCookie(c, newAccessToken)
	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.accessTTL.Seconds()),
	})
}

// Logout always succeeds so it cannot be used to probe tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.Logout(ctx, req.RefreshToken); err != nil {
		slog.Warn("revoke refresh token", "error", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.accessTTL.Seconds()), "/", "", h.cookieSecure, true)
}
