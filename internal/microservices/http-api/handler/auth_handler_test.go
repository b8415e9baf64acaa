package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinelog/internal/config"
	"cinelog/internal/microservices/http-api/dto"
	"cinelog/internal/microservices/http-api/models"
	"cinelog/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, *models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(2).(*models.User)
	return args.String(0), args.String(1), user, args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) PruneRefreshTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testConfig() *config.Config {
	return &config.Config{
		SessionCookieName: "cinelog_session",
		CookieSecure:      true,
		AccessTokenTTL:    15 * time.Minute,
	}
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, testConfig())
	router := setupRouter()
	router.POST("/register", handler.Register)

	user := &models.User{ID: "user-123", Name: "Test User", Email: "test@example.com"}
	mockAuthService.On("Register", mock.Anything, "Test User", "test@example.com", "password123").Return(user, nil)

	w := postJSON(router, "/register", dto.RegisterRequest{Name: "Test User", Email: "test@example.com", Password: "password123"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "user-123", response.ID)
	assert.Equal(t, "test@example.com", response.Email)
	assert.NotContains(t, w.Body.String(), "password")
	mockAuthService.AssertExpectations(t)
}

func TestRegister_EmailInUse(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, testConfig())
	router := setupRouter()
	router.POST("/register", handler.Register)

	mockAuthService.On("Register", mock.Anything, "Test User", "test@example.com", "password123").
		Return(nil, service.ErrEmailInUse)

	w := postJSON(router, "/register", dto.RegisterRequest{Name: "Test User", Email: "test@example.com", Password: "password123"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_ValidationErrors(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, testConfig())
	router := setupRouter()
	router.POST("/register", handler.Register)

	for name, body := range map[string]dto.RegisterRequest{
		"short name":     {Name: "A", Email: "a@example.com", Password: "password123"},
		"bad email":      {Name: "Alice", Email: "not-an-email", Password: "password123"},
		"short password": {Name: "Alice", Email: "a@example.com", Password: "12345"},
	} {
		w := postJSON(router, "/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
	mockAuthService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, testConfig())
	router := setupRouter()
	router.POST("/login", handler.Login)

	user := &models.User{ID: "user-123", Name: "Test User", Email: "test@example.com"}
	mockAuthService.On("Login", mock.Anything, "test@example.com", "password123").
		Return("access-token", "refresh-token", user, nil)

	w := postJSON(router, "/login", dto.LoginRequest{Email: "test@example.com", Password: "password123"})

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)

	cookie := findCookie(w, "cinelog_session")
	require.NotNil(t, cookie)
	assert.Equal(t, "access-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, testConfig())
	router := setupRouter()
	router.POST("/login", handler.Login)

	mockAuthService.On("Login", mock.Anything, "test@example.com", "wrong").
		Return("", "", nil, service.ErrInvalidCredentials)

	w := postJSON(router, "/login", dto.LoginRequest{Email: "test@example.com", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, findCookie(w, "cinelog_session"))
}

func TestRefreshToken_Rotates(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, testConfig())
	router := setupRouter()
	router.POST("/refresh", handler.RefreshToken)

	mockAuthService.On("RefreshAccessToken", mock.Anything, "old-refresh").Return("new-access", "new-refresh", nil)
	mockAuthService.On("RefreshAccessToken", mock.Anything, "bogus").Return("", "", service.ErrInvalidToken)

	w := postJSON(router, "/refresh", dto.RefreshTokenRequest{RefreshToken: "old-refresh"})
	require.Equal(t, http.StatusOK, w.Code)
	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "new-refresh", response.RefreshToken)

	w = postJSON(router, "/refresh", dto.RefreshTokenRequest{RefreshToken: "bogus"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(router, "/refresh", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, testConfig())
	router := setupRouter()
	router.POST("/logout", handler.Logout)

	mockAuthService.On("Logout", mock.Anything, "refresh-token").Return(errors.New("database is down"))

	w := postJSON(router, "/logout", dto.LogoutRequest{RefreshToken: "refresh-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	cookie := findCookie(w, "cinelog_session")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0)
	mockAuthService.AssertExpectations(t)
}
