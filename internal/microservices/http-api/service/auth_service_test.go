package service

import (
	"context"
	"testing"
	"time"

	"cinelog/internal/config"
	"cinelog/internal/microservices/http-api/models"
	"cinelog/internal/microservices/http-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, fields map[string]any) (*models.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func signClaims(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := authService.Register(context.Background(), " Test User ", "Test@Example.com", "password123")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	existingUser := &models.User{Email: "test@example.com"}
	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(existingUser, nil)

	user, err := authService.Register(context.Background(), "Test", "test@example.com", "password123")

	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateOnInsert(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicate)

	_, err := authService.Register(context.Background(), "Racer", "race@example.com", "password123")

	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLogin_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	cfg := testAuthConfig()
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, cfg)

	user := &models.User{
		ID:       "8d6e1c1e-2b7a-4b0b-9d7c-0b2d8f1f9a01",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: hashed(t, "password123"),
	}

	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
	mockRefreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	accessToken, refreshToken, returnedUser, err := authService.Login(context.Background(), "test@example.com", "password123")

	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, user.Email, returnedUser.Email)

	claims, err := authService.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Test User", claims.Name)
	mockUserRepo.AssertExpectations(t)
	mockRefreshTokenRepo.AssertExpectations(t)
}

func TestLogin_InvalidPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	user := &models.User{ID: "user-id", Email: "test@example.com", Password: hashed(t, "password123")}
	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

	accessToken, refreshToken, returnedUser, err := authService.Login(context.Background(), "test@example.com", "wrongpassword")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
	assert.Nil(t, returnedUser)
	mockRefreshTokenRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UserNotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, user, err := authService.Login(context.Background(), "nobody@example.com", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestValidateToken_Success(t *testing.T) {
	cfg := testAuthConfig()
	authService := NewAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), cfg)

	tokenString := signClaims(t, Claims{
		UserID: "user-id",
		Name:   "Test User",
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
			Subject:   "user-id",
		},
	}, cfg.JWTSecret)

	claims, err := authService.ValidateToken(tokenString)

	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestValidateToken_Rejections(t *testing.T) {
	cfg := testAuthConfig()
	authService := NewAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), cfg)

	valid := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		Issuer:    tokenIssuer,
		Subject:   "user-id",
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"

	noSubject := valid
	noSubject.Subject = ""

	noExpiry := valid
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name   string
		token  string
		expect string
	}{
		{"expired", signClaims(t, Claims{UserID: "user-id", RegisteredClaims: expired}, cfg.JWTSecret), "expired"},
		{"other secret", signClaims(t, Claims{UserID: "user-id", RegisteredClaims: valid}, "another-secret"), ""},
		{"wrong issuer", signClaims(t, Claims{UserID: "user-id", RegisteredClaims: wrongIssuer}, cfg.JWTSecret), ""},
		{"empty subject", signClaims(t, Claims{UserID: "user-id", RegisteredClaims: noSubject}, cfg.JWTSecret), ""},
		{"no expiry", signClaims(t, Claims{UserID: "user-id", RegisteredClaims: noExpiry}, cfg.JWTSecret), ""},
		{"garbage", "invalid.token.here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := authService.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
			if tt.expect != "" {
				assert.Contains(t, err.Error(), tt.expect)
			}
		})
	}
}

func TestRefreshAccessToken_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	refreshToken := &models.RefreshToken{
		ID:        "token-id",
		UserID:    "user-id",
		Token:     "refresh-token",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	user := &models.User{ID: "user-id", Name: "Test User"}

	mockRefreshTokenRepo.On("FindByToken", mock.Anything, "refresh-token").Return(refreshToken, nil)
	mockUserRepo.On("FindByID", mock.Anything, "user-id").Return(user, nil)
	mockRefreshTokenRepo.On("Revoke", mock.Anything, "token-id").Return(nil)
	mockRefreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	newAccessToken, newRefreshToken, err := authService.RefreshAccessToken(context.Background(), "refresh-token")

	require.NoError(t, err)
	assert.NotEmpty(t, newAccessToken)
	assert.NotEmpty(t, newRefreshToken)
	assert.NotEqual(t, "refresh-token", newRefreshToken)
	mockRefreshTokenRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestRefreshAccessToken_TokenExpired(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	refreshToken := &models.RefreshToken{
		ID:        "token-id",
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}
	mockRefreshTokenRepo.On("FindByToken", mock.Anything, "expired-token").Return(refreshToken, nil)
	mockRefreshTokenRepo.On("Delete", mock.Anything, "token-id").Return(nil)

	_, _, err := authService.RefreshAccessToken(context.Background(), "expired-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	mockRefreshTokenRepo.AssertExpectations(t)
}

func TestRefreshAccessToken_Revoked(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	refreshToken := &models.RefreshToken{
		ID:        "token-id",
		Token:     "used-token",
		ExpiresAt: time.Now().Add(time.Hour),
		Revoked:   true,
	}
	mockRefreshTokenRepo.On("FindByToken", mock.Anything, "used-token").Return(refreshToken, nil)

	_, _, err := authService.RefreshAccessToken(context.Background(), "used-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	mockUserRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestLogout(t *testing.T) {
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(new(MockUserRepository), mockRefreshTokenRepo, testAuthConfig())

	mockRefreshTokenRepo.On("FindByToken", mock.Anything, "live").Return(&models.RefreshToken{ID: "live-id"}, nil)
	mockRefreshTokenRepo.On("Revoke", mock.Anything, "live-id").Return(nil)
	mockRefreshTokenRepo.On("FindByToken", mock.Anything, "gone").Return(nil, gorm.ErrRecordNotFound)

	assert.NoError(t, authService.Logout(context.Background(), "live"))
	assert.NoError(t, authService.Logout(context.Background(), "gone"))
	assert.NoError(t, authService.Logout(context.Background(), ""))
	mockRefreshTokenRepo.AssertExpectations(t)
}
