package usecase

import (
	"context"
	"testing"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService() (*authService, *MockUserRepository, *utils.TokenManager) {
	users := new(MockUserRepository)
	tokens := utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24})
	return &authService{userRepo: users, tokens: tokens, log: zap.NewNop()}, users, tokens
}

func testUser(t *testing.T, password string, role entity.UserRole) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Name:         "John Doe",
		Email:        "john.doe@example.com",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, users, tokens := newTestAuthService()

	users.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "jane@example.com" && u.Role == entity.RoleUser && u.PasswordHash != "secret123"
	})).Return(nil)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Jane",
		Email:    "Jane@Example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, entity.RoleUser, resp.User.Role)

	claims, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
	users.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, users, _ := newTestAuthService()

	users.On("FindByEmail", mock.Anything, "john.doe@example.com").Return(testUser(t, "password123", entity.RoleUser), nil)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "John",
		Email:    "john.doe@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_RaceOnInsert(t *testing.T) {
	svc, users, _ := newTestAuthService()

	users.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	phone := "12345"

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "J",
		Email:    "not-an-email",
		Password: "123",
		Phone:    &phone,
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 4)
	assert.Contains(t, validationErr.Fields, "phone")
}

func TestAuthService_Login(t *testing.T) {
	user := testUser(t, "password123", entity.RoleAdmin)

	t.Run("success", func(t *testing.T) {
		svc, users, tokens := newTestAuthService()
		users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		resp, err := svc.Login(context.Background(), &request.LoginRequest{Email: user.Email, Password: "password123"})

		require.NoError(t, err)
		claims, err := tokens.Validate(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _ := newTestAuthService()
		users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Email: user.Email, Password: "wrong"})

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, users, _ := newTestAuthService()
		users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Email: "nobody@example.com", Password: "password123"})

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("deactivated", func(t *testing.T) {
		svc, users, _ := newTestAuthService()
		inactive := testUser(t, "password123", entity.RoleUser)
		inactive.IsActive = false
		users.On("FindByEmail", mock.Anything, inactive.Email).Return(inactive, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Email: inactive.Email, Password: "password123"})

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestAuthService_Me(t *testing.T) {
	svc, users, _ := newTestAuthService()
	user := testUser(t, "password123", entity.RoleUser)
	missing := uuid.New()

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("FindByID", mock.Anything, missing).Return(nil, nil)

	resp, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.Email)

	_, err = svc.Me(context.Background(), missing)
	assert.ErrorIs(t, err, ErrNotFound)
}
