package usecase

import (
	"context"
	"testing"

	"car-rental/internal/data/entity"
	"car-rental/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUserService() (*userService, *MockUserRepository) {
	users := new(MockUserRepository)
	return &userService{userRepo: users, log: zap.NewNop()}, users
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, users := newTestUserService()
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Name: "John", Role: entity.RoleUser}
	name := "  John Smith "
	phone := "5551234567"

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("Update", mock.Anything, user).Return(nil)

	resp, err := svc.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{Name: &name, Phone: &phone})

	require.NoError(t, err)
	assert.Equal(t, "John Smith", resp.Name)
	require.NotNil(t, resp.Phone)
	assert.Equal(t, phone, *resp.Phone)
	assert.Equal(t, entity.RoleUser, resp.Role)
}

func TestUserService_UpdateUserRole(t *testing.T) {
	admin := Caller{UserID: uuid.New(), Role: "admin"}

	t.Run("promotes user", func(t *testing.T) {
		svc, users := newTestUserService()
		user := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleUser}
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		users.On("Update", mock.Anything, user).Return(nil)

		resp, err := svc.UpdateUserRole(context.Background(), admin, user.ID, &request.UpdateUserRoleRequest{Role: "admin"})

		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, resp.Role)
	})

	t.Run("cannot change own role", func(t *testing.T) {
		svc, _ := newTestUserService()

		_, err := svc.UpdateUserRole(context.Background(), admin, admin.UserID, &request.UpdateUserRoleRequest{Role: "user"})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("requires admin", func(t *testing.T) {
		svc, _ := newTestUserService()

		_, err := svc.UpdateUserRole(context.Background(), Caller{UserID: uuid.New(), Role: "user"}, uuid.New(),
			&request.UpdateUserRoleRequest{Role: "admin"})

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _ := newTestUserService()

		_, err := svc.UpdateUserRole(context.Background(), admin, uuid.New(), &request.UpdateUserRoleRequest{Role: "owner"})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserService_SetUserActive(t *testing.T) {
	svc, users := newTestUserService()
	admin := Caller{UserID: uuid.New(), Role: "admin"}
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleUser, IsActive: true}
	inactive := false

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("Update", mock.Anything, user).Return(nil)

	resp, err := svc.SetUserActive(context.Background(), admin, user.ID, &request.UpdateUserStatusRequest{IsActive: &inactive})

	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	_, err = svc.SetUserActive(context.Background(), admin, user.ID, &request.UpdateUserStatusRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_ListUsers(t *testing.T) {
	svc, users := newTestUserService()
	list := []*entity.User{
		{Base: entity.Base{ID: uuid.New()}, Email: "a@example.com"},
		{Base: entity.Base{ID: uuid.New()}, Email: "b@example.com"},
	}

	users.On("FindAll", mock.Anything, 10, 0).Return(list, nil)
	users.On("CountAll", mock.Anything).Return(int64(2), nil)

	resp, err := svc.ListUsers(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10})

	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}
