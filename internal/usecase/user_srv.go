package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)

	// Admin
	ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUser(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateUserRole(ctx context.Context, caller Caller, userID uuid.UUID, req *request.UpdateUserRoleRequest) (*response.UserResponse, error)
	SetUserActive(ctx context.Context, caller Caller, userID uuid.UUID, req *request.UpdateUserStatusRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return user, nil
}

func (us *userService) save(ctx context.Context, user *entity.User) (*response.UserResponse, error) {
	user.UpdatedAt = time.Now()
	if err := us.userRepo.Update(ctx, user); err != nil {
		us.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("update user: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.LicenseNumber != nil {
		user.LicenseNumber = req.LicenseNumber
	}

	return us.save(ctx, user)
}

func (us *userService) ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	users, err := us.userRepo.FindAll(ctx, limit, offset)
	if err != nil {
		us.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	data := make([]response.UserResponse, len(users))
	for i, user := range users {
		data[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), limit, total), nil
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateUserRole(ctx context.Context, caller Caller, userID uuid.UUID, req *request.UpdateUserRoleRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	if caller.UserID == userID {
		return nil, fmt.Errorf("%w: cannot change your own role", ErrValidation)
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = entity.UserRole(req.Role)

	us.log.Info("User role changed",
		zap.String("user_id", userID.String()),
		zap.String("role", req.Role),
		zap.String("by", caller.UserID.String()))

	return us.save(ctx, user)
}

func (us *userService) SetUserActive(ctx context.Context, caller Caller, userID uuid.UUID, req *request.UpdateUserStatusRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	if caller.UserID == userID {
		return nil, fmt.Errorf("%w: cannot change your own status", ErrValidation)
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = *req.IsActive

	us.log.Info("User status changed",
		zap.String("user_id", userID.String()),
		zap.Bool("is_active", user.IsActive),
		zap.String("by", caller.UserID.String()))

	return us.save(ctx, user)
}
