package usecase

import (
	"car-rental/internal/data/repository"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Car     CarService
	Booking BookingService
}

func NewService(repo *repository.Repository, tokens *utils.TokenManager, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo.User, tokens, log),
		User:    NewUserService(repo.User, log),
		Car:     NewCarService(repo, log),
		Booking: NewBookingService(repo, log),
	}
}

// Caller identifies who invokes an operation.
type Caller struct {
	UserID uuid.UUID
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == utils.RoleAdmin
}
