package usecase

import (
	"context"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(ctx context.Context, car *entity.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Car), args.Error(1)
}

func (m *MockCarRepository) FindByLicensePlate(ctx context.Context, plate string) (*entity.Car, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Car), args.Error(1)
}

func (m *MockCarRepository) FindAll(ctx context.Context, filter repository.CarFilter, limit, offset int) ([]*entity.Car, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Car), args.Error(1)
}

func (m *MockCarRepository) CountAll(ctx context.Context, filter repository.CarFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCarRepository) Update(ctx context.Context, car *entity.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) AddReview(ctx context.Context, carID uuid.UUID, review entity.CarReview, updatedAt time.Time) (*entity.Car, error) {
	args := m.Called(ctx, carID, review, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Car), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	// the real repository derives totals before inserting
	booking.ComputeTotals()
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindAll(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountAll(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	booking.ComputeTotals()
	return args.Error(0)
}

func (m *MockBookingRepository) CountConflicting(ctx context.Context, carID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, carID, start, end, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) FindBlockingByCar(ctx context.Context, carID uuid.UUID, from time.Time) ([]*entity.Booking, error) {
	args := m.Called(ctx, carID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountBlockingByCar(ctx context.Context, carID uuid.UUID) (int64, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) HasCompletedBooking(ctx context.Context, userID, carID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, carID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) SaveReview(ctx context.Context, booking *entity.Booking, review entity.CarReview) (*entity.Car, error) {
	args := m.Called(ctx, booking, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Car), args.Error(1)
}

type mockRepos struct {
	users    *MockUserRepository
	cars     *MockCarRepository
	bookings *MockBookingRepository
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		users:    new(MockUserRepository),
		cars:     new(MockCarRepository),
		bookings: new(MockBookingRepository),
	}
	return &repository.Repository{User: m.users, Car: m.cars, Booking: m.bookings}, m
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
