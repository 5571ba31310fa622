package usecase

import (
	"context"
	"errors"
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

const minCarYear = 1990

type CarService interface {
	// Public
	ListCars(ctx context.Context, req *request.ListCarsRequest) (*response.PaginatedResponse[response.CarResponse], error)
	GetCar(ctx context.Context, carID uuid.UUID) (*response.CarResponse, error)
	CheckAvailability(ctx context.Context, carID uuid.UUID, start, end *time.Time) (*response.CarAvailabilityResponse, error)

	// Authenticated
	AddCarReview(ctx context.Context, caller Caller, carID uuid.UUID, req *request.ReviewRequest) (*response.CarResponse, error)

	// Admin
	CreateCar(ctx context.Context, caller Caller, req *request.CreateCarRequest) (*response.CarResponse, error)
	UpdateCar(ctx context.Context, carID uuid.UUID, req *request.UpdateCarRequest) (*response.CarResponse, error)
	DeleteCar(ctx context.Context, carID uuid.UUID) error
}

type carService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewCarService(repo *repository.Repository, log *zap.Logger) CarService {
	return &carService{
		repo: repo,
		log:  log.With(zap.String("service", "car")),
		now:  time.Now,
	}
}

func (s *carService) findCar(ctx context.Context, carID uuid.UUID) (*entity.Car, error) {
	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		s.log.Error("Failed to find car", zap.Error(err), zap.String("car_id", carID.String()))
		return nil, fmt.Errorf("find car: %w", err)
	}
	if car == nil {
		return nil, fmt.Errorf("%w: car not found", ErrNotFound)
	}
	return car, nil
}

func (s *carService) validateYear(year int) error {
	maxYear := s.now().Year() + 1
	if year < minCarYear || year > maxYear {
		return &ValidationError{Fields: map[string]string{
			"year": fmt.Sprintf("Must be between %d and %d", minCarYear, maxYear),
		}}
	}
	return nil
}

func (s *carService) ListCars(ctx context.Context, req *request.ListCarsRequest) (*response.PaginatedResponse[response.CarResponse], error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	filter := repository.CarFilter{
		City:            strings.TrimSpace(req.City),
		State:           strings.TrimSpace(req.State),
		Type:            req.Type,
		Transmission:    req.Transmission,
		FuelType:        req.FuelType,
		MinPrice:        req.MinPrice,
		MaxPrice:        req.MaxPrice,
		SeatingCapacity: req.SeatingCapacity,
		Availability:    req.Availability,
		Search:          strings.TrimSpace(req.Search),
	}

	limit := req.Limit()
	offset := req.Offset()

	cars, err := s.repo.Car.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list cars", zap.Error(err))
		return nil, fmt.Errorf("list cars: %w", err)
	}

	total, err := s.repo.Car.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count cars", zap.Error(err))
		return nil, fmt.Errorf("count cars: %w", err)
	}

	data := make([]response.CarResponse, len(cars))
	for i, car := range cars {
		data[i] = response.CarToResponse(car)
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), limit, total), nil
}

func (s *carService) GetCar(ctx context.Context, carID uuid.UUID) (*response.CarResponse, error) {
	car, err := s.findCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	resp := response.CarToResponse(car)
	return &resp, nil
}

// CheckAvailability reports the upcoming booked ranges of a car and, when
// both dates are given, whether [start, end) is free.
func (s *carService) CheckAvailability(ctx context.Context, carID uuid.UUID, start, end *time.Time) (*response.CarAvailabilityResponse, error) {
	car, err := s.findCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	resp := &response.CarAvailabilityResponse{
		AvailabilityResponse: response.AvailabilityResponse{Available: car.IsBookable()},
		CarID:                car.ID.String(),
	}

	if start != nil && end != nil {
		result, err := checkConflicts(ctx, s.repo.Booking, carID, *start, *end, nil)
		if err != nil {
			return nil, err
		}
		resp.Available = resp.Available && result.Available
		resp.ConflictingBookings = result.ConflictingBookings
	}

	booked, err := s.repo.Booking.FindBlockingByCar(ctx, carID, s.now())
	if err != nil {
		s.log.Error("Failed to load booked ranges", zap.Error(err), zap.String("car_id", carID.String()))
		return nil, fmt.Errorf("load booked ranges: %w", err)
	}

	resp.BookedRanges = make([]response.BookedRange, len(booked))
	for i, b := range booked {
		resp.BookedRanges[i] = response.BookedRange{StartDate: b.StartDate, EndDate: b.EndDate}
		if start != nil && end != nil {
			resp.BookedRanges[i].Conflicts = b.Overlaps(*start, *end)
		}
	}

	return resp, nil
}

func (s *carService) CreateCar(ctx context.Context, caller Caller, req *request.CreateCarRequest) (*response.CarResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create car validation failed", zap.Error(err))
		return nil, err
	}
	if err := s.validateYear(req.Year); err != nil {
		return nil, err
	}

	plate := entity.NormalizeLicensePlate(req.LicensePlate)

	existing, err := s.repo.Car.FindByLicensePlate(ctx, plate)
	if err != nil {
		s.log.Error("Failed to check license plate", zap.Error(err), zap.String("license_plate", plate))
		return nil, fmt.Errorf("check license plate: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicatePlate
	}

	condition := entity.ConditionGood
	if req.Condition != "" {
		condition = entity.CarCondition(req.Condition)
	}
	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}

	now := s.now()
	car := &entity.Car{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Make:            strings.TrimSpace(req.Make),
		Model:           strings.TrimSpace(req.Model),
		Year:            req.Year,
		Type:            entity.CarType(req.Type),
		Transmission:    entity.Transmission(req.Transmission),
		FuelType:        entity.FuelType(req.FuelType),
		SeatingCapacity: req.SeatingCapacity,
		PricePerDay:     entity.RoundCents(req.PricePerDay),
		Location:        req.Location.ToEntity(),
		Features:        req.Features,
		Images:          toCarImages(req.Images),
		LicensePlate:    plate,
		Mileage:         req.Mileage,
		Condition:       condition,
		Availability:    availability,
		OwnerID:         caller.UserID,
		IsActive:        true,
	}
	car.EnsureMainImage()

	if err := s.repo.Car.Create(ctx, car); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicatePlate
		}
		s.log.Error("Failed to create car", zap.Error(err))
		return nil, fmt.Errorf("create car: %w", err)
	}

	s.log.Info("Car created",
		zap.String("car_id", car.ID.String()),
		zap.String("license_plate", car.LicensePlate),
		zap.String("owner_id", caller.UserID.String()))

	resp := response.CarToResponse(car)
	return &resp, nil
}

func (s *carService) UpdateCar(ctx context.Context, carID uuid.UUID, req *request.UpdateCarRequest) (*response.CarResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Update car validation failed", zap.Error(err))
		return nil, err
	}

	car, err := s.findCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	if req.Make != nil {
		car.Make = strings.TrimSpace(*req.Make)
	}
	if req.Model != nil {
		car.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		if err := s.validateYear(*req.Year); err != nil {
			return nil, err
		}
		car.Year = *req.Year
	}
	if req.Type != nil {
		car.Type = entity.CarType(*req.Type)
	}
	if req.Transmission != nil {
		car.Transmission = entity.Transmission(*req.Transmission)
	}
	if req.FuelType != nil {
		car.FuelType = entity.FuelType(*req.FuelType)
	}
	if req.SeatingCapacity != nil {
		car.SeatingCapacity = *req.SeatingCapacity
	}
	if req.PricePerDay != nil {
		car.PricePerDay = entity.RoundCents(*req.PricePerDay)
	}
	if req.Location != nil {
		car.Location = req.Location.ToEntity()
	}
	if req.Features != nil {
		car.Features = req.Features
	}
	if req.Images != nil {
		car.Images = toCarImages(req.Images)
		car.EnsureMainImage()
	}
	if req.Mileage != nil {
		car.Mileage = *req.Mileage
	}
	if req.Condition != nil {
		car.Condition = entity.CarCondition(*req.Condition)
	}
	if req.Availability != nil {
		car.Availability = *req.Availability
	}
	if req.LicensePlate != nil {
		plate := entity.NormalizeLicensePlate(*req.LicensePlate)
		if plate != car.LicensePlate {
			existing, err := s.repo.Car.FindByLicensePlate(ctx, plate)
			if err != nil {
				return nil, fmt.Errorf("check license plate: %w", err)
			}
			if existing != nil {
				return nil, ErrDuplicatePlate
			}
			car.LicensePlate = plate
		}
	}

	car.UpdatedAt = s.now()

	if err := s.repo.Car.Update(ctx, car); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicatePlate
		}
		s.log.Error("Failed to update car", zap.Error(err), zap.String("car_id", carID.String()))
		return nil, fmt.Errorf("update car: %w", err)
	}

	s.log.Info("Car updated", zap.String("car_id", carID.String()))

	resp := response.CarToResponse(car)
	return &resp, nil
}

// DeleteCar retires the car instead of removing the row, so past bookings keep
// their reference. Cars with confirmed or active bookings cannot be retired.
func (s *carService) DeleteCar(ctx context.Context, carID uuid.UUID) error {
	car, err := s.findCar(ctx, carID)
	if err != nil {
		return err
	}

	blocking, err := s.repo.Booking.CountBlockingByCar(ctx, carID)
	if err != nil {
		s.log.Error("Failed to count active bookings", zap.Error(err), zap.String("car_id", carID.String()))
		return fmt.Errorf("count active bookings: %w", err)
	}
	if blocking > 0 {
		return fmt.Errorf("%w: car has %d confirmed or active bookings", ErrConflict, blocking)
	}

	car.IsActive = false
	car.Availability = false
	car.UpdatedAt = s.now()

	if err := s.repo.Car.Update(ctx, car); err != nil {
		s.log.Error("Failed to retire car", zap.Error(err), zap.String("car_id", carID.String()))
		return fmt.Errorf("retire car: %w", err)
	}

	s.log.Info("Car retired", zap.String("car_id", carID.String()))
	return nil
}

func (s *carService) AddCarReview(ctx context.Context, caller Caller, carID uuid.UUID, req *request.ReviewRequest) (*response.CarResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	car, err := s.findCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.Booking.HasCompletedBooking(ctx, caller.UserID, carID)
	if err != nil {
		s.log.Error("Failed to check completed booking", zap.Error(err))
		return nil, fmt.Errorf("check completed booking: %w", err)
	}
	if !completed {
		return nil, fmt.Errorf("%w: you can only review cars you have rented", ErrValidation)
	}

	// fast path; the repository re-checks under the row lock
	if car.HasReviewFrom(caller.UserID) {
		return nil, fmt.Errorf("%w: you have already reviewed this car", ErrConflict)
	}

	now := s.now()
	car, err = s.repo.Car.AddReview(ctx, carID, entity.CarReview{
		UserID:    caller.UserID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: now,
	}, now)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: you have already reviewed this car", ErrConflict)
		}
		return nil, fmt.Errorf("save car review: %w", err)
	}
	if car == nil {
		return nil, fmt.Errorf("%w: car not found", ErrNotFound)
	}

	s.log.Info("Car reviewed",
		zap.String("car_id", carID.String()),
		zap.String("user_id", caller.UserID.String()),
		zap.Int("rating", req.Rating),
		zap.Float64("average", car.Rating.Average))

	resp := response.CarToResponse(car)
	return &resp, nil
}

func toCarImages(images []request.CarImageRequest) []entity.CarImage {
	if images == nil {
		return nil
	}

	out := make([]entity.CarImage, len(images))
	for i, img := range images {
		out[i] = entity.CarImage{URL: img.URL, PublicID: img.PublicID, IsMain: img.IsMain}
	}
	return out
}
