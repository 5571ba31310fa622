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

type BookingService interface {
	// Public
	CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)

	// Authenticated
	CreateBooking(ctx context.Context, caller Caller, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, caller Caller, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, caller Caller, bookingID uuid.UUID) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	AddReview(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.ReviewRequest) (*response.BookingResponse, error)

	// Admin
	UpdatePaymentStatus(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error)
	UpdateMileage(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.UpdateMileageRequest) (*response.BookingResponse, error)
	AddDamageReport(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.DamageReportRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
		now:  time.Now,
	}
}

func (s *bookingService) CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid car ID", ErrValidation)
	}

	return checkConflicts(ctx, s.repo.Booking, carID, req.StartDate, req.EndDate, nil)
}

func (s *bookingService) CreateBooking(ctx context.Context, caller Caller, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid car ID", ErrValidation)
	}

	now := s.now()
	if req.StartDate.Before(now) {
		return nil, fmt.Errorf("%w: start date cannot be in the past", ErrValidation)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		s.log.Error("Failed to find car", zap.Error(err), zap.String("car_id", req.CarID))
		return nil, fmt.Errorf("find car: %w", err)
	}
	if car == nil {
		return nil, fmt.Errorf("%w: car not found", ErrNotFound)
	}
	if !car.IsBookable() {
		return nil, ErrCarUnavailable
	}

	// Check-then-insert: two concurrent requests can both pass this check.
	availability, err := checkConflicts(ctx, s.repo.Booking, carID, req.StartDate, req.EndDate, nil)
	if err != nil {
		s.log.Error("Failed to check availability", zap.Error(err), zap.String("car_id", req.CarID))
		return nil, err
	}
	if !availability.Available {
		s.log.Info("Booking rejected, dates taken",
			zap.String("car_id", req.CarID),
			zap.Int64("conflicts", availability.ConflictingBookings))
		return nil, ErrBookingConflict
	}

	services := make([]entity.AdditionalService, len(req.AdditionalServices))
	for i, svc := range req.AdditionalServices {
		services[i] = entity.AdditionalService{
			Service: entity.ServiceType(svc.Service),
			Price:   svc.Price,
		}
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          caller.UserID,
		CarID:           carID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PricePerDay:     car.PricePerDay,
		Status:          entity.BookingStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		PaymentMethod:   entity.PaymentMethod(req.PaymentMethod),
		PickupLocation:  req.PickupLocation.ToEntity(),
		DropoffLocation: req.DropoffLocation.ToEntity(),
		DriverDetails: entity.DriverDetails{
			Name:          strings.TrimSpace(req.DriverDetails.Name),
			LicenseNumber: strings.TrimSpace(req.DriverDetails.LicenseNumber),
			Phone:         req.DriverDetails.Phone,
		},
		AdditionalServices: services,
		SpecialRequests:    req.SpecialRequests,
		FuelLevelStart:     entity.FuelLevelFull,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", caller.UserID.String()),
			zap.String("car_id", req.CarID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", caller.UserID.String()),
		zap.String("car_id", req.CarID),
		zap.Int("total_days", booking.TotalDays),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking, car)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, caller Caller, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	filter := repository.BookingFilter{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	}
	if !caller.IsAdmin() {
		userID := caller.UserID
		filter.UserID = &userID
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("user_id", caller.UserID.String()))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	// one lookup per distinct car
	cars := make(map[uuid.UUID]*entity.Car)
	data := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		car, ok := cars[booking.CarID]
		if !ok {
			car, err = s.repo.Car.FindByID(ctx, booking.CarID)
			if err != nil {
				s.log.Warn("Failed to load booking car", zap.Error(err), zap.String("car_id", booking.CarID.String()))
			}
			cars[booking.CarID] = car
		}
		data[i] = response.BookingToResponse(booking, car)
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), limit, total), nil
}

func (s *bookingService) GetBooking(ctx context.Context, caller Caller, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(caller.UserID) && !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: not authorized to view this booking", ErrForbidden)
	}

	return s.toResponse(ctx, booking), nil
}

// UpdateStatus applies one step of the lifecycle. Confirming re-runs the
// conflict check against the other confirmed/active bookings of the car.
func (s *bookingService) UpdateStatus(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(caller.UserID) && !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: not authorized to update this booking", ErrForbidden)
	}

	target, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	current := booking.Status
	if !current.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, entity.TransitionError(current, target))
	}

	if target == entity.BookingStatusConfirmed {
		availability, err := checkConflicts(ctx, s.repo.Booking, booking.CarID, booking.StartDate, booking.EndDate, &booking.ID)
		if err != nil {
			return nil, err
		}
		if !availability.Available {
			return nil, ErrBookingConflict
		}
	}

	booking.Status = target
	if target == entity.BookingStatusCancelled && req.CancellationReason != nil {
		reason := strings.TrimSpace(*req.CancellationReason)
		booking.CancellationReason = &reason
	}
	booking.UpdatedAt = s.now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to update booking status", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", current.String()),
		zap.String("to", target.String()),
		zap.String("by", caller.UserID.String()),
	)

	return s.toResponse(ctx, booking), nil
}

func (s *bookingService) UpdatePaymentStatus(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can update payment status", ErrForbidden)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	booking.PaymentStatus = entity.PaymentStatus(req.PaymentStatus)
	booking.UpdatedAt = s.now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to update payment status", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	s.log.Info("Booking payment status changed",
		zap.String("booking_id", bookingID.String()),
		zap.String("payment_status", req.PaymentStatus),
	)

	return s.toResponse(ctx, booking), nil
}

// AddReview records the renter's single review and mirrors it onto the car.
func (s *bookingService) AddReview(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.ReviewRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(caller.UserID) {
		return nil, fmt.Errorf("%w: only the renter can review this booking", ErrForbidden)
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, fmt.Errorf("%w: only completed bookings can be reviewed", ErrValidation)
	}
	if booking.HasReview() {
		return nil, ErrAlreadyReviewed
	}

	now := s.now()
	comment := strings.TrimSpace(req.Comment)
	booking.Review = &entity.BookingReview{
		Rating:    req.Rating,
		Comment:   comment,
		CreatedAt: now,
	}
	booking.UpdatedAt = now

	car, err := s.repo.Booking.SaveReview(ctx, booking, entity.CarReview{
		UserID:    caller.UserID,
		Rating:    req.Rating,
		Comment:   comment,
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("save review: %w", err)
	}
	if car == nil {
		return nil, fmt.Errorf("%w: car not found", ErrNotFound)
	}

	s.log.Info("Booking reviewed",
		zap.String("booking_id", bookingID.String()),
		zap.String("car_id", car.ID.String()),
		zap.Int("rating", req.Rating),
		zap.Float64("car_rating", car.Rating.Average),
	)

	resp := response.BookingToResponse(booking, car)
	return &resp, nil
}

func (s *bookingService) UpdateMileage(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.UpdateMileageRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can update mileage", ErrForbidden)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if req.MileageStart != nil {
		booking.MileageStart = *req.MileageStart
	}
	if req.MileageEnd != nil {
		if *req.MileageEnd < booking.MileageStart {
			return nil, fmt.Errorf("%w: end mileage %.1f is less than start mileage %.1f",
				ErrVehicleDataInconsistent, *req.MileageEnd, booking.MileageStart)
		}
		booking.MileageEnd = *req.MileageEnd
	}
	if req.FuelLevelStart != nil {
		booking.FuelLevelStart = entity.FuelLevel(*req.FuelLevelStart)
	}
	if req.FuelLevelEnd != nil {
		level := entity.FuelLevel(*req.FuelLevelEnd)
		booking.FuelLevelEnd = &level
	}
	booking.UpdatedAt = s.now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to update mileage", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("update mileage: %w", err)
	}

	return s.toResponse(ctx, booking), nil
}

func (s *bookingService) AddDamageReport(ctx context.Context, caller Caller, bookingID uuid.UUID, req *request.DamageReportRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can report damage", ErrForbidden)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking.DamageReport = append(booking.DamageReport, entity.DamageReport{
		Description: strings.TrimSpace(req.Description),
		Images:      req.Images,
		ReportedAt:  now,
	})
	booking.UpdatedAt = now

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to add damage report", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("add damage report: %w", err)
	}

	s.log.Info("Damage reported",
		zap.String("booking_id", bookingID.String()),
		zap.Int("reports", len(booking.DamageReport)),
	)

	return s.toResponse(ctx, booking), nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking not found", ErrNotFound)
	}
	return booking, nil
}

// toResponse attaches the car summary when it can be loaded.
func (s *bookingService) toResponse(ctx context.Context, booking *entity.Booking) *response.BookingResponse {
	car, err := s.repo.Car.FindByID(ctx, booking.CarID)
	if err != nil {
		s.log.Warn("Failed to load booking car", zap.Error(err), zap.String("car_id", booking.CarID.String()))
	}

	resp := response.BookingToResponse(booking, car)
	return &resp
}
