package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/repository"
	"car-rental/internal/dto/response"

	"github.com/google/uuid"
)

// checkConflicts counts confirmed/active bookings on carID overlapping
// [start, end). excludeID skips a booking being re-checked against the others.
func checkConflicts(
	ctx context.Context,
	bookings repository.BookingRepository,
	carID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (*response.AvailabilityResponse, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}

	count, err := bookings.CountConflicting(ctx, carID, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	return &response.AvailabilityResponse{
		Available:           count == 0,
		ConflictingBookings: count,
	}, nil
}
