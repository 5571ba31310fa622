package usecase

import (
	"errors"
	"fmt"

	"car-rental/pkg/utils"
)

// Error kinds. Handlers classify with errors.Is; more specific errors wrap a kind.
var (
	ErrValidation              = errors.New("validation failed")
	ErrNotFound                = errors.New("not found")
	ErrConflict                = errors.New("conflict")
	ErrForbidden               = errors.New("forbidden")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrVehicleDataInconsistent = errors.New("vehicle data inconsistent")
)

var (
	ErrCarUnavailable  = fmt.Errorf("%w: car is not available for booking", ErrValidation)
	ErrBookingConflict = fmt.Errorf("%w: car is not available for the selected dates", ErrConflict)
	ErrAlreadyReviewed = fmt.Errorf("%w: booking already reviewed", ErrConflict)
	ErrDuplicatePlate  = fmt.Errorf("%w: car with this license plate already exists", ErrConflict)
	ErrEmailTaken      = fmt.Errorf("%w: email already registered", ErrConflict)
)

// ValidationError carries per-field messages and classifies as ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
