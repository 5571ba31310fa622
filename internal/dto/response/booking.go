package response

import (
	"time"

	"car-rental/internal/data/entity"
)

type BookingResponse struct {
	ID                 string                     `json:"id"`
	UserID             string                     `json:"user"`
	CarID              string                     `json:"carId"`
	Car                *CarSummaryResponse        `json:"car,omitempty"`
	StartDate          time.Time                  `json:"startDate"`
	EndDate            time.Time                  `json:"endDate"`
	TotalDays          int                        `json:"totalDays"`
	PricePerDay        float64                    `json:"pricePerDay"`
	TotalAmount        float64                    `json:"totalAmount"`
	Status             entity.BookingStatus       `json:"status"`
	PaymentStatus      entity.PaymentStatus       `json:"paymentStatus"`
	PaymentMethod      entity.PaymentMethod       `json:"paymentMethod"`
	PickupLocation     entity.Location            `json:"pickupLocation"`
	DropoffLocation    entity.Location            `json:"dropoffLocation"`
	DriverDetails      entity.DriverDetails       `json:"driverDetails"`
	AdditionalServices []entity.AdditionalService `json:"additionalServices"`
	SpecialRequests    *string                    `json:"specialRequests,omitempty"`
	CancellationReason *string                    `json:"cancellationReason,omitempty"`
	Review             *entity.BookingReview      `json:"review,omitempty"`
	MileageStart       float64                    `json:"mileageStart"`
	MileageEnd         float64                    `json:"mileageEnd"`
	FuelLevelStart     entity.FuelLevel           `json:"fuelLevelStart"`
	FuelLevelEnd       *entity.FuelLevel          `json:"fuelLevelEnd,omitempty"`
	DamageReport       []entity.DamageReport      `json:"damageReport"`
	CreatedAt          time.Time                  `json:"createdAt"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
}

// BookingToResponse converts a booking; car may be nil when it was not loaded.
func BookingToResponse(booking *entity.Booking, car *entity.Car) BookingResponse {
	services := booking.AdditionalServices
	if services == nil {
		services = []entity.AdditionalService{}
	}
	damage := booking.DamageReport
	if damage == nil {
		damage = []entity.DamageReport{}
	}

	return BookingResponse{
		ID:                 booking.ID.String(),
		UserID:             booking.UserID.String(),
		CarID:              booking.CarID.String(),
		Car:                CarToSummary(car),
		StartDate:          booking.StartDate,
		EndDate:            booking.EndDate,
		TotalDays:          booking.TotalDays,
		PricePerDay:        booking.PricePerDay,
		TotalAmount:        booking.TotalAmount,
		Status:             booking.Status,
		PaymentStatus:      booking.PaymentStatus,
		PaymentMethod:      booking.PaymentMethod,
		PickupLocation:     booking.PickupLocation,
		DropoffLocation:    booking.DropoffLocation,
		DriverDetails:      booking.DriverDetails,
		AdditionalServices: services,
		SpecialRequests:    booking.SpecialRequests,
		CancellationReason: booking.CancellationReason,
		Review:             booking.Review,
		MileageStart:       booking.MileageStart,
		MileageEnd:         booking.MileageEnd,
		FuelLevelStart:     booking.FuelLevelStart,
		FuelLevelEnd:       booking.FuelLevelEnd,
		DamageReport:       damage,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}
