package request

import (
	"encoding/json"
	"fmt"
	"time"

	"car-rental/pkg/utils"
)

type DriverDetailsRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	LicenseNumber string `json:"licenseNumber" validate:"required,max=50"`
	Phone         string `json:"phone" validate:"required,phone10"`
}

type AdditionalServiceRequest struct {
	Service string  `json:"service" validate:"required,oneof=insurance gps child_seat additional_driver fuel_package"`
	Price   float64 `json:"price" validate:"gte=0"`
}

type CreateBookingRequest struct {
	CarID              string                     `json:"car" validate:"required,uuid"`
	StartDate          time.Time                  `json:"startDate" validate:"required"`
	EndDate            time.Time                  `json:"endDate" validate:"required"`
	PaymentMethod      string                     `json:"paymentMethod" validate:"required,oneof=credit_card debit_card upi net_banking cash"`
	PickupLocation     LocationRequest            `json:"pickupLocation"`
	DropoffLocation    LocationRequest            `json:"dropoffLocation"`
	DriverDetails      DriverDetailsRequest       `json:"driverDetails"`
	AdditionalServices []AdditionalServiceRequest `json:"additionalServices,omitempty" validate:"omitempty,dive"`
	SpecialRequests    *string                    `json:"specialRequests,omitempty" validate:"omitempty,max=500"`
}

// UnmarshalJSON accepts startDate/endDate as RFC3339 timestamps or plain
// YYYY-MM-DD dates, the same forms the availability query string takes.
func (r *CreateBookingRequest) UnmarshalJSON(data []byte) error {
	type plain CreateBookingRequest
	aux := struct {
		*plain
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if aux.StartDate != "" {
		if r.StartDate, err = utils.ParseDate(aux.StartDate); err != nil {
			return fmt.Errorf("startDate: %w", err)
		}
	}
	if aux.EndDate != "" {
		if r.EndDate, err = utils.ParseDate(aux.EndDate); err != nil {
			return fmt.Errorf("endDate: %w", err)
		}
	}
	return nil
}

type ListBookingsRequest struct {
	PaginatedRequest
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed active completed cancelled"`
	PaymentStatus string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending paid failed refunded"`
}

type UpdateBookingStatusRequest struct {
	Status             string  `json:"status" validate:"required,oneof=pending confirmed active completed cancelled"`
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid failed refunded"`
}

type UpdateMileageRequest struct {
	MileageStart   *float64 `json:"mileageStart,omitempty" validate:"omitempty,gte=0"`
	MileageEnd     *float64 `json:"mileageEnd,omitempty" validate:"omitempty,gte=0"`
	FuelLevelStart *string  `json:"fuelLevelStart,omitempty" validate:"omitempty,oneof=empty quarter half three_quarter full"`
	FuelLevelEnd   *string  `json:"fuelLevelEnd,omitempty" validate:"omitempty,oneof=empty quarter half three_quarter full"`
}

type DamageReportRequest struct {
	Description string   `json:"description" validate:"required,max=1000"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}
