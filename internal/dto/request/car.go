package request

import "time"

type CarImageRequest struct {
	URL      string `json:"url" validate:"required,url"`
	PublicID string `json:"publicId,omitempty"`
	IsMain   bool   `json:"isMain"`
}

type CreateCarRequest struct {
	Make            string             `json:"make" validate:"required,max=50"`
	Model           string             `json:"model" validate:"required,max=50"`
	Year            int                `json:"year" validate:"required,min=1990"`
	Type            string             `json:"type" validate:"required,oneof=sedan suv hatchback convertible coupe wagon truck van"`
	Transmission    string             `json:"transmission" validate:"required,oneof=manual automatic"`
	FuelType        string             `json:"fuelType" validate:"required,oneof=petrol diesel electric hybrid"`
	SeatingCapacity int                `json:"seatingCapacity" validate:"required,min=2,max=8"`
	PricePerDay     float64            `json:"pricePerDay" validate:"gte=0"`
	Location        CarLocationRequest `json:"location"`
	Features        []string           `json:"features,omitempty" validate:"omitempty,dive,oneof=air_conditioning gps bluetooth backup_camera sunroof leather_seats heated_seats usb_charging wifi child_seat"`
	Images          []CarImageRequest  `json:"images,omitempty" validate:"omitempty,dive"`
	LicensePlate    string             `json:"licensePlate" validate:"required,max=20"`
	Mileage         float64            `json:"mileage" validate:"gte=0"`
	Condition       string             `json:"condition,omitempty" validate:"omitempty,oneof=excellent good fair"`
	Availability    *bool              `json:"availability,omitempty"`
}

// UpdateCarRequest is a partial update; nil fields are left unchanged.
type UpdateCarRequest struct {
	Make            *string             `json:"make,omitempty" validate:"omitempty,max=50"`
	Model           *string             `json:"model,omitempty" validate:"omitempty,max=50"`
	Year            *int                `json:"year,omitempty" validate:"omitempty,min=1990"`
	Type            *string             `json:"type,omitempty" validate:"omitempty,oneof=sedan suv hatchback convertible coupe wagon truck van"`
	Transmission    *string             `json:"transmission,omitempty" validate:"omitempty,oneof=manual automatic"`
	FuelType        *string             `json:"fuelType,omitempty" validate:"omitempty,oneof=petrol diesel electric hybrid"`
	SeatingCapacity *int                `json:"seatingCapacity,omitempty" validate:"omitempty,min=2,max=8"`
	PricePerDay     *float64            `json:"pricePerDay,omitempty" validate:"omitempty,gte=0"`
	Location        *CarLocationRequest `json:"location,omitempty"`
	Features        []string            `json:"features,omitempty" validate:"omitempty,dive,oneof=air_conditioning gps bluetooth backup_camera sunroof leather_seats heated_seats usb_charging wifi child_seat"`
	Images          []CarImageRequest   `json:"images,omitempty" validate:"omitempty,dive"`
	LicensePlate    *string             `json:"licensePlate,omitempty" validate:"omitempty,max=20"`
	Mileage         *float64            `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	Condition       *string             `json:"condition,omitempty" validate:"omitempty,oneof=excellent good fair"`
	Availability    *bool               `json:"availability,omitempty"`
}

// ListCarsRequest is filled from the query string.
type ListCarsRequest struct {
	PaginatedRequest
	City            string   `json:"city,omitempty"`
	State           string   `json:"state,omitempty"`
	Type            string   `json:"type,omitempty" validate:"omitempty,oneof=sedan suv hatchback convertible coupe wagon truck van"`
	Transmission    string   `json:"transmission,omitempty" validate:"omitempty,oneof=manual automatic"`
	FuelType        string   `json:"fuelType,omitempty" validate:"omitempty,oneof=petrol diesel electric hybrid"`
	MinPrice        *float64 `json:"minPrice,omitempty" validate:"omitempty,gte=0"`
	MaxPrice        *float64 `json:"maxPrice,omitempty" validate:"omitempty,gte=0"`
	SeatingCapacity int      `json:"seatingCapacity,omitempty" validate:"omitempty,min=2,max=8"`
	Availability    *bool    `json:"availability,omitempty"`
	Search          string   `json:"search,omitempty" validate:"omitempty,max=100"`
}

// AvailabilityRequest asks whether a car is free for [StartDate, EndDate).
type AvailabilityRequest struct {
	CarID     string    `json:"car" validate:"required,uuid"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}
