package response

import (
	"time"

	"car-rental/internal/data/entity"
)

type CarResponse struct {
	ID              string              `json:"id"`
	Make            string              `json:"make"`
	Model           string              `json:"model"`
	Year            int                 `json:"year"`
	Type            entity.CarType      `json:"type"`
	Transmission    entity.Transmission `json:"transmission"`
	FuelType        entity.FuelType     `json:"fuelType"`
	SeatingCapacity int                 `json:"seatingCapacity"`
	PricePerDay     float64             `json:"pricePerDay"`
	Location        entity.Location     `json:"location"`
	Features        []string            `json:"features"`
	Images          []entity.CarImage   `json:"images"`
	LicensePlate    string              `json:"licensePlate"`
	Mileage         float64             `json:"mileage"`
	Condition       entity.CarCondition `json:"condition"`
	Availability    bool                `json:"availability"`
	Owner           string              `json:"owner"`
	Rating          entity.Rating       `json:"rating"`
	Reviews         []entity.CarReview  `json:"reviews,omitempty"`
	IsActive        bool                `json:"isActive"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// CarSummaryResponse is the car as embedded in a booking.
type CarSummaryResponse struct {
	ID           string          `json:"id"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	LicensePlate string          `json:"licensePlate"`
	Location     entity.Location `json:"location"`
	MainImage    string          `json:"mainImage,omitempty"`
}

type AvailabilityResponse struct {
	Available           bool  `json:"available"`
	ConflictingBookings int64 `json:"conflictingBookings"`
}

// BookedRange is an upcoming confirmed or active booking. Conflicts marks
// ranges that collide with the requested dates.
type BookedRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Conflicts bool      `json:"conflicts"`
}

// CarAvailabilityResponse adds the upcoming booked ranges of a car.
type CarAvailabilityResponse struct {
	AvailabilityResponse
	CarID        string        `json:"car"`
	BookedRanges []BookedRange `json:"bookedRanges"`
}

func CarToResponse(car *entity.Car) CarResponse {
	features := car.Features
	if features == nil {
		features = []string{}
	}
	images := car.Images
	if images == nil {
		images = []entity.CarImage{}
	}

	return CarResponse{
		ID:              car.ID.String(),
		Make:            car.Make,
		Model:           car.Model,
		Year:            car.Year,
		Type:            car.Type,
		Transmission:    car.Transmission,
		FuelType:        car.FuelType,
		SeatingCapacity: car.SeatingCapacity,
		PricePerDay:     car.PricePerDay,
		Location:        car.Location,
		Features:        features,
		Images:          images,
		LicensePlate:    car.LicensePlate,
		Mileage:         car.Mileage,
		Condition:       car.Condition,
		Availability:    car.Availability,
		Owner:           car.OwnerID.String(),
		Rating:          car.Rating,
		Reviews:         car.Reviews,
		IsActive:        car.IsActive,
		CreatedAt:       car.CreatedAt,
		UpdatedAt:       car.UpdatedAt,
	}
}

func CarToSummary(car *entity.Car) *CarSummaryResponse {
	if car == nil {
		return nil
	}

	summary := &CarSummaryResponse{
		ID:           car.ID.String(),
		Make:         car.Make,
		Model:        car.Model,
		Year:         car.Year,
		LicensePlate: car.LicensePlate,
		Location:     car.Location,
	}
	for _, img := range car.Images {
		if img.IsMain {
			summary.MainImage = img.URL
			break
		}
	}
	return summary
}
