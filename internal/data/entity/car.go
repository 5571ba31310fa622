package entity

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CarType string

const (
	CarTypeSedan       CarType = "sedan"
	CarTypeSUV         CarType = "suv"
	CarTypeHatchback   CarType = "hatchback"
	CarTypeConvertible CarType = "convertible"
	CarTypeCoupe       CarType = "coupe"
	CarTypeWagon       CarType = "wagon"
	CarTypeTruck       CarType = "truck"
	CarTypeVan         CarType = "van"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

type CarCondition string

const (
	ConditionExcellent CarCondition = "excellent"
	ConditionGood      CarCondition = "good"
	ConditionFair      CarCondition = "fair"
)

type CarImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
	IsMain   bool   `json:"isMain"`
}

type CarReview struct {
	UserID    uuid.UUID `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Car struct {
	Base
	Make            string       `db:"make"`
	Model           string       `db:"model"`
	Year            int          `db:"year"`
	Type            CarType      `db:"type"`
	Transmission    Transmission `db:"transmission"`
	FuelType        FuelType     `db:"fuel_type"`
	SeatingCapacity int          `db:"seating_capacity"`
	PricePerDay     float64      `db:"price_per_day"`
	Location        Location     `db:"location"`
	Features        []string     `db:"features"`
	Images          []CarImage   `db:"images"`
	LicensePlate    string       `db:"license_plate"`
	Mileage         float64      `db:"mileage"`
	Condition       CarCondition `db:"condition"`
	Availability    bool         `db:"availability"`
	OwnerID         uuid.UUID    `db:"owner_id"`
	Rating          Rating
	Reviews         []CarReview `db:"reviews"`
	IsActive        bool        `db:"is_active"`
}

// IsBookable reports whether new reservations may be placed on the car.
func (c *Car) IsBookable() bool {
	return c.Availability && c.IsActive
}

// AddReview appends a review and refreshes the derived rating.
func (c *Car) AddReview(review CarReview) {
	c.Reviews = append(c.Reviews, review)
	c.RecalculateRating()
}

func (c *Car) HasReviewFrom(userID uuid.UUID) bool {
	for _, r := range c.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// RecalculateRating sets the average to one decimal place; no reviews yields 0/0.
func (c *Car) RecalculateRating() {
	c.Rating = CalculateRating(c.Reviews)
}

func CalculateRating(reviews []CarReview) Rating {
	if len(reviews) == 0 {
		return Rating{}
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	mean := float64(sum) / float64(len(reviews))
	return Rating{
		Average: math.Round(mean*10) / 10,
		Count:   len(reviews),
	}
}

// EnsureMainImage marks the first image as main when none is.
func (c *Car) EnsureMainImage() {
	if len(c.Images) == 0 {
		return
	}
	for _, img := range c.Images {
		if img.IsMain {
			return
		}
	}
	c.Images[0].IsMain = true
}

func NormalizeLicensePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
