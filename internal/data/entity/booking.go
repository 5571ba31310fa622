package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

type ServiceType string

const (
	ServiceInsurance        ServiceType = "insurance"
	ServiceGPS              ServiceType = "gps"
	ServiceChildSeat        ServiceType = "child_seat"
	ServiceAdditionalDriver ServiceType = "additional_driver"
	ServiceFuelPackage      ServiceType = "fuel_package"
)

type DriverDetails struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"licenseNumber"`
	Phone         string `json:"phone"`
}

type AdditionalService struct {
	Service ServiceType `json:"service"`
	Price   float64     `json:"price"`
}

type BookingReview struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type DamageReport struct {
	Description string    `json:"description"`
	Images      []string  `json:"images,omitempty"`
	ReportedAt  time.Time `json:"reportedAt"`
}

type Booking struct {
	Base
	UserID             uuid.UUID           `db:"user_id"`
	CarID              uuid.UUID           `db:"car_id"`
	StartDate          time.Time           `db:"start_date"`
	EndDate            time.Time           `db:"end_date"`
	TotalDays          int                 `db:"total_days"`
	PricePerDay        float64             `db:"price_per_day"`
	TotalAmount        float64             `db:"total_amount"`
	Status             BookingStatus       `db:"status"`
	PaymentStatus      PaymentStatus       `db:"payment_status"`
	PaymentMethod      PaymentMethod       `db:"payment_method"`
	PickupLocation     Location            `db:"pickup_location"`
	DropoffLocation    Location            `db:"dropoff_location"`
	DriverDetails      DriverDetails       `db:"driver_details"`
	AdditionalServices []AdditionalService `db:"additional_services"`
	SpecialRequests    *string             `db:"special_requests"`
	CancellationReason *string             `db:"cancellation_reason"`
	Review             *BookingReview      `db:"review"`
	MileageStart       float64             `db:"mileage_start"`
	MileageEnd         float64             `db:"mileage_end"`
	FuelLevelStart     FuelLevel           `db:"fuel_level_start"`
	FuelLevelEnd       *FuelLevel          `db:"fuel_level_end"`
	DamageReport       []DamageReport      `db:"damage_report"`
}

// CalculateTotalDays returns the number of started 24h periods between start and end.
func CalculateTotalDays(start, end time.Time) int {
	diff := end.Sub(start)
	if diff <= 0 {
		return 0
	}

	days := int(diff / day)
	if diff%day != 0 {
		days++
	}
	return days
}

// RoundCents rounds a monetary amount to the 2 decimals the database stores.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ComputeTotals derives TotalDays and TotalAmount from the current field values.
// Prices are rounded to cents first, so the amount returned matches what is stored.
// Repositories call it before every write.
func (b *Booking) ComputeTotals() {
	b.TotalDays = CalculateTotalDays(b.StartDate, b.EndDate)
	b.PricePerDay = RoundCents(b.PricePerDay)

	amount := float64(b.TotalDays) * b.PricePerDay
	for i := range b.AdditionalServices {
		b.AdditionalServices[i].Price = RoundCents(b.AdditionalServices[i].Price)
		amount += b.AdditionalServices[i].Price
	}
	b.TotalAmount = RoundCents(amount)
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}

func (b *Booking) HasReview() bool {
	return b.Review != nil
}

// Overlaps reports whether the booking's [StartDate, EndDate) intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return RangesOverlap(b.StartDate, b.EndDate, start, end)
}

// RangesOverlap tests whether an existing half-open range [existingStart, existingEnd)
// collides with a candidate [start, end). The three cases together are equivalent
// to existingStart < end && start < existingEnd; ranges that only touch at an
// endpoint do not overlap.
func RangesOverlap(existingStart, existingEnd, start, end time.Time) bool {
	// existing covers the candidate start
	if !existingStart.After(start) && existingEnd.After(start) {
		return true
	}
	// existing covers the candidate end
	if existingStart.Before(end) && !existingEnd.Before(end) {
		return true
	}
	// existing nested inside the candidate
	if !existingStart.Before(start) && !existingEnd.After(end) && existingStart.Before(existingEnd) {
		return true
	}
	return false
}
