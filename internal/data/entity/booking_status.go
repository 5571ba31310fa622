package entity

import (
	"fmt"
	"strings"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

var allStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusActive,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) AllowedTransitions() []BookingStatus {
	return validTransitions[s]
}

func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// BlocksAvailability reports whether a booking in this status holds the car.
// Pending bookings are not yet committed and never block a new reservation.
func (s BookingStatus) BlocksAvailability() bool {
	return s == BookingStatusConfirmed || s == BookingStatusActive
}

func (s BookingStatus) String() string {
	return string(s)
}

// BlockingStatuses returns the statuses that occupy a car, for use in queries.
func BlockingStatuses() []string {
	var out []string
	for _, s := range allStatuses {
		if s.BlocksAvailability() {
			out = append(out, string(s))
		}
	}
	return out
}

// TransitionError explains why current cannot move to target.
func TransitionError(current, target BookingStatus) string {
	if current.IsTerminal() {
		return fmt.Sprintf("cannot change status from %s to %s: %s bookings are final", current, target, current)
	}

	allowed := make([]string, len(current.AllowedTransitions()))
	for i, s := range current.AllowedTransitions() {
		allowed[i] = string(s)
	}
	return fmt.Sprintf("cannot change status from %s to %s (allowed: %s)", current, target, strings.Join(allowed, ", "))
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "net_banking"
	PaymentCash       PaymentMethod = "cash"
)

type FuelLevel string

const (
	FuelLevelEmpty        FuelLevel = "empty"
	FuelLevelQuarter      FuelLevel = "quarter"
	FuelLevelHalf         FuelLevel = "half"
	FuelLevelThreeQuarter FuelLevel = "three_quarter"
	FuelLevelFull         FuelLevel = "full"
)
