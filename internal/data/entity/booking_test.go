package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalculateTotalDays(t *testing.T) {
	start := date("2024-01-05")

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exactly one day", start.Add(24 * time.Hour), 1},
		{"partial day rounds up", start.Add(25 * time.Hour), 2},
		{"five days", date("2024-01-10"), 5},
		{"same instant", start, 0},
		{"end before start", start.Add(-time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTotalDays(start, tt.end))
		})
	}
}

func TestBooking_ComputeTotals(t *testing.T) {
	b := &Booking{
		StartDate:   date("2024-01-05"),
		EndDate:     date("2024-01-08"),
		PricePerDay: 50,
		AdditionalServices: []AdditionalService{
			{Service: ServiceInsurance, Price: 10},
			{Service: ServiceGPS},
		},
	}

	b.ComputeTotals()

	assert.Equal(t, 3, b.TotalDays)
	assert.Equal(t, 160.0, b.TotalAmount)
}

func TestBooking_ComputeTotals_RecomputesAfterDateChange(t *testing.T) {
	b := &Booking{StartDate: date("2024-01-05"), EndDate: date("2024-01-06"), PricePerDay: 40}
	b.ComputeTotals()
	assert.Equal(t, 40.0, b.TotalAmount)

	b.EndDate = date("2024-01-09")
	b.ComputeTotals()

	assert.Equal(t, 4, b.TotalDays)
	assert.Equal(t, 160.0, b.TotalAmount)
}

func TestBooking_ComputeTotals_RoundsToCents(t *testing.T) {
	b := &Booking{
		StartDate:   date("2024-01-05"),
		EndDate:     date("2024-01-07"),
		PricePerDay: 10.125,
	}
	b.ComputeTotals()

	assert.Equal(t, 10.13, b.PricePerDay)
	assert.Equal(t, 20.26, b.TotalAmount)

	b.PricePerDay = 50
	b.EndDate = date("2024-01-08")
	b.AdditionalServices = []AdditionalService{
		{Service: ServiceGPS, Price: 0.1},
		{Service: ServiceChildSeat, Price: 0.2},
	}
	b.ComputeTotals()

	// 0.1 + 0.2 is not exactly 0.3 in float64
	assert.Equal(t, 150.3, b.TotalAmount)
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 45.0, RoundCents(45))
	assert.Equal(t, 0.13, RoundCents(0.125))
	assert.Equal(t, 99.99, RoundCents(99.994))
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	all := []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusActive,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}

	allowed := map[BookingStatus]map[BookingStatus]bool{
		BookingStatusPending:   {BookingStatusConfirmed: true, BookingStatusCancelled: true},
		BookingStatusConfirmed: {BookingStatusActive: true, BookingStatusCancelled: true},
		BookingStatusActive:    {BookingStatusCompleted: true, BookingStatusCancelled: true},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusActive.IsTerminal())
}

func TestBookingStatus_BlocksAvailability(t *testing.T) {
	assert.True(t, BookingStatusConfirmed.BlocksAvailability())
	assert.True(t, BookingStatusActive.BlocksAvailability())
	assert.False(t, BookingStatusPending.BlocksAvailability())
	assert.False(t, BookingStatusCompleted.BlocksAvailability())
	assert.False(t, BookingStatusCancelled.BlocksAvailability())

	assert.ElementsMatch(t, []string{"confirmed", "active"}, BlockingStatuses())
}

func TestTransitionError(t *testing.T) {
	assert.Equal(t, "cannot change status from pending to active (allowed: confirmed, cancelled)",
		TransitionError(BookingStatusPending, BookingStatusActive))
	assert.Equal(t, "cannot change status from completed to pending: completed bookings are final",
		TransitionError(BookingStatusCompleted, BookingStatusPending))
	assert.Empty(t, BookingStatusCancelled.AllowedTransitions())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("active")
	assert.NoError(t, err)
	assert.Equal(t, BookingStatusActive, status)

	_, err = ParseBookingStatus("returned")
	assert.Error(t, err)
}

func TestRangesOverlap(t *testing.T) {
	existingStart, existingEnd := date("2024-01-05"), date("2024-01-10")

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"back to back after", "2024-01-10", "2024-01-12", false},
		{"back to back before", "2024-01-01", "2024-01-05", false},
		{"overlaps the tail", "2024-01-09", "2024-01-12", true},
		{"overlaps the head", "2024-01-03", "2024-01-06", true},
		{"nested inside existing", "2024-01-06", "2024-01-08", true},
		{"covers existing", "2024-01-01", "2024-01-15", true},
		{"identical range", "2024-01-05", "2024-01-10", true},
		{"entirely before", "2024-01-01", "2024-01-03", false},
		{"entirely after", "2024-01-11", "2024-01-13", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := date(tt.start), date(tt.end)
			got := RangesOverlap(existingStart, existingEnd, start, end)
			assert.Equal(t, tt.want, got)

			// equivalent to the half-open interval test
			assert.Equal(t, existingStart.Before(end) && start.Before(existingEnd), got)
		})
	}
}

func TestBooking_OwnershipAndReview(t *testing.T) {
	owner := uuid.New()
	b := &Booking{UserID: owner, StartDate: date("2024-01-05"), EndDate: date("2024-01-10")}

	assert.True(t, b.IsOwnedBy(owner))
	assert.False(t, b.IsOwnedBy(uuid.New()))
	assert.False(t, b.HasReview())
	assert.True(t, b.Overlaps(date("2024-01-09"), date("2024-01-12")))

	b.Review = &BookingReview{Rating: 5}
	assert.True(t, b.HasReview())
}
