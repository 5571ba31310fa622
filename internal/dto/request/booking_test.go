package request

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_UnmarshalDates(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "date only",
			start:     "2030-01-05",
			end:       "2030-01-08",
			wantStart: time.Date(2030, 1, 5, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "timestamps",
			start:     "2030-01-05T10:00:00Z",
			end:       "2030-01-08T09:30:00+02:00",
			wantStart: time.Date(2030, 1, 5, 10, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2030, 1, 8, 7, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"car":"6f1c2a4e-8a51-4c53-9d0e-3b7f0c5a2e11","startDate":"` + tt.start +
				`","endDate":"` + tt.end + `","paymentMethod":"cash","driverDetails":{"name":"John Doe"}}`

			var req CreateBookingRequest
			require.NoError(t, json.Unmarshal([]byte(body), &req))

			assert.True(t, tt.wantStart.Equal(req.StartDate), "start %s", req.StartDate)
			assert.True(t, tt.wantEnd.Equal(req.EndDate), "end %s", req.EndDate)
			assert.Equal(t, "6f1c2a4e-8a51-4c53-9d0e-3b7f0c5a2e11", req.CarID)
			assert.Equal(t, "cash", req.PaymentMethod)
			assert.Equal(t, "John Doe", req.DriverDetails.Name)
		})
	}
}

func TestCreateBookingRequest_UnmarshalBadDate(t *testing.T) {
	var req CreateBookingRequest

	err := json.Unmarshal([]byte(`{"startDate":"05/01/2030","endDate":"2030-01-08"}`), &req)

	assert.ErrorContains(t, err, "startDate")
}

func TestCreateBookingRequest_MissingDatesStayZero(t *testing.T) {
	var req CreateBookingRequest

	require.NoError(t, json.Unmarshal([]byte(`{"paymentMethod":"upi"}`), &req))

	assert.True(t, req.StartDate.IsZero())
	assert.True(t, req.EndDate.IsZero())
}
