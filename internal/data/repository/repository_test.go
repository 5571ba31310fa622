package repository

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"car-rental/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func newTestRepository(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	pool := newMockPool(t)
	return NewRepository(pool, zap.NewNop()), pool
}

func columnNames(columns string) []string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func testCar() *entity.Car {
	return &entity.Car{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		Make:            "Toyota",
		Model:           "Camry",
		Year:            2022,
		Type:            entity.CarTypeSedan,
		Transmission:    entity.TransmissionAutomatic,
		FuelType:        entity.FuelPetrol,
		SeatingCapacity: 5,
		PricePerDay:     50,
		Location:        entity.Location{City: "Austin", State: "TX"},
		Features:        []string{"GPS"},
		Images:          []entity.CarImage{},
		LicensePlate:    "TX-1234",
		Condition:       entity.ConditionGood,
		Availability:    true,
		OwnerID:         uuid.New(),
		Reviews:         []entity.CarReview{},
		IsActive:        true,
	}
}

// carRows renders car as the row scanCar expects.
func carRows(car *entity.Car) *pgxmock.Rows {
	return pgxmock.NewRows(columnNames(carColumns)).AddRow(
		car.ID,
		car.Make,
		car.Model,
		car.Year,
		car.Type,
		car.Transmission,
		car.FuelType,
		car.SeatingCapacity,
		car.PricePerDay,
		car.Location,
		car.Features,
		car.Images,
		car.LicensePlate,
		car.Mileage,
		car.Condition,
		car.Availability,
		car.OwnerID,
		car.Rating.Average,
		car.Rating.Count,
		car.Reviews,
		car.IsActive,
		car.CreatedAt,
		car.UpdatedAt,
	)
}

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// requirePlaceholders checks that where references exactly $1..$len(args).
func requirePlaceholders(t *testing.T, where string, args []interface{}) {
	t.Helper()
	seen := map[int]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(where, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		seen[n] = true
	}
	require.Len(t, seen, len(args), "placeholders in %q", where)
	for i := 1; i <= len(args); i++ {
		require.True(t, seen[i], "missing $%d in %q", i, where)
	}
}
