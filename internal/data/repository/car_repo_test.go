package repository

import (
	"context"
	"testing"

	"car-rental/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCarWhere(t *testing.T) {
	minPrice, maxPrice := 40.0, 90.0
	available := true

	tests := []struct {
		name      string
		filter    CarFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filters",
			filter:    CarFilter{},
			wantWhere: " WHERE is_active = TRUE",
			wantArgs:  []interface{}{},
		},
		{
			name:      "city and type",
			filter:    CarFilter{City: "Austin", Type: "suv"},
			wantWhere: " WHERE is_active = TRUE AND location->>'city' ILIKE $1 AND type = $2",
			wantArgs:  []interface{}{"%Austin%", "suv"},
		},
		{
			name:      "search reuses one placeholder",
			filter:    CarFilter{MinPrice: &minPrice, Availability: &available, Search: "civic"},
			wantWhere: " WHERE is_active = TRUE AND price_per_day >= $1 AND availability = $2 AND (make ILIKE $3 OR model ILIKE $3)",
			wantArgs:  []interface{}{40.0, true, "%civic%"},
		},
		{
			name: "every filter",
			filter: CarFilter{
				City:            "Austin",
				State:           "TX",
				Type:            "sedan",
				Transmission:    "automatic",
				FuelType:        "hybrid",
				MinPrice:        &minPrice,
				MaxPrice:        &maxPrice,
				SeatingCapacity: 5,
				Availability:    &available,
				Search:          "camry",
			},
			wantWhere: " WHERE is_active = TRUE" +
				" AND location->>'city' ILIKE $1" +
				" AND location->>'state' ILIKE $2" +
				" AND type = $3" +
				" AND transmission = $4" +
				" AND fuel_type = $5" +
				" AND price_per_day >= $6" +
				" AND price_per_day <= $7" +
				" AND seating_capacity >= $8" +
				" AND availability = $9" +
				" AND (make ILIKE $10 OR model ILIKE $10)",
			wantArgs: []interface{}{"%Austin%", "%TX%", "sedan", "automatic", "hybrid", 40.0, 90.0, 5, true, "%camry%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildCarWhere(tt.filter)

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
			requirePlaceholders(t, where, args)
		})
	}
}

func TestCarRepository_FindAll_PaginationPlaceholders(t *testing.T) {
	repo, pool := newTestRepository(t)
	car := testCar()

	pool.ExpectQuery(`FROM cars WHERE is_active = TRUE AND type = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("sedan", 10, 20).
		WillReturnRows(carRows(car))

	cars, err := repo.Car.FindAll(context.Background(), CarFilter{Type: "sedan"}, 10, 20)

	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, car.ID, cars[0].ID)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestCarRepository_AddReview_AppendsToLockedRow(t *testing.T) {
	repo, pool := newTestRepository(t)
	reviewer := uuid.New()

	// the locked row holds a review committed after the caller's own read
	stored := testCar()
	earlier := entity.CarReview{UserID: uuid.New(), Rating: 4, CreatedAt: testNow}
	stored.Reviews = []entity.CarReview{earlier}
	stored.RecalculateRating()

	review := entity.CarReview{UserID: reviewer, Rating: 5, Comment: "Smooth ride", CreatedAt: testNow}

	pool.ExpectBegin()
	pool.ExpectQuery(`(?s)SELECT .+ FROM cars WHERE id = \$1 FOR UPDATE`).
		WithArgs(stored.ID).
		WillReturnRows(carRows(stored))
	pool.ExpectExec(`UPDATE cars\s+SET reviews = \$2, rating_average = \$3, rating_count = \$4, updated_at = \$5\s+WHERE id = \$1`).
		WithArgs(stored.ID, []entity.CarReview{earlier, review}, 4.5, 2, testNow).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectCommit()

	car, err := repo.Car.AddReview(context.Background(), stored.ID, review, testNow)

	require.NoError(t, err)
	require.NotNil(t, car)
	assert.Equal(t, []entity.CarReview{earlier, review}, car.Reviews)
	assert.Equal(t, entity.Rating{Average: 4.5, Count: 2}, car.Rating)
	assert.Equal(t, testNow, car.UpdatedAt)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestCarRepository_AddReview_DuplicateUnderLock(t *testing.T) {
	repo, pool := newTestRepository(t)
	reviewer := uuid.New()

	stored := testCar()
	stored.Reviews = []entity.CarReview{{UserID: reviewer, Rating: 3, CreatedAt: testNow}}
	stored.RecalculateRating()

	pool.ExpectBegin()
	pool.ExpectQuery(`FROM cars WHERE id = \$1 FOR UPDATE`).
		WithArgs(stored.ID).
		WillReturnRows(carRows(stored))
	pool.ExpectRollback()

	car, err := repo.Car.AddReview(context.Background(), stored.ID,
		entity.CarReview{UserID: reviewer, Rating: 5, CreatedAt: testNow}, testNow)

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Nil(t, car)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestCarRepository_AddReview_MissingCar(t *testing.T) {
	repo, pool := newTestRepository(t)
	id := uuid.New()

	pool.ExpectBegin()
	pool.ExpectQuery(`FROM cars WHERE id = \$1 FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(columnNames(carColumns)))
	pool.ExpectRollback()

	car, err := repo.Car.AddReview(context.Background(), id,
		entity.CarReview{UserID: uuid.New(), Rating: 5, CreatedAt: testNow}, testNow)

	require.NoError(t, err)
	assert.Nil(t, car)
	assert.NoError(t, pool.ExpectationsWereMet())
}
