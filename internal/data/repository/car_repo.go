package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// CarFilter narrows catalog listings. Nil/empty fields are ignored.
type CarFilter struct {
	City            string
	State           string
	Type            string
	Transmission    string
	FuelType        string
	MinPrice        *float64
	MaxPrice        *float64
	SeatingCapacity int
	Availability    *bool
	Search          string
}

type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)
	FindByLicensePlate(ctx context.Context, plate string) (*entity.Car, error)
	FindAll(ctx context.Context, filter CarFilter, limit, offset int) ([]*entity.Car, error)
	CountAll(ctx context.Context, filter CarFilter) (int64, error)
	Update(ctx context.Context, car *entity.Car) error
	AddReview(ctx context.Context, carID uuid.UUID, review entity.CarReview, updatedAt time.Time) (*entity.Car, error)
}

type carRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCarRepository(db database.PgxIface, log *zap.Logger) CarRepository {
	return &carRepository{
		db:  db,
		log: log.With(zap.String("repository", "car")),
	}
}

const carColumns = `id, make, model, year, type, transmission, fuel_type, seating_capacity,
	price_per_day, location, features, images, license_plate, mileage, condition,
	availability, owner_id, rating_average, rating_count, reviews, is_active,
	created_at, updated_at`

func scanCar(row pgx.Row) (*entity.Car, error) {
	var car entity.Car
	err := row.Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.Type,
		&car.Transmission,
		&car.FuelType,
		&car.SeatingCapacity,
		&car.PricePerDay,
		&car.Location,
		&car.Features,
		&car.Images,
		&car.LicensePlate,
		&car.Mileage,
		&car.Condition,
		&car.Availability,
		&car.OwnerID,
		&car.Rating.Average,
		&car.Rating.Count,
		&car.Reviews,
		&car.IsActive,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) Create(ctx context.Context, car *entity.Car) error {
	query := `
		INSERT INTO cars (` + carColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := r.db.Exec(ctx, query,
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
		nonNil(car.Features),
		nonNil(car.Images),
		car.LicensePlate,
		car.Mileage,
		car.Condition,
		car.Availability,
		car.OwnerID,
		car.Rating.Average,
		car.Rating.Count,
		nonNil(car.Reviews),
		car.IsActive,
		car.CreatedAt,
		car.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create car %s: %w", car.LicensePlate, ErrDuplicateKey)
		}
		r.log.Error("Failed to create car",
			zap.Error(err),
			zap.String("license_plate", car.LicensePlate),
		)
		return fmt.Errorf("create car %s: %w", car.LicensePlate, err)
	}

	return nil
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car, err := scanCar(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find car by ID",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return nil, fmt.Errorf("find car by ID %s: %w", id.String(), err)
	}

	return car, nil
}

func (r *carRepository) FindByLicensePlate(ctx context.Context, plate string) (*entity.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE license_plate = $1`

	car, err := scanCar(r.db.QueryRow(ctx, query, plate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find car by license plate",
			zap.Error(err),
			zap.String("license_plate", plate),
		)
		return nil, fmt.Errorf("find car by license plate %s: %w", plate, err)
	}

	return car, nil
}

// buildCarWhere renders the WHERE clause shared by FindAll and CountAll.
func buildCarWhere(filter CarFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(" WHERE is_active = TRUE")

	args := []interface{}{}
	add := func(cond string, value interface{}) {
		args = append(args, value)
		sb.WriteString(" AND ")
		sb.WriteString(strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}

	if filter.City != "" {
		add("location->>'city' ILIKE ?", "%"+filter.City+"%")
	}
	if filter.State != "" {
		add("location->>'state' ILIKE ?", "%"+filter.State+"%")
	}
	if filter.Type != "" {
		add("type = ?", filter.Type)
	}
	if filter.Transmission != "" {
		add("transmission = ?", filter.Transmission)
	}
	if filter.FuelType != "" {
		add("fuel_type = ?", filter.FuelType)
	}
	if filter.MinPrice != nil {
		add("price_per_day >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price_per_day <= ?", *filter.MaxPrice)
	}
	if filter.SeatingCapacity > 0 {
		add("seating_capacity >= ?", filter.SeatingCapacity)
	}
	if filter.Availability != nil {
		add("availability = ?", *filter.Availability)
	}
	if filter.Search != "" {
		add("(make ILIKE ? OR model ILIKE ?)", "%"+filter.Search+"%")
	}

	return sb.String(), args
}

func (r *carRepository) FindAll(ctx context.Context, filter CarFilter, limit, offset int) ([]*entity.Car, error) {
	where, args := buildCarWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + carColumns + ` FROM cars`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find cars",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find cars: %w", err)
	}
	defer rows.Close()

	var cars []*entity.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			r.log.Error("Failed to scan car row", zap.Error(err))
			return nil, fmt.Errorf("scan car row: %w", err)
		}
		cars = append(cars, car)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate car rows: %w", err)
	}

	r.log.Debug("Cars found",
		zap.Int("count", len(cars)),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	return cars, nil
}

func (r *carRepository) CountAll(ctx context.Context, filter CarFilter) (int64, error) {
	where, args := buildCarWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count cars", zap.Error(err))
		return 0, fmt.Errorf("count cars: %w", err)
	}

	return count, nil
}

func (r *carRepository) Update(ctx context.Context, car *entity.Car) error {
	query := `
		UPDATE cars
		SET make = $2, model = $3, year = $4, type = $5, transmission = $6,
		    fuel_type = $7, seating_capacity = $8, price_per_day = $9, location = $10,
		    features = $11, images = $12, license_plate = $13, mileage = $14,
		    condition = $15, availability = $16, is_active = $17, updated_at = $18
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
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
		nonNil(car.Features),
		nonNil(car.Images),
		car.LicensePlate,
		car.Mileage,
		car.Condition,
		car.Availability,
		car.IsActive,
		car.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update car %s: %w", car.ID.String(), ErrDuplicateKey)
		}
		r.log.Error("Failed to update car",
			zap.Error(err),
			zap.String("car_id", car.ID.String()),
		)
		return fmt.Errorf("update car %s: %w", car.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", car.ID.String())
	}

	return nil
}

// AddReview appends a review to the locked car row, one review per user.
// Returns nil when the car does not exist.
func (r *carRepository) AddReview(ctx context.Context, carID uuid.UUID, review entity.CarReview, updatedAt time.Time) (*entity.Car, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin car review transaction", zap.Error(err))
		return nil, fmt.Errorf("begin car review transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	car, err := lockCar(ctx, tx, carID)
	if err != nil {
		r.log.Error("Failed to lock car", zap.Error(err), zap.String("car_id", carID.String()))
		return nil, err
	}
	if car == nil {
		return nil, nil
	}
	if car.HasReviewFrom(review.UserID) {
		return nil, fmt.Errorf("car %s already reviewed by %s: %w", carID.String(), review.UserID.String(), ErrDuplicateKey)
	}

	car.AddReview(review)
	car.UpdatedAt = updatedAt
	if err := updateCarReviews(ctx, tx, car); err != nil {
		r.log.Error("Failed to update car reviews",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit car review transaction", zap.Error(err))
		return nil, fmt.Errorf("commit car review transaction: %w", err)
	}

	return car, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// lockCar reads the car with FOR UPDATE so concurrent review writers
// append to the latest list instead of overwriting each other.
func lockCar(ctx context.Context, db rowQuerier, id uuid.UUID) (*entity.Car, error) {
	car, err := scanCar(db.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock car %s: %w", id.String(), err)
	}
	return car, nil
}

// updateCarReviews writes reviews together with the rating derived from them.
func updateCarReviews(ctx context.Context, db execer, car *entity.Car) error {
	query := `
		UPDATE cars
		SET reviews = $2, rating_average = $3, rating_count = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := db.Exec(ctx, query,
		car.ID,
		nonNil(car.Reviews),
		car.Rating.Average,
		car.Rating.Count,
		car.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update car %s reviews: %w", car.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", car.ID.String())
	}

	return nil
}
