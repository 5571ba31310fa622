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
	"go.uber.org/zap"
)

// BookingFilter narrows booking listings. A nil UserID lists every user's bookings.
type BookingFilter struct {
	UserID        *uuid.UUID
	CarID         *uuid.UUID
	Status        string
	PaymentStatus string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter BookingFilter) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	CountConflicting(ctx context.Context, carID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int64, error)
	FindBlockingByCar(ctx context.Context, carID uuid.UUID, from time.Time) ([]*entity.Booking, error)
	CountBlockingByCar(ctx context.Context, carID uuid.UUID) (int64, error)
	HasCompletedBooking(ctx context.Context, userID, carID uuid.UUID) (bool, error)
	SaveReview(ctx context.Context, booking *entity.Booking, review entity.CarReview) (*entity.Car, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, car_id, start_date, end_date, total_days, price_per_day,
	total_amount, status, payment_status, payment_method, pickup_location, dropoff_location,
	driver_details, additional_services, special_requests, cancellation_reason, review,
	mileage_start, mileage_end, fuel_level_start, fuel_level_end, damage_report,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CarID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalDays,
		&booking.PricePerDay,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentMethod,
		&booking.PickupLocation,
		&booking.DropoffLocation,
		&booking.DriverDetails,
		&booking.AdditionalServices,
		&booking.SpecialRequests,
		&booking.CancellationReason,
		&booking.Review,
		&booking.MileageStart,
		&booking.MileageEnd,
		&booking.FuelLevelStart,
		&booking.FuelLevelEnd,
		&booking.DamageReport,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	booking.ComputeTotals()

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.CarID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalDays,
		booking.PricePerDay,
		booking.TotalAmount,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentMethod,
		booking.PickupLocation,
		booking.DropoffLocation,
		booking.DriverDetails,
		nonNil(booking.AdditionalServices),
		booking.SpecialRequests,
		booking.CancellationReason,
		booking.Review,
		booking.MileageStart,
		booking.MileageEnd,
		booking.FuelLevelStart,
		booking.FuelLevelEnd,
		nonNil(booking.DamageReport),
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("car_id", booking.CarID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func buildBookingWhere(filter BookingFilter) (string, []interface{}) {
	var conditions []string
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.CarID != nil {
		args = append(args, *filter.CarID)
		conditions = append(conditions, fmt.Sprintf("car_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := buildBookingWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookingColumns + ` FROM bookings`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	return r.queryBookings(ctx, queryBuilder.String(), args...)
}

func (r *bookingRepository) CountAll(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := buildBookingWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	booking.ComputeTotals()

	query := `
		UPDATE bookings
		SET start_date = $2, end_date = $3, total_days = $4, price_per_day = $5,
		    total_amount = $6, status = $7, payment_status = $8, payment_method = $9,
		    pickup_location = $10, dropoff_location = $11, driver_details = $12,
		    additional_services = $13, special_requests = $14, cancellation_reason = $15,
		    review = $16, mileage_start = $17, mileage_end = $18, fuel_level_start = $19,
		    fuel_level_end = $20, damage_report = $21, updated_at = $22
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalDays,
		booking.PricePerDay,
		booking.TotalAmount,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentMethod,
		booking.PickupLocation,
		booking.DropoffLocation,
		booking.DriverDetails,
		nonNil(booking.AdditionalServices),
		booking.SpecialRequests,
		booking.CancellationReason,
		booking.Review,
		booking.MileageStart,
		booking.MileageEnd,
		booking.FuelLevelStart,
		booking.FuelLevelEnd,
		nonNil(booking.DamageReport),
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

// CountConflicting counts confirmed or active bookings on carID whose
// half-open range collides with [start, end). Touching endpoints do not collide.
func (r *bookingRepository) CountConflicting(ctx context.Context, carID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE car_id = $1
		  AND status = ANY($2)
		  AND (
		        (start_date <= $3 AND end_date > $3)
		     OR (start_date < $4 AND end_date >= $4)
		     OR (start_date >= $3 AND end_date <= $4)
		  )
		  AND ($5::uuid IS NULL OR id <> $5)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, carID, entity.BlockingStatuses(), start, end, excludeID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count conflicting bookings",
			zap.Error(err),
			zap.String("car_id", carID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return 0, fmt.Errorf("count conflicting bookings for car %s: %w", carID.String(), err)
	}

	return count, nil
}

// FindBlockingByCar lists confirmed or active bookings that end after from, soonest first.
func (r *bookingRepository) FindBlockingByCar(ctx context.Context, carID uuid.UUID, from time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE car_id = $1 AND status = ANY($2) AND end_date > $3
		ORDER BY start_date ASC
	`

	return r.queryBookings(ctx, query, carID, entity.BlockingStatuses(), from)
}

func (r *bookingRepository) CountBlockingByCar(ctx context.Context, carID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE car_id = $1 AND status = ANY($2)`

	var count int64
	if err := r.db.QueryRow(ctx, query, carID, entity.BlockingStatuses()).Scan(&count); err != nil {
		r.log.Error("Failed to count blocking bookings",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		return 0, fmt.Errorf("count blocking bookings for car %s: %w", carID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) HasCompletedBooking(ctx context.Context, userID, carID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND car_id = $2 AND status = $3
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, userID, carID, entity.BookingStatusCompleted).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check completed booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("car_id", carID.String()),
		)
		return false, fmt.Errorf("check completed booking: %w", err)
	}

	return exists, nil
}

// SaveReview stores the booking review and appends the matching car review
// to the locked car row in one transaction. Returns the updated car, or nil
// when the booked car no longer exists.
func (r *bookingRepository) SaveReview(ctx context.Context, booking *entity.Booking, review entity.CarReview) (*entity.Car, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin review transaction", zap.Error(err))
		return nil, fmt.Errorf("begin review transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE bookings SET review = $2, updated_at = $3 WHERE id = $1 AND review IS NULL`,
		booking.ID, booking.Review, booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to save booking review",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("save booking %s review: %w", booking.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return nil, fmt.Errorf("booking %s already reviewed: %w", booking.ID.String(), ErrDuplicateKey)
	}

	car, err := lockCar(ctx, tx, booking.CarID)
	if err != nil {
		r.log.Error("Failed to lock car", zap.Error(err), zap.String("car_id", booking.CarID.String()))
		return nil, err
	}
	if car == nil {
		return nil, nil
	}

	car.AddReview(review)
	car.UpdatedAt = booking.UpdatedAt
	if err := updateCarReviews(ctx, tx, car); err != nil {
		r.log.Error("Failed to update car reviews",
			zap.Error(err),
			zap.String("car_id", car.ID.String()),
		)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit review transaction", zap.Error(err))
		return nil, fmt.Errorf("commit review transaction: %w", err)
	}

	return car, nil
}
