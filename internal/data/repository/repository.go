package repository

import (
	"errors"

	"car-rental/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateKey is returned when a write hits a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

type Repository struct {
	User    UserRepository
	Car     CarRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Car:     NewCarRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// nonNil keeps NOT NULL JSONB/array columns from receiving SQL NULL.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
