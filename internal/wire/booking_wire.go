package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/availability-check", bookingHandler.CheckAvailability)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens, repo.User, log))

			r.Post("/", bookingHandler.CreateBooking)
			r.Get("/", bookingHandler.ListBookings)
			r.Get("/{id}", bookingHandler.GetBooking)
			r.Put("/{id}/status", bookingHandler.UpdateStatus)
			r.Post("/{id}/review", bookingHandler.AddReview)

			// ==================== ADMIN ROUTES ====================
			r.Group(func(r chi.Router) {
				r.Use(middleware.Admin(log))

				r.Put("/{id}/payment", bookingHandler.UpdatePaymentStatus)
				r.Put("/{id}/mileage", bookingHandler.UpdateMileage)
				r.Post("/{id}/damage", bookingHandler.AddDamageReport)
			})
		})
	})
}
