package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCar(
	r chi.Router,
	carHandler *adaptor.CarHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	r.Route("/api/cars", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", carHandler.ListCars)
		r.Get("/availability/{id}", carHandler.CheckAvailability)
		r.Get("/{id}", carHandler.GetCar)

		// ==================== PROTECTED ROUTES ====================
		r.With(middleware.Auth(tokens, repo.User, log)).Post("/{id}/reviews", carHandler.AddReview)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens, repo.User, log))
			r.Use(middleware.Admin(log))

			r.Post("/", carHandler.CreateCar)
			r.Put("/{id}", carHandler.UpdateCar)
			r.Delete("/{id}", carHandler.DeleteCar)
		})
	})
}
