package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures profile and user management routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, repo.User, log))

		// ==================== PROTECTED USER ROUTES ====================
		r.Put("/profile", userHandler.UpdateProfile)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin(log))

			r.Get("/", userHandler.ListUsers)
			r.Get("/{id}", userHandler.GetUser)
			r.Put("/{id}/role", userHandler.UpdateUserRole)
			r.Put("/{id}/status", userHandler.SetUserStatus)
		})
	})
}
