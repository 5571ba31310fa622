package wire

import (
	"net/http"

	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/internal/usecase"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes on top of the repositories.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	tokens := utils.NewTokenManager(config.JWT)

	service := usecase.NewService(repo, tokens, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, tokens, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	wireAuth(r, handler.Auth, repo, tokens, logger)
	wireUser(r, handler.User, repo, tokens, logger)
	wireCar(r, handler.Car, repo, tokens, logger)
	wireBooking(r, handler.Booking, repo, tokens, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"app": config.App.Name})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	return r
}
