package main

import (
	"context"
	"log"
	"os"

	"car-rental/cmd"
	"car-rental/internal/data/repository"
	"car-rental/internal/wire"
	"car-rental/pkg/database"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.RunMigrations(context.Background(), db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// `car-rental seed` loads sample data and exits
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := cmd.Seed(context.Background(), repos, logger); err != nil {
			logger.Fatal("Seeding failed", zap.Error(err))
		}
		logger.Info("Seeding completed")
		return
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
