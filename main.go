package main

import (
	"context"
	"log"
	"time"

	"pizza-service/cmd"
	"pizza-service/internal/data/repository"
	"pizza-service/internal/jobs"
	"pizza-service/internal/usecase"
	"pizza-service/internal/wire"
	"pizza-service/pkg/database"
	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
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

	if config.Database.Migrate {
		if err := database.MigrateUp(config.Database); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := usecase.SeedAdmin(seedCtx, repos.User, config.Admin, logger); err != nil {
		logger.Error("Failed to seed admin user", zap.Error(err))
	}
	cancel()

	janitor := jobs.NewSessionJanitor(repos.Session, config.Session.Retention, logger)
	if err := janitor.Start(config.Session.CleanupSpec); err != nil {
		logger.Fatal("Failed to start session janitor", zap.Error(err))
	}
	defer janitor.Stop()

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
