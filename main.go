// main.go
package main

import (
	"context"
	"flag"
	"log"

	"movie-booking/cmd"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/wire"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/database"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	fixTotals := flag.Bool("fix-totals", false, "recompute zero booking totals and exit")
	flag.Parse()

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

	// Optional redis cache for the booked-seats read view
	c, err := cache.New(config.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", zap.Error(err))
		c = nil
	}
	defer c.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, c, config, logger)

	if *fixTotals {
		// Maintenance mode: repair legacy bookings and exit.
		result, err := app.Service.Booking.RepairTotals(context.Background())
		if err != nil {
			logger.Fatal("Failed to repair booking totals", zap.Error(err))
		}
		logger.Info("Repair finished", zap.Int("fixed", result.Fixed))
		return
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
