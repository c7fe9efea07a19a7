package main

import (
	"context"
	"log"
	"time"

	"travel-booking/cmd"
	"travel-booking/internal/data/migrations"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/event"
	"travel-booking/internal/gateway"
	"travel-booking/internal/seathold"
	"travel-booking/internal/usecase"
	"travel-booking/internal/wire"
	"travel-booking/pkg/database"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
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

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(migrations.FS, migrations.Dir, config.Database, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	var holder seathold.Holder = seathold.NopHolder{}
	redisClient, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		ttl := time.Duration(config.Redis.SeatHoldMinutes) * time.Minute
		holder = seathold.NewRedisHolder(redisClient, ttl, logger)
		logger.Info("Seat holds enabled", zap.Duration("ttl", ttl))
	} else {
		logger.Warn("REDIS_ADDR not set, seat holds disabled")
	}

	var publisher event.Publisher = event.NopPublisher{}
	if config.Kafka.Enabled {
		publisher = event.NewKafkaPublisher(config.Kafka, logger)
		logger.Info("Booking events enabled", zap.Strings("brokers", config.Kafka.Brokers))
	}
	defer publisher.Close()

	gw := gateway.NewClient(config.Gateway, logger)

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, gw, holder, publisher, config, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanupSessions(ctx, app.Service.Auth, logger)

	if err := cmd.APIServer(app.Router, config.App, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}

// cleanupSessions removes expired sessions at startup and then hourly.
func cleanupSessions(ctx context.Context, auth usecase.AuthService, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		if _, err := auth.CleanupSessions(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("Session cleanup failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
