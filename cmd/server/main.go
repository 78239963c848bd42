package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/waterops/backend/internal/cache"
	"github.com/waterops/backend/internal/config"
	httpdelivery "github.com/waterops/backend/internal/delivery/http"
	"github.com/waterops/backend/internal/logger"
	"github.com/waterops/backend/internal/repository/postgres"
	"github.com/waterops/backend/internal/service"
)

func main() {
	// Load environment variables
	envLoaded := godotenv.Load() == nil

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	if !envLoaded {
		log.Info("No .env file found, using system environment")
	}

	// Static network configuration; a polar origin or malformed geometry is a
	// startup failure, not a per-query one.
	netCfg, err := config.LoadNetwork(cfg.NetworkFile)
	if err != nil {
		log.Fatalf("Failed to load network file %s: %v", cfg.NetworkFile, err)
	}
	segments := 0
	for _, road := range netCfg.Roads {
		segments += len(road.Points) - 1
	}
	log.WithField("segments", segments).
		WithField("intersections", len(netCfg.Intersections)).
		Info("Network loaded")

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo service.SnapshotRepository = postgres.NewMockRepository()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warnf("Could not connect to database, snapshot history kept in memory: %v", err)
		} else {
			defer pool.Close()
			log.Info("Connected to PostgreSQL")
			repo = postgres.NewPostgresRepository(pool)
		}
	} else {
		log.Warn("DATABASE_URL not set, snapshot history kept in memory")
	}

	// Optional snapshot cache
	var snapCache service.SnapshotCache
	if cfg.RedisAddr != "" {
		c, err := cache.Connect(cfg.RedisAddr, cfg.RedisPass, log)
		if err != nil {
			log.Warnf("Could not connect to Redis, snapshot caching disabled: %v", err)
		} else {
			defer c.Close()
			snapCache = c
		}
	}

	// Dependency Injection: Services
	stationSvc := service.NewStationService()
	alarmSvc := service.NewAlarmService()
	directionSvc := service.NewDirectionService()
	trafficSvc := service.NewTrafficService(netCfg, log)
	dashboardSvc := service.NewDashboardService(stationSvc, alarmSvc, directionSvc, repo, snapCache, log)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "WaterOps API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	handler := httpdelivery.NewHandler(cfg, netCfg, dashboardSvc, trafficSvc, stationSvc, alarmSvc, directionSvc)
	httpdelivery.SetupRoutes(app, handler)

	// Graceful shutdown
	go func() {
		log.Infof("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warnf("Server forced to shutdown: %v", err)
	}
	dashboardSvc.WaitBackground()
	log.Info("Server exited gracefully")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
