package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petit-bistro/service-reservation/internal/application"
	"github.com/petit-bistro/service-reservation/internal/auth"
	"github.com/petit-bistro/service-reservation/internal/clock"
	"github.com/petit-bistro/service-reservation/internal/config"
	"github.com/petit-bistro/service-reservation/internal/database"
	tableDomain "github.com/petit-bistro/service-reservation/internal/domain/table"
	"github.com/petit-bistro/service-reservation/internal/events"
	"github.com/petit-bistro/service-reservation/internal/handler"
	"github.com/petit-bistro/service-reservation/internal/health"
	"github.com/petit-bistro/service-reservation/internal/logger"
	"github.com/petit-bistro/service-reservation/internal/middleware"
	"github.com/petit-bistro/service-reservation/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-reservation")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-reservation",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations and seed the floor plan
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.ClientModel{}, &repository.TableModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DB.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	if err := database.SeedTables(db, log); err != nil {
		log.Fatal("failed to seed tables", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpHours)*time.Hour,
	)

	// Initialize Kafka producer when brokers are configured
	var producer *events.Producer
	if cfg.Kafka.Enabled {
		producer = events.NewProducer(cfg.Kafka.Brokers, log)
		defer func() { _ = producer.Close() }()
	} else {
		log.Info("no kafka brokers configured, event publishing disabled")
	}

	// Initialize repositories
	tableRepo := repository.NewGormTableRepository(db)
	clientRepo := repository.NewGormClientRepository(db)

	// Restaurant clock and booking policy
	restaurantClock := clock.NewFixedOffsetClock(cfg.TZShift)
	policy := tableDomain.NewPolicy(restaurantClock)

	// Initialize application services
	reservationService := application.NewReservationService(
		tableRepo,
		policy,
		restaurantClock,
		producer,
		log,
	)
	accountService := application.NewAccountService(clientRepo, jwtManager, log)

	// Initialize HTTP handlers
	tableHandler := handler.NewTableHandler(reservationService)
	accountHandler := handler.NewAccountHandler(accountService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-reservation")
	healthHandler.RegisterRoutes(router)

	// Register routes
	authMW := middleware.AuthMiddleware(jwtManager, accountService)
	tableHandler.RegisterRoutes(&router.RouterGroup, authMW)
	accountHandler.RegisterRoutes(&router.RouterGroup, authMW)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-reservation...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-reservation stopped")
}
