package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/hostel-service/internal/cache"
	"github.com/SAP-F-2025/hostel-service/internal/config"
	"github.com/SAP-F-2025/hostel-service/internal/events"
	"github.com/SAP-F-2025/hostel-service/internal/handlers"
	"github.com/SAP-F-2025/hostel-service/internal/repositories"
	"github.com/SAP-F-2025/hostel-service/internal/repositories/memory"
	"github.com/SAP-F-2025/hostel-service/internal/repositories/mongodb"
	"github.com/SAP-F-2025/hostel-service/internal/services"
	"github.com/SAP-F-2025/hostel-service/internal/utils"
	"github.com/SAP-F-2025/hostel-service/internal/validator"
	"github.com/SAP-F-2025/hostel-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(slogLogger)
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize repositories
	repoManager, err := newRepositoryManager(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, role cache disabled", "error", err)
			redisClient = nil
		}
	}
	cacheManager := cache.NewCacheManager(redisClient, cfg.RoleCacheTTL)

	// Record change events
	publisher, subscriber, err := events.NewPublisher(cfg.KafkaBrokers, cfg.EventsTopic, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}
	if subscriber != nil {
		if err := events.LogEvents(context.Background(), subscriber, cfg.EventsTopic, slogLogger); err != nil {
			log.Fatalf("Failed to subscribe to events: %v", err)
		}
	}

	// Initialize validator
	validator := validator.New()

	// Initialize services
	serviceManager := services.NewServiceManager(repoManager.GetRepository(), cacheManager, publisher, slogLogger, validator)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"store", cfg.StoreDriver,
			"role_cache", redisClient != nil,
			"kafka", len(cfg.KafkaBrokers) > 0)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Closes the publisher and the store client
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}

func newRepositoryManager(cfg *config.Config) (repositories.RepositoryManager, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		return memory.NewRepositoryManager(), nil
	}

	client, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return mongodb.NewRepositoryManager(mongodb.RepositoryConfig{
		Client:   client,
		Database: cfg.Mongo.Database,
	}), nil
}
