package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/config"
	"github.com/sndservices/snd-crm-backend/internal/database"
	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/router"
	"github.com/sndservices/snd-crm-backend/internal/services"
	"github.com/sndservices/snd-crm-backend/internal/services/token"
	"github.com/sndservices/snd-crm-backend/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// @title SND CRM Backend API
// @version 1.0
// @description Multi-tenant CRM backend with rotating refresh-token authentication

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by your JWT access token

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Configure logging
	configureLogging()

	// Initialize Sentry
	utils.InitSentry()

	// Load application configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis cache (optional)
	var cache services.Cache
	redisClient, err := services.ConnectRedis()
	if err != nil {
		logrus.Warnf("Failed to connect to Redis, caching disabled: %v", err)
	} else {
		cache = redisClient
		defer redisClient.Close()
	}

	// Initialize RabbitMQ security event publisher (optional)
	var events *services.EventService
	tokenOpts := []token.Option{}
	if eventService, err := services.NewEventService(); err != nil {
		logrus.Warnf("Failed to initialize RabbitMQ, security events disabled: %v", err)
	} else {
		events = eventService
		defer events.Close()
		tokenOpts = append(tokenOpts, token.WithAuditSink(events))
	}

	// Initialize token service over the database-backed store
	tokenStore := repository.NewRefreshTokenRepository(db)
	tokenService := token.NewService(tokenStore, cfg.RefreshTokenTTL, tokenOpts...)

	// Start background cleanup of expired refresh tokens
	cleanupInterval := config.GetEnvAsDuration("TOKEN_CLEANUP_INTERVAL", time.Hour)
	tokenCleanupService := token.NewCleanupService(tokenService, cleanupInterval)
	tokenCleanupService.Start()
	defer tokenCleanupService.Stop()

	// Initialize router
	r := router.SetupRouter(db, cfg, tokenService, cache, events)

	// Configure HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		logrus.Infof("API Health Check: http://localhost:%s/api/v1/health", cfg.Port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging() {
	logLevel := os.Getenv("LOG_LEVEL")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
