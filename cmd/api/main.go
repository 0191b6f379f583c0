package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"io.winapps.timelineapp/internal/db"
	"io.winapps.timelineapp/internal/forms"
	"io.winapps.timelineapp/internal/handlers"
	"io.winapps.timelineapp/internal/images"
	"io.winapps.timelineapp/internal/middleware"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		logger.Fatal("SESSION_SECRET must be set")
	}
	registrationCode := os.Getenv("REGISTRATION_CODE")
	if registrationCode == "" {
		logger.Fatal("REGISTRATION_CODE must be set")
	}

	location, err := time.LoadLocation(getEnvOrDefault("TIMEZONE", "America/New_York"))
	if err != nil {
		logger.Fatalf("Invalid TIMEZONE: %v", err)
	}

	// Initialize PostgreSQL
	postgresDB, err := db.InitPostgres()
	if err != nil {
		logger.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer postgresDB.Close()

	// Initialize Redis
	redisClient, err := db.InitRedis()
	if err != nil {
		logger.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	registry, err := forms.DefaultRegistry()
	if err != nil {
		logger.Fatalf("Failed to build form registry: %v", err)
	}

	uploadsDir := getEnvOrDefault("UPLOADS_DIR", "./uploads")
	imageStore, err := images.NewStore(uploadsDir)
	if err != nil {
		logger.Fatalf("Failed to initialize image store: %v", err)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware for mobile app
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(postgresDB, redisClient, logger, sessionSecret, registrationCode)
	entryHandler := handlers.NewEntryHandler(postgresDB, redisClient, logger, registry, imageStore, location)
	adminHandler := handlers.NewAdminHandler(postgresDB, redisClient, logger, registry)
	maintenance := handlers.NewMaintenanceHandler(postgresDB, redisClient, logger, location)

	if err := maintenance.Start(); err != nil {
		logger.Fatalf("Failed to start maintenance jobs: %v", err)
	}

	authRequired := middleware.AuthMiddleware(postgresDB, redisClient, sessionSecret)

	// Define routes
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/create-account", authHandler.CreateAccount)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authRequired, authHandler.Logout)
		}

		v1.GET("/profile", authRequired, authHandler.GetProfile)
		v1.POST("/profile/update", authRequired, authHandler.UpdateProfile)

		v1.GET("/timeline", authRequired, entryHandler.ListTimeline)

		// Creation is keyed by form type, single-entry operations by id;
		// the two live in separate groups so the route params stay honest
		v1.POST("/entries/:type", authRequired, entryHandler.CreateEntry)

		entry := v1.Group("/entry")
		entry.Use(authRequired)
		{
			entry.GET("/:id", entryHandler.GetEntry)
			entry.POST("/:id/pin", entryHandler.PinEntry)
			entry.POST("/:id/unpin", entryHandler.UnpinEntry)
			entry.POST("/:id/delete", entryHandler.DeleteEntry)
		}

		// Read-only JSON API
		api := v1.Group("/api")
		api.Use(authRequired)
		{
			api.GET("/entries", entryHandler.ApiListEntries)
			api.GET("/forms", entryHandler.ApiListForms)
		}

		admin := v1.Group("/admin")
		admin.Use(authRequired, middleware.AdminMiddleware(postgresDB))
		{
			admin.POST("/sync-forms", adminHandler.SyncForms)
			admin.POST("/update-form-type", adminHandler.UpdateFormType)
			admin.POST("/grant-access", adminHandler.GrantAccess)
			admin.POST("/revoke-access", adminHandler.RevokeAccess)
			admin.POST("/update-permissions", adminHandler.UpdatePermissions)
			admin.GET("/stats", adminHandler.Stats)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Serve uploaded entry images
	router.Static("/uploads", uploadsDir)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + getEnvOrDefault("PORT", "9091"),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	maintenance.Stop()

	// Give a 5 second timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
