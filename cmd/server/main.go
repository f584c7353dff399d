package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"kinkatsu/workout-log/internal/action"
	"kinkatsu/workout-log/internal/api"
	"kinkatsu/workout-log/internal/auth"
	"kinkatsu/workout-log/internal/cache"
	"kinkatsu/workout-log/internal/config"
	"kinkatsu/workout-log/internal/repository/backend"
	"kinkatsu/workout-log/internal/service"
	"kinkatsu/workout-log/internal/storage"
)

// @title Workout Log API
// @version 1.0
// @description Exercise catalog and daily workout log.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Workout Log Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: jwt.secret (JWT_SECRET) must be set")
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	stores, err := backend.Open(context.Background(), cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open %s database: %v", cfg.Database.Driver, err)
	}
	defer func() {
		log.Println("Closing database...")
		if err := stores.Close(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()

	// --- Cache ---
	readCache, err := cache.New(cache.Config{
		Capacity:           cfg.Cache.Capacity,
		NumShards:          cfg.Cache.NumShards,
		TTL:                cfg.Cache.TTL,
		EvictionPercentage: cfg.Cache.EvictionPercentage,
		EvictionInterval:   cfg.Cache.EvictionInterval,
	})
	if err != nil {
		log.Fatalf("FATAL: Invalid cache configuration: %v", err)
	}

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("INFO: s3.bucket_name not set, workout export disabled")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(stores.Users, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	exerciseService := service.NewExerciseService(stores.Exercises, readCache)
	workoutService := service.NewWorkoutService(stores.Workouts, readCache)
	exportService := service.NewExportService(stores.Workouts, fileStorage, cfg.S3.PresignExpiry)
	actions := action.NewOrchestrator(auth.ContextIdentity{}, exerciseService, workoutService, log.Default())

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, exerciseService, workoutService, exportService, actions)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
