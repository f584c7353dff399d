// Command seed fills an empty catalog with the default exercises. Names
// already present are left alone, so it is safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"kinkatsu/workout-log/internal/cache"
	"kinkatsu/workout-log/internal/config"
	"kinkatsu/workout-log/internal/repository/backend"
	"kinkatsu/workout-log/internal/service"
)

func main() {
	configPath := flag.String("config", ".", "directory holding config.yaml and .env")
	timeout := flag.Duration("timeout", time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	stores, err := backend.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open %s database: %v", cfg.Database.Driver, err)
	}

	c, err := cache.New(cache.DefaultConfig())
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	created, err := service.SeedCatalog(ctx, service.NewExerciseService(stores.Exercises, c), service.DefaultCatalog)
	if closeErr := stores.Close(); closeErr != nil {
		log.Printf("ERROR: Failed to close database: %v", closeErr)
	}
	if err != nil {
		log.Fatalf("FATAL: Seeding stopped after %d exercises: %v", created, err)
	}
	log.Printf("INFO: Seeded %d of %d exercises", created, len(service.DefaultCatalog))
}
