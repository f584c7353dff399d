// Package backend opens the repositories for the configured database
// driver.
package backend

import (
	"context"
	"log"
	"strings"
	"time"

	"kinkatsu/workout-log/internal/config"
	"kinkatsu/workout-log/internal/repository"
	"kinkatsu/workout-log/internal/repository/mongo"
	"kinkatsu/workout-log/internal/repository/sqlstore"
)

const indexTimeout = time.Minute

// Stores groups the repositories of one backend.
type Stores struct {
	Users     repository.UserRepository
	Exercises repository.ExerciseRepository
	Workouts  repository.WorkoutRepository

	close func() error
}

// Close releases the underlying connection.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the database named by cfg.Driver. "mongo" selects
// MongoDB; every other driver goes through gorm.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	if strings.EqualFold(cfg.Driver, "mongo") || strings.EqualFold(cfg.Driver, "mongodb") {
		return openMongo(ctx, cfg)
	}

	db, err := sqlstore.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Users:     sqlstore.NewUserRepository(db),
		Exercises: sqlstore.NewExerciseRepository(db),
		Workouts:  sqlstore.NewWorkoutRepository(db),
		close:     func() error { return sqlstore.Close(db) },
	}, nil
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Name)

	indexCtx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	if err := mongo.EnsureIndexes(indexCtx, db); err != nil {
		_ = mongo.DisconnectDB(client)
		return nil, err
	}
	log.Printf("INFO: Connected to MongoDB database %q", cfg.Name)

	return &Stores{
		Users:     mongo.NewMongoUserRepository(db),
		Exercises: mongo.NewMongoExerciseRepository(db),
		Workouts:  mongo.NewMongoWorkoutRepository(db),
		close:     func() error { return mongo.DisconnectDB(client) },
	}, nil
}
