//go:build integration

package sqlstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"kinkatsu/workout-log/internal/config"
	"kinkatsu/workout-log/internal/domain"
)

func TestPostgresConcurrentSavesLeaveOneCompleteTree(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("workouts"),
		postgrescontainer.WithUsername("app"),
		postgrescontainer.WithPassword("app"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var db *gorm.DB
	require.Eventually(t, func() bool {
		db, err = Connect(config.DatabaseConfig{Driver: "postgres", DSN: dsn, LogLevel: "silent", MaxOpenConns: 8})
		return err == nil
	}, 30*time.Second, 500*time.Millisecond)
	t.Cleanup(func() { _ = Close(db) })

	exercises := NewExerciseRepository(db)
	workouts := NewWorkoutRepository(db)
	squat, err := exercises.Create(ctx, &domain.Exercise{Name: "スクワット", BodyParts: []domain.BodyPart{domain.BodyPartLegs}})
	require.NoError(t, err)

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	first, err := workouts.SaveWorkout(ctx, "user-1", day, domain.WorkoutHeader{}, nil)
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sets := make([]domain.WorkoutSetInput, n+1)
			for j := range sets {
				sets[j] = domain.WorkoutSetInput{WeightKg: float64(100 + n), Reps: 5}
			}
			_, err := workouts.SaveWorkout(ctx, "user-1", day, domain.WorkoutHeader{}, []domain.WorkoutItemInput{{ExerciseID: squat, Sets: sets}})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := workouts.GetByDate(ctx, "user-1", day)
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Len(t, got.Items, 1)

	// Every set in the surviving tree comes from the same writer.
	sets := got.Items[0].Sets
	require.Len(t, sets, int(sets[0].WeightKg)-100+1)
	for _, s := range sets {
		require.Equal(t, sets[0].WeightKg, s.WeightKg)
	}
}
