package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinkatsu/workout-log/internal/config"
	"kinkatsu/workout-log/internal/domain"
)

func TestOpenSQLite(t *testing.T) {
	stores, err := Open(context.Background(), config.DatabaseConfig{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "backend.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, stores.Close()) })

	ctx := context.Background()
	id, err := stores.Exercises.Create(ctx, &domain.Exercise{Name: "Squat", BodyParts: []domain.BodyPart{domain.BodyPartLegs}})
	require.NoError(t, err)

	w, err := stores.Workouts.SaveWorkout(ctx, "u1", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), domain.WorkoutHeader{},
		[]domain.WorkoutItemInput{{ExerciseID: id, Sets: []domain.WorkoutSetInput{{WeightKg: 100, Reps: 5}}}})
	require.NoError(t, err)
	assert.Equal(t, 1, w.SetCount())
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
