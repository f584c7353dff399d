package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open(filepath.Join(t.TempDir(), "workout-log.db")), "silent")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func createExercise(t *testing.T, repo repository.ExerciseRepository, name string, parts ...domain.BodyPart) string {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.Exercise{Name: name, BodyParts: parts})
	require.NoError(t, err)
	return id
}

func ptr[T any](v T) *T { return &v }

var may1 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func TestSaveWorkoutRoundTripKeepsOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	exercises := NewExerciseRepository(db)
	workouts := NewWorkoutRepository(db)

	squat := createExercise(t, exercises, "スクワット", domain.BodyPartLegs)
	bench := createExercise(t, exercises, "ベンチプレス", domain.BodyPartChest)

	saved, err := workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{
		BodyWeight: ptr(72.5),
		DayRPE:     ptr(8.0),
		Notes:      ptr("heavy day"),
	}, []domain.WorkoutItemInput{
		{ExerciseID: squat, Sets: []domain.WorkoutSetInput{
			{WeightKg: 140, Reps: 3, RPE: ptr(9.0)},
			{WeightKg: 120, Reps: 5},
			{WeightKg: 100, Reps: 8},
		}},
		{ExerciseID: bench, Sets: []domain.WorkoutSetInput{{WeightKg: 80, Reps: 10}}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, may1, saved.Date)
	assert.Equal(t, 4, saved.SetCount())

	got, err := workouts.GetByDate(ctx, "user-1", may1)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, 72.5, *got.BodyWeight)
	assert.Equal(t, "heavy day", *got.Notes)

	require.Len(t, got.Items, 2)
	assert.Equal(t, squat, got.Items[0].ExerciseID)
	assert.Equal(t, "スクワット", got.Items[0].ExerciseName)
	assert.Equal(t, 0, got.Items[0].OrderIndex)
	assert.Equal(t, bench, got.Items[1].ExerciseID)
	assert.Equal(t, 1, got.Items[1].OrderIndex)

	weights := []float64{}
	for _, s := range got.Items[0].Sets {
		weights = append(weights, s.WeightKg)
	}
	assert.Equal(t, []float64{140, 120, 100}, weights)
	require.NotNil(t, got.Items[0].Sets[0].RPE)
	assert.Nil(t, got.Items[0].Sets[1].RPE)
}

func TestSaveWorkoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	workouts := NewWorkoutRepository(db)
	squat := createExercise(t, NewExerciseRepository(db), "スクワット", domain.BodyPartLegs)

	items := []domain.WorkoutItemInput{{ExerciseID: squat, Sets: []domain.WorkoutSetInput{{WeightKg: 100, Reps: 5}, {WeightKg: 100, Reps: 5}}}}
	first, err := workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{}, items)
	require.NoError(t, err)
	second, err := workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{}, items)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var workoutCount, itemCount, setCount int64
	require.NoError(t, db.Model(&workoutRow{}).Count(&workoutCount).Error)
	require.NoError(t, db.Model(&workoutItemRow{}).Count(&itemCount).Error)
	require.NoError(t, db.Model(&workoutSetRow{}).Count(&setCount).Error)
	assert.EqualValues(t, 1, workoutCount)
	assert.EqualValues(t, 1, itemCount)
	assert.EqualValues(t, 2, setCount)
}

func TestSaveWorkoutReplacesTreeAndClearsHeader(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	exercises := NewExerciseRepository(db)
	workouts := NewWorkoutRepository(db)
	squat := createExercise(t, exercises, "スクワット", domain.BodyPartLegs)
	curl := createExercise(t, exercises, "バイセップカール", domain.BodyPartArms)

	_, err := workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{Notes: ptr("first")}, []domain.WorkoutItemInput{
		{ExerciseID: squat, Sets: []domain.WorkoutSetInput{{WeightKg: 100, Reps: 5}}},
		{ExerciseID: curl, Sets: []domain.WorkoutSetInput{{WeightKg: 15, Reps: 12}}},
	})
	require.NoError(t, err)

	_, err = workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{}, []domain.WorkoutItemInput{
		{ExerciseID: curl, Sets: []domain.WorkoutSetInput{{WeightKg: 17.5, Reps: 8}}},
	})
	require.NoError(t, err)

	got, err := workouts.GetByDate(ctx, "user-1", may1)
	require.NoError(t, err)
	assert.Nil(t, got.Notes)
	require.Len(t, got.Items, 1)
	assert.Equal(t, curl, got.Items[0].ExerciseID)
	require.Len(t, got.Items[0].Sets, 1)
	assert.Equal(t, 17.5, got.Items[0].Sets[0].WeightKg)

	_, err = workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{}, nil)
	require.NoError(t, err)
	got, err = workouts.GetByDate(ctx, "user-1", may1)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestSaveWorkoutRollsBackOnFailedSetInsert(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	workouts := NewWorkoutRepository(db)
	squat := createExercise(t, NewExerciseRepository(db), "スクワット", domain.BodyPartLegs)

	_, err := workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{BodyWeight: ptr(70.0)}, []domain.WorkoutItemInput{
		{ExerciseID: squat, Sets: []domain.WorkoutSetInput{{WeightKg: 100, Reps: 5}}},
	})
	require.NoError(t, err)

	errInjected := errors.New("injected set insert failure")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_workout_sets", func(tx *gorm.DB) {
		if tx.Statement.Table == "workout_sets" {
			_ = tx.AddError(errInjected)
		}
	}))

	_, err = workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{BodyWeight: ptr(71.0)}, []domain.WorkoutItemInput{
		{ExerciseID: squat, Sets: []domain.WorkoutSetInput{{WeightKg: 110, Reps: 3}, {WeightKg: 110, Reps: 3}}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errInjected)
	assert.ErrorIs(t, err, repository.ErrStore)

	got, err := workouts.GetByDate(ctx, "user-1", may1)
	require.NoError(t, err)
	assert.Equal(t, 70.0, *got.BodyWeight)
	require.Len(t, got.Items, 1)
	require.Len(t, got.Items[0].Sets, 1)
	assert.Equal(t, 100.0, got.Items[0].Sets[0].WeightKg)
}

func TestSaveWorkoutRejectsUnknownExercise(t *testing.T) {
	ctx := context.Background()
	workouts := NewWorkoutRepository(newTestDB(t))

	_, err := workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{}, []domain.WorkoutItemInput{
		{ExerciseID: "missing", Sets: []domain.WorkoutSetInput{{WeightKg: 1, Reps: 1}}},
	})
	assert.ErrorIs(t, err, repository.ErrUnknownExercise)

	_, err = workouts.GetByDate(ctx, "user-1", may1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSaveWorkoutNormalizesDateRegardlessOfLocalZone(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("UTC+9", 9*3600)
	t.Cleanup(func() { time.Local = prev })

	ctx := context.Background()
	workouts := NewWorkoutRepository(newTestDB(t))

	early := time.Date(2024, 5, 1, 0, 30, 0, 0, time.Local)
	saved, err := workouts.SaveWorkout(ctx, "user-1", early, domain.WorkoutHeader{}, nil)
	require.NoError(t, err)
	assert.Equal(t, may1, saved.Date)

	got, err := workouts.GetByDate(ctx, "user-1", may1)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "2024-05-01", domain.DateKey(got.Date))
}

func TestWorkoutsAreScopedPerUserAndDay(t *testing.T) {
	ctx := context.Background()
	workouts := NewWorkoutRepository(newTestDB(t))

	a, err := workouts.SaveWorkout(ctx, "user-1", may1, domain.WorkoutHeader{}, nil)
	require.NoError(t, err)
	b, err := workouts.SaveWorkout(ctx, "user-2", may1, domain.WorkoutHeader{}, nil)
	require.NoError(t, err)
	c, err := workouts.SaveWorkout(ctx, "user-1", may1.AddDate(0, 0, 1), domain.WorkoutHeader{}, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestListByUserFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	workouts := NewWorkoutRepository(db)
	squat := createExercise(t, NewExerciseRepository(db), "スクワット", domain.BodyPartLegs)

	for _, d := range []time.Time{may1, may1.AddDate(0, 0, 3), may1.AddDate(0, 1, 0)} {
		_, err := workouts.SaveWorkout(ctx, "user-1", d, domain.WorkoutHeader{}, []domain.WorkoutItemInput{
			{ExerciseID: squat, Sets: []domain.WorkoutSetInput{{WeightKg: 100, Reps: 5}}},
		})
		require.NoError(t, err)
	}
	_, err := workouts.SaveWorkout(ctx, "user-2", may1, domain.WorkoutHeader{}, nil)
	require.NoError(t, err)

	list, err := workouts.ListByUser(ctx, "user-1", may1, may1.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-05-04", domain.DateKey(list[0].Date))
	assert.Equal(t, "2024-05-01", domain.DateKey(list[1].Date))
	require.Len(t, list[1].Items, 1)
	assert.Equal(t, "スクワット", list[1].Items[0].ExerciseName)

	all, err := workouts.ListByUser(ctx, "user-1", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestExerciseNameIsUnique(t *testing.T) {
	ctx := context.Background()
	exercises := NewExerciseRepository(newTestDB(t))

	createExercise(t, exercises, "ベンチプレス", domain.BodyPartChest)
	_, err := exercises.Create(ctx, &domain.Exercise{Name: "ベンチプレス", BodyParts: []domain.BodyPart{domain.BodyPartArms}})
	assert.ErrorIs(t, err, repository.ErrDuplicateName)
}

func TestExerciseListAllSortedByName(t *testing.T) {
	ctx := context.Background()
	exercises := NewExerciseRepository(newTestDB(t))

	createExercise(t, exercises, "Squat", domain.BodyPartLegs)
	createExercise(t, exercises, "Bench Press", domain.BodyPartChest, domain.BodyPartArms)
	createExercise(t, exercises, "Deadlift", domain.BodyPartBack)

	list, err := exercises.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Bench Press", list[0].Name)
	assert.Equal(t, []domain.BodyPart{domain.BodyPartChest, domain.BodyPartArms}, list[0].BodyParts)
	assert.Equal(t, "Deadlift", list[1].Name)
	assert.Equal(t, "Squat", list[2].Name)

	byName, err := exercises.GetByName(ctx, "Deadlift")
	require.NoError(t, err)
	assert.Equal(t, list[1].ID, byName.ID)

	_, err = exercises.GetByName(ctx, "Row")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	id, err := users.Create(ctx, &domain.User{Name: "A", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{Name: "B", Email: "a@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	got, err := users.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}
