package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kinkatsu/workout-log/internal/cache"
	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/observability"
	"kinkatsu/workout-log/internal/repository"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrUnknownExercise = fmt.Errorf("workout references an exercise that does not exist: %w", repository.ErrUnknownExercise)
)

// WorkoutService saves and reads daily workouts. Reads are cached; a save
// invalidates every cached view it can affect before returning.
type WorkoutService interface {
	SaveWorkout(ctx context.Context, userID string, in domain.WorkoutInput) (*domain.Workout, error)
	GetWorkout(ctx context.Context, userID string, date time.Time) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, userID string, from, to time.Time) ([]domain.Workout, error)
	GetVolume(ctx context.Context, userID string, date time.Time) (*domain.VolumeSummary, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	cache       *cache.Service
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, c *cache.Service) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		cache:       c,
	}
}

func (s *workoutService) SaveWorkout(ctx context.Context, userID string, in domain.WorkoutInput) (*domain.Workout, error) {
	if userID == "" {
		return nil, errors.New("user ID is required to save a workout")
	}
	day := domain.NormalizeDate(in.Date)

	start := time.Now()
	saved, err := s.workoutRepo.SaveWorkout(ctx, userID, day, in.Header, in.Items)
	observability.RecordWorkoutSave(start, err)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownExercise) {
			return nil, ErrUnknownExercise
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.WorkoutSaveTags(userID, day)...)
	return saved, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, userID string, date time.Time) (*domain.Workout, error) {
	day := domain.NormalizeDate(date)
	tags := []string{cache.WorkoutsByUser(userID), cache.WorkoutDay(userID, day)}
	w, err := cache.GetOrCompute(ctx, s.cache, cache.WorkoutKey(userID, day), tags, func(ctx context.Context) (*domain.Workout, error) {
		return s.workoutRepo.GetByDate(ctx, userID, day)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context, userID string, from, to time.Time) ([]domain.Workout, error) {
	tags := []string{cache.WorkoutsByUser(userID)}
	return cache.GetOrCompute(ctx, s.cache, cache.HistoryKey(userID, from, to), tags, func(ctx context.Context) ([]domain.Workout, error) {
		return s.workoutRepo.ListByUser(ctx, userID, from, to)
	})
}

// GetVolume sums the ISO week and the calendar month containing date.
func (s *workoutService) GetVolume(ctx context.Context, userID string, date time.Time) (*domain.VolumeSummary, error) {
	day := domain.NormalizeDate(date)
	tags := []string{cache.VolumeWeek(userID), cache.VolumeMonth(userID)}
	return cache.GetOrCompute(ctx, s.cache, cache.VolumeKey(userID, day), tags, func(ctx context.Context) (*domain.VolumeSummary, error) {
		weekFrom, weekTo := domain.WeekRange(day)
		monthFrom, monthTo := domain.MonthRange(day)
		from, to := weekFrom, weekTo
		if monthFrom.Before(from) {
			from = monthFrom
		}
		if monthTo.After(to) {
			to = monthTo
		}

		workouts, err := s.workoutRepo.ListByUser(ctx, userID, from, to)
		if err != nil {
			return nil, err
		}
		return &domain.VolumeSummary{
			Week:  sumVolume(workouts, weekFrom, weekTo),
			Month: sumVolume(workouts, monthFrom, monthTo),
		}, nil
	})
}

func sumVolume(workouts []domain.Workout, from, to time.Time) domain.Volume {
	v := domain.Volume{From: from, To: to}
	for _, w := range workouts {
		if w.Date.Before(from) || !w.Date.Before(to) {
			continue
		}
		v.Workouts++
		for _, it := range w.Items {
			for _, set := range it.Sets {
				v.Sets++
				v.Reps += set.Reps
				v.Tonnage += set.WeightKg * float64(set.Reps)
			}
		}
	}
	return v
}
