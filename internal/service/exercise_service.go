package service

import (
	"context"
	"errors"
	"fmt"

	"kinkatsu/workout-log/internal/cache"
	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/repository"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrExerciseNameTaken = fmt.Errorf("an exercise with this name already exists: %w", repository.ErrDuplicateName)
)

type ExerciseService interface {
	// CreateExercise adds a catalog entry. createdBy is nil for seed data.
	CreateExercise(ctx context.Context, createdBy *string, in domain.ExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error)
	// ListExercises returns the catalog sorted by name. The slice is shared
	// with the cache and must not be modified.
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	cache        *cache.Service
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, c *cache.Service) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		cache:        c,
	}
}

// CreateExercise checks the name before inserting; the store's unique
// index catches creates that race past the check.
func (s *exerciseService) CreateExercise(ctx context.Context, createdBy *string, in domain.ExerciseInput) (*domain.Exercise, error) {
	_, err := s.exerciseRepo.GetByName(ctx, in.Name)
	if err == nil {
		return nil, ErrExerciseNameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	exercise := &domain.Exercise{
		Name:      in.Name,
		BodyParts: in.BodyParts,
		CreatedBy: createdBy,
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrExerciseNameTaken
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.TagExercises)
	return exercise, nil
}

func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyExercises, []string{cache.TagExercises}, s.exerciseRepo.ListAll)
}
