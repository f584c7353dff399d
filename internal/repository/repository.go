package repository

import (
	"context"
	"errors"
	"time"

	"kinkatsu/workout-log/internal/domain"
)

var (
	ErrNotFound        = RepositoryError("not found")
	ErrDuplicateName   = RepositoryError("duplicate name")
	ErrDuplicateEmail  = RepositoryError("duplicate email")
	ErrUnknownExercise = RepositoryError("unknown exercise")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ErrStore matches any *StoreError with errors.Is.
var ErrStore = errors.New("store failure")

// StoreError wraps a failure of the underlying store: connection loss,
// timeouts, constraint violations that have no sentinel.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// Wrap returns err as a *StoreError unless it is nil, a RepositoryError
// sentinel, or already a *StoreError.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var re RepositoryError
	if errors.As(err, &re) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
// Entries are only ever created.
type ExerciseRepository interface {
	// Create fails with ErrDuplicateName when the name is taken.
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	// ListAll returns the catalog sorted by name.
	ListAll(ctx context.Context) ([]domain.Exercise, error)
}

// WorkoutRepository persists one workout per (user, calendar day).
type WorkoutRepository interface {
	// SaveWorkout upserts the workout for (userID, date) and replaces its
	// items and sets with items, atomically. The returned workout always
	// carries its identity, date and header fields.
	SaveWorkout(ctx context.Context, userID string, date time.Time, header domain.WorkoutHeader, items []domain.WorkoutItemInput) (*domain.Workout, error)
	// GetByDate returns the full tree, items by OrderIndex and sets by
	// SetIndex, with exercise names filled in.
	GetByDate(ctx context.Context, userID string, date time.Time) (*domain.Workout, error)
	// ListByUser returns full trees for workouts with from <= date < to,
	// newest first. A zero bound is open.
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]domain.Workout, error)
}
