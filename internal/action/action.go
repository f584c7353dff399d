// Package action runs user-submitted mutations end to end: identity,
// decoding, validation, persistence and cache invalidation. Every call
// returns a Result; nothing escapes as an error or a panic.
package action

import (
	"context"
	"errors"
	"net/url"

	"kinkatsu/workout-log/internal/auth"
	"kinkatsu/workout-log/internal/observability"
	"kinkatsu/workout-log/internal/repository"
	"kinkatsu/workout-log/internal/service"
	"kinkatsu/workout-log/internal/validation"
)

const (
	actionExerciseCreate = "exercise_create"
	actionWorkoutSave    = "workout_save"
)

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

// Orchestrator wires the collaborators an action needs.
type Orchestrator struct {
	identity  auth.Identity
	exercises service.ExerciseService
	workouts  service.WorkoutService
	logger    Logger
}

func NewOrchestrator(identity auth.Identity, exercises service.ExerciseService, workouts service.WorkoutService, logger Logger) *Orchestrator {
	return &Orchestrator{
		identity:  identity,
		exercises: exercises,
		workouts:  workouts,
		logger:    logger,
	}
}

// SubmitExerciseCreate creates a catalog entry from a flat form.
func (o *Orchestrator) SubmitExerciseCreate(ctx context.Context, form url.Values) Result {
	return o.run(ctx, actionExerciseCreate, func(userID string) Result {
		return o.createExercise(ctx, userID, DecodeExerciseForm(form))
	})
}

// CreateExercise is SubmitExerciseCreate for an already structured body.
func (o *Orchestrator) CreateExercise(ctx context.Context, c validation.ExerciseCandidate) Result {
	return o.run(ctx, actionExerciseCreate, func(userID string) Result {
		return o.createExercise(ctx, userID, c)
	})
}

// SubmitWorkoutSave saves the current user's workout for the form's date,
// replacing whatever was logged for that day.
func (o *Orchestrator) SubmitWorkoutSave(ctx context.Context, form url.Values) Result {
	return o.run(ctx, actionWorkoutSave, func(userID string) Result {
		return o.saveWorkout(ctx, userID, DecodeWorkoutForm(form))
	})
}

// SaveWorkout is SubmitWorkoutSave for an already structured body.
func (o *Orchestrator) SaveWorkout(ctx context.Context, c validation.WorkoutCandidate) Result {
	return o.run(ctx, actionWorkoutSave, func(userID string) Result {
		return o.saveWorkout(ctx, userID, c)
	})
}

func (o *Orchestrator) createExercise(ctx context.Context, userID string, c validation.ExerciseCandidate) Result {
	in, issues := validation.ValidateExercise(c)
	if len(issues) > 0 {
		return invalid(issues)
	}
	ex, err := o.exercises.CreateExercise(ctx, &userID, in)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return failure(KindDuplicateName, msgDuplicateName)
		}
		return o.fail(actionExerciseCreate, err, msgExerciseFailed)
	}
	return success(ex.ID)
}

func (o *Orchestrator) saveWorkout(ctx context.Context, userID string, c validation.WorkoutCandidate) Result {
	in, issues := validation.ValidateWorkout(c)
	if len(issues) > 0 {
		return invalid(issues)
	}
	w, err := o.workouts.SaveWorkout(ctx, userID, in)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownExercise) {
			return invalid(validation.Issues{{Path: "items", Message: msgUnknownRef}})
		}
		return o.fail(actionWorkoutSave, err, msgWorkoutFailed)
	}
	return success(w.ID)
}

// run resolves the user, then calls fn. Panics become KindUnknown.
func (o *Orchestrator) run(ctx context.Context, action string, fn func(userID string) Result) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Printf("ERROR: %s panicked: %v", action, r)
			res = failure(KindUnknown, msgUnexpected)
		}
		observability.RecordActionResult(action, res.metricLabel())
	}()

	userID, ok := o.identity.CurrentUserID(ctx)
	if !ok {
		return failure(KindAuthRequired, msgAuthRequired)
	}
	return fn(userID)
}

// fail logs err and downgrades it to a generic Result.
func (o *Orchestrator) fail(action string, err error, message string) Result {
	o.logger.Printf("ERROR: %s failed: %v", action, err)
	switch {
	case errors.Is(err, repository.ErrStore),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return failure(KindStoreError, message)
	default:
		return failure(KindUnknown, msgUnexpected)
	}
}
