package sqlstore

import (
	"time"

	"gorm.io/datatypes"

	"kinkatsu/workout-log/internal/domain"
)

type userRow struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:100"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type exerciseRow struct {
	ID        string                               `gorm:"primaryKey;size:36"`
	Name      string                               `gorm:"size:100;not null;uniqueIndex"`
	BodyParts datatypes.JSONSlice[domain.BodyPart] `gorm:"not null"`
	CreatedBy *string                              `gorm:"size:36"`
	CreatedAt time.Time
}

func (exerciseRow) TableName() string { return "exercises" }

func (r exerciseRow) toDomain() domain.Exercise {
	parts := make([]domain.BodyPart, len(r.BodyParts))
	copy(parts, r.BodyParts)
	return domain.Exercise{
		ID:        r.ID,
		Name:      r.Name,
		BodyParts: parts,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}

type workoutRow struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserID     string    `gorm:"column:user_id;size:36;not null;uniqueIndex:idx_workouts_user_date,priority:1"`
	Date       time.Time `gorm:"column:date;not null;uniqueIndex:idx_workouts_user_date,priority:2"`
	BodyWeight *float64  `gorm:"column:body_weight"`
	DayRPE     *float64  `gorm:"column:day_rpe"`
	Notes      *string   `gorm:"column:notes;size:1000"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (workoutRow) TableName() string { return "workouts" }

func (r workoutRow) toDomain() domain.Workout {
	return domain.Workout{
		ID:         r.ID,
		UserID:     r.UserID,
		Date:       domain.NormalizeDate(r.Date.UTC()),
		BodyWeight: r.BodyWeight,
		DayRPE:     r.DayRPE,
		Notes:      r.Notes,
		Items:      []domain.WorkoutItem{},
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type workoutItemRow struct {
	ID         string `gorm:"primaryKey;size:36"`
	WorkoutID  string `gorm:"column:workout_id;size:36;not null;index"`
	ExerciseID string `gorm:"column:exercise_id;size:36;not null;index"`
	OrderIndex int    `gorm:"column:order_index;not null"`
}

func (workoutItemRow) TableName() string { return "workout_items" }

type workoutSetRow struct {
	ID            string   `gorm:"primaryKey;size:36"`
	WorkoutItemID string   `gorm:"column:workout_item_id;size:36;not null;index"`
	SetIndex      int      `gorm:"column:set_index;not null"`
	WeightKg      float64  `gorm:"column:weight_kg;not null"`
	Reps          int      `gorm:"column:reps;not null"`
	RPE           *float64 `gorm:"column:rpe"`
}

func (workoutSetRow) TableName() string { return "workout_sets" }
