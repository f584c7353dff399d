package domain

import "time"

// Workout is one user's log for one calendar day. There is at most one
// Workout per (UserID, Date).
type Workout struct {
	ID         string        `bson:"_id" json:"id"`
	UserID     string        `bson:"userId" json:"userId"`
	Date       time.Time     `bson:"date" json:"date"` // UTC midnight
	BodyWeight *float64      `bson:"bodyWeight,omitempty" json:"bodyWeight,omitempty"`
	DayRPE     *float64      `bson:"dayRpe,omitempty" json:"dayRpe,omitempty"`
	Notes      *string       `bson:"notes,omitempty" json:"notes,omitempty"`
	Items      []WorkoutItem `bson:"items" json:"items"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutItem is one exercise performed within a workout. OrderIndex is
// dense from zero in submission order.
type WorkoutItem struct {
	ID           string       `bson:"id" json:"id"`
	WorkoutID    string       `bson:"-" json:"workoutId"`
	ExerciseID   string       `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string       `bson:"-" json:"exerciseName,omitempty"`
	OrderIndex   int          `bson:"orderIndex" json:"orderIndex"`
	Sets         []WorkoutSet `bson:"sets" json:"sets"`
}

// WorkoutSet is a single set. SetIndex records submission order within
// the item.
type WorkoutSet struct {
	ID            string   `bson:"id" json:"id"`
	WorkoutItemID string   `bson:"-" json:"workoutItemId"`
	SetIndex      int      `bson:"setIndex" json:"setIndex"`
	WeightKg      float64  `bson:"weightKg" json:"weightKg"`
	Reps          int      `bson:"reps" json:"reps"`
	RPE           *float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`
}

// WorkoutHeader carries the optional per-day fields of a workout. A nil
// field clears the stored value on save.
type WorkoutHeader struct {
	BodyWeight *float64
	DayRPE     *float64
	Notes      *string
}

// WorkoutItemInput is a validated item ready for persistence.
type WorkoutItemInput struct {
	ExerciseID string
	Sets       []WorkoutSetInput
}

type WorkoutSetInput struct {
	WeightKg float64
	Reps     int
	RPE      *float64
}

// WorkoutInput is a validated save request.
type WorkoutInput struct {
	Date   time.Time
	Header WorkoutHeader
	Items  []WorkoutItemInput
}

// SetCount returns the total number of sets across all items.
func (w *Workout) SetCount() int {
	n := 0
	for _, it := range w.Items {
		n += len(it.Sets)
	}
	return n
}
