package cache

import (
	"time"

	"kinkatsu/workout-log/internal/domain"
)

// TagExercises covers every cached view of the exercise catalog.
const TagExercises = "exercises"

// KeyExercises is the cache key of the full catalog listing.
const KeyExercises = "exercises:all"

// WorkoutsByUser covers every cached workout view of a user.
func WorkoutsByUser(userID string) string {
	return "workouts:user:" + userID
}

// WorkoutDay covers cached views of one user's workout on one day.
func WorkoutDay(userID string, day time.Time) string {
	return "workout:" + userID + ":" + domain.DateKey(day)
}

func VolumeWeek(userID string) string {
	return "volumes:user:" + userID + ":week"
}

func VolumeMonth(userID string) string {
	return "volumes:user:" + userID + ":month"
}

// WorkoutSaveTags lists the tags a workout save for (userID, day) must
// invalidate.
func WorkoutSaveTags(userID string, day time.Time) []string {
	return []string{
		WorkoutsByUser(userID),
		WorkoutDay(userID, day),
		VolumeWeek(userID),
		VolumeMonth(userID),
	}
}

// WorkoutKey is the cache key of one day's workout tree.
func WorkoutKey(userID string, day time.Time) string {
	return "workout-detail:" + userID + ":" + domain.DateKey(day)
}

// HistoryKey is the cache key of a user's workout list for [from, to).
// Zero bounds are written as "-".
func HistoryKey(userID string, from, to time.Time) string {
	return "workout-history:" + userID + ":" + boundKey(from) + ":" + boundKey(to)
}

// VolumeKey is the cache key of the week and month volume around day.
func VolumeKey(userID string, day time.Time) string {
	return "volume:" + userID + ":" + domain.DateKey(day)
}

func boundKey(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return domain.DateKey(t)
}
