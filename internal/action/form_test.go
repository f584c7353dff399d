package action

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinkatsu/workout-log/internal/validation"
)

func TestDecodeWorkoutFormOrdersItemsAndClosesGaps(t *testing.T) {
	form := url.Values{
		"date":          {" 2024-05-01 "},
		"exerciseId-10": {"deadlift"},
		"setCount-10":   {"1"},
		"weightKg-10-0": {"140"},
		"reps-10-0":     {"3"},
		"exerciseId-2":  {"squat"},
		"setCount-2":    {"1"},
		"weightKg-2-0":  {"100"},
		"reps-2-0":      {"5"},
	}

	c := DecodeWorkoutForm(form)

	assert.Equal(t, "2024-05-01", c.Date)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "squat", c.Items[0].ExerciseID)
	assert.Equal(t, "deadlift", c.Items[1].ExerciseID)
}

func TestDecodeWorkoutFormSkipsIncompleteSets(t *testing.T) {
	form := url.Values{
		"exerciseId-0": {"bench"},
		"setCount-0":   {"3"},
		"weightKg-0-0": {"60"},
		"reps-0-0":     {"10"},
		"weightKg-0-1": {"60"},
		"reps-0-2":     {"8"},
		"exerciseId-1": {"row"},
		"setCount-1":   {"1"},
		"weightKg-1-0": {""},
		"reps-1-0":     {"12"},
	}

	c := DecodeWorkoutForm(form)

	require.Len(t, c.Items, 1)
	assert.Equal(t, []validation.SetCandidate{{WeightKg: "60", Reps: "10"}}, c.Items[0].Sets)
}

func TestDecodeWorkoutFormIgnoresBadIndices(t *testing.T) {
	form := url.Values{
		"exerciseId-01":  {"padded"},
		"exerciseId--1":  {"negative"},
		"exerciseId-abc": {"word"},
		"exerciseId-0":   {"bench"},
		"setCount-0":     {"not-a-number"},
	}

	c := DecodeWorkoutForm(form)

	assert.Empty(t, c.Items)
	assert.NotNil(t, c.Items)
}

func TestDecodeWorkoutFormCapsSetCount(t *testing.T) {
	form := url.Values{
		"exerciseId-0": {"bench"},
		"setCount-0":   {"99999999"},
		"weightKg-0-0": {"60"},
		"reps-0-0":     {"10"},
	}

	c := DecodeWorkoutForm(form)

	require.Len(t, c.Items, 1)
	assert.Len(t, c.Items[0].Sets, 1)
}

func TestDecodeExerciseForm(t *testing.T) {
	c := DecodeExerciseForm(url.Values{"name": {"Squat"}, "bodyParts": {"LEGS", " ", "ABS"}})

	assert.Equal(t, "Squat", c.Name)
	assert.Equal(t, validation.FlexList[string]{"LEGS", "ABS"}, c.BodyParts)
}
