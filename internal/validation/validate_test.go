package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinkatsu/workout-log/internal/domain"
)

func workoutWithSet(set SetCandidate) WorkoutCandidate {
	return WorkoutCandidate{
		Date:  "2024-05-01",
		Items: []ItemCandidate{{ExerciseID: "ex-1", Sets: []SetCandidate{set}}},
	}
}

func paths(issues Issues) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Path
	}
	return out
}

func TestValidateWorkoutSetBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		set     SetCandidate
		badPath string
	}{
		{"weight at max", SetCandidate{WeightKg: "1000", Reps: "5"}, ""},
		{"weight over max", SetCandidate{WeightKg: "1000.01", Reps: "5"}, "items.0.sets.0.weightKg"},
		{"weight zero", SetCandidate{WeightKg: "0", Reps: "5"}, "items.0.sets.0.weightKg"},
		{"reps zero", SetCandidate{WeightKg: "60", Reps: "0"}, "items.0.sets.0.reps"},
		{"reps fractional", SetCandidate{WeightKg: "60", Reps: "2.5"}, "items.0.sets.0.reps"},
		{"reps at max", SetCandidate{WeightKg: "60", Reps: "1000"}, ""},
		{"rpe at max", SetCandidate{WeightKg: "60", Reps: "5", RPE: "10"}, ""},
		{"rpe over max", SetCandidate{WeightKg: "60", Reps: "5", RPE: "10.1"}, "items.0.sets.0.rpe"},
		{"rpe under min", SetCandidate{WeightKg: "60", Reps: "5", RPE: "0.5"}, "items.0.sets.0.rpe"},
		{"weight not a number", SetCandidate{WeightKg: "heavy", Reps: "5"}, "items.0.sets.0.weightKg"},
		{"weight missing", SetCandidate{Reps: "5"}, "items.0.sets.0.weightKg"},
		{"weight whitespace", SetCandidate{WeightKg: "  ", Reps: "5"}, "items.0.sets.0.weightKg"},
		{"reps whitespace", SetCandidate{WeightKg: "60", Reps: " "}, "items.0.sets.0.reps"},
		{"weight hex float", SetCandidate{WeightKg: "0x1p3", Reps: "5"}, "items.0.sets.0.weightKg"},
		{"reps with underscore", SetCandidate{WeightKg: "60", Reps: "1_0"}, "items.0.sets.0.reps"},
		{"weight exponent", SetCandidate{WeightKg: "1e2", Reps: "5"}, ""},
		{"weight leading dot", SetCandidate{WeightKg: ".5", Reps: "5"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, issues := ValidateWorkout(workoutWithSet(tc.set))
			if tc.badPath == "" {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, []string{tc.badPath}, paths(issues))
		})
	}
}

func TestValidateWorkoutNonNumericIsNotDefaulted(t *testing.T) {
	_, issues := ValidateWorkout(workoutWithSet(SetCandidate{WeightKg: "NaN", Reps: "5"}))
	require.Len(t, issues, 1)
	assert.Equal(t, "must be a number", issues[0].Message)
}

func TestValidateWorkoutRejectsBlankSetFromJSON(t *testing.T) {
	var c WorkoutCandidate
	require.NoError(t, json.Unmarshal([]byte(`{
		"date": "2024-05-01",
		"items": [{"exerciseId": "ex-1", "sets": [{"weightKg": " ", "reps": "  "}]}]
	}`), &c))

	in, issues := ValidateWorkout(c)

	assert.Equal(t, []string{"items.0.sets.0.reps", "items.0.sets.0.weightKg"}, paths(issues))
	for _, is := range issues {
		assert.Equal(t, "cannot be blank", is.Message)
	}
	assert.Empty(t, in.Items)
}

func TestValidateWorkoutTrimsExerciseID(t *testing.T) {
	set := []SetCandidate{{WeightKg: "60", Reps: "5"}}

	_, issues := ValidateWorkout(WorkoutCandidate{
		Date:  "2024-05-01",
		Items: []ItemCandidate{{ExerciseID: "   ", Sets: set}},
	})
	require.Len(t, issues, 1)
	assert.Equal(t, "items.0.exerciseId", issues[0].Path)
	assert.Equal(t, "cannot be blank", issues[0].Message)

	c := WorkoutCandidate{
		Date:  "2024-05-01",
		Items: []ItemCandidate{{ExerciseID: " ex-1 ", Sets: set}},
	}
	in, issues := ValidateWorkout(c)
	require.Empty(t, issues)
	assert.Equal(t, "ex-1", in.Items[0].ExerciseID)
	assert.Equal(t, " ex-1 ", c.Items[0].ExerciseID)
}

func TestNumberFloat64AcceptsDecimalOnly(t *testing.T) {
	for _, ok := range []string{"8", " 8 ", "-1.5", "2.", ".25", "1e3", "6.02E+2"} {
		_, err := Number(ok).Float64()
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"", " ", "0x1p3", "0x10", "1_000", "+5", "Inf", "NaN", "1e", "1.2.3", "5kg"} {
		_, err := Number(bad).Float64()
		assert.Error(t, err, bad)
	}
}

func TestValidateWorkoutAllowsZeroItems(t *testing.T) {
	in, issues := ValidateWorkout(WorkoutCandidate{Date: "2024-05-01"})
	require.Empty(t, issues)
	assert.NotNil(t, in.Items)
	assert.Empty(t, in.Items)
	assert.Nil(t, in.Header.BodyWeight)
	assert.Nil(t, in.Header.Notes)
}

func TestValidateWorkoutItemNeedsSets(t *testing.T) {
	_, issues := ValidateWorkout(WorkoutCandidate{
		Date:  "2024-05-01",
		Items: []ItemCandidate{{ExerciseID: "ex-1"}, {Sets: []SetCandidate{{WeightKg: "1", Reps: "1"}}}},
	})
	assert.Equal(t, []string{"items.0.sets", "items.1.exerciseId"}, paths(issues))
}

func TestValidateWorkoutHeader(t *testing.T) {
	tests := []struct {
		name      string
		candidate WorkoutCandidate
		badPath   string
	}{
		{"bad format", WorkoutCandidate{Date: "2024/05/01"}, "date"},
		{"impossible day", WorkoutCandidate{Date: "2023-02-30"}, "date"},
		{"missing date", WorkoutCandidate{}, "date"},
		{"body weight max", WorkoutCandidate{Date: "2024-05-01", BodyWeight: "500"}, ""},
		{"body weight over", WorkoutCandidate{Date: "2024-05-01", BodyWeight: "500.5"}, "bodyWeight"},
		{"day rpe over", WorkoutCandidate{Date: "2024-05-01", DayRPE: "11"}, "dayRpe"},
		{"notes too long", WorkoutCandidate{Date: "2024-05-01", Notes: strings.Repeat("あ", 1001)}, "notes"},
		{"notes at max", WorkoutCandidate{Date: "2024-05-01", Notes: strings.Repeat("あ", 1000)}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, issues := ValidateWorkout(tc.candidate)
			if tc.badPath == "" {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, []string{tc.badPath}, paths(issues))
		})
	}
}

func TestValidateWorkoutConvertsValues(t *testing.T) {
	in, issues := ValidateWorkout(WorkoutCandidate{
		Date:       "2024-05-01",
		BodyWeight: "72.5",
		DayRPE:     "8",
		Notes:      "felt good",
		Items: []ItemCandidate{{
			ExerciseID: "ex-1",
			Sets: []SetCandidate{
				{WeightKg: "100", Reps: "5", RPE: "8.5"},
				{WeightKg: "90", Reps: "8"},
			},
		}},
	})
	require.Empty(t, issues)
	assert.Equal(t, "2024-05-01", domain.DateKey(in.Date))
	require.NotNil(t, in.Header.BodyWeight)
	assert.Equal(t, 72.5, *in.Header.BodyWeight)
	require.NotNil(t, in.Header.Notes)
	assert.Equal(t, "felt good", *in.Header.Notes)
	require.Len(t, in.Items, 1)
	require.Len(t, in.Items[0].Sets, 2)
	assert.Equal(t, 5, in.Items[0].Sets[0].Reps)
	require.NotNil(t, in.Items[0].Sets[0].RPE)
	assert.Equal(t, 8.5, *in.Items[0].Sets[0].RPE)
	assert.Nil(t, in.Items[0].Sets[1].RPE)
}

func TestValidateExercise(t *testing.T) {
	in, issues := ValidateExercise(ExerciseCandidate{
		Name:      "  ベンチプレス ",
		BodyParts: FlexList[string]{"CHEST", "ARMS", "CHEST"},
	})
	require.Empty(t, issues)
	assert.Equal(t, "ベンチプレス", in.Name)
	assert.Equal(t, []domain.BodyPart{domain.BodyPartChest, domain.BodyPartArms}, in.BodyParts)
}

func TestValidateExerciseFailures(t *testing.T) {
	tests := []struct {
		name      string
		candidate ExerciseCandidate
		want      []string
	}{
		{"zero body parts", ExerciseCandidate{Name: "Squat"}, []string{"bodyParts"}},
		{"unknown body part", ExerciseCandidate{Name: "Squat", BodyParts: FlexList[string]{"LEGS", "TAIL"}}, []string{"bodyParts.1"}},
		{"blank name", ExerciseCandidate{Name: "   ", BodyParts: FlexList[string]{"LEGS"}}, []string{"name"}},
		{"long name", ExerciseCandidate{Name: strings.Repeat("x", 101), BodyParts: FlexList[string]{"LEGS"}}, []string{"name"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, issues := ValidateExercise(tc.candidate)
			assert.Equal(t, tc.want, paths(issues))
		})
	}
}

func TestCandidatesDecodeFromJSON(t *testing.T) {
	var w WorkoutCandidate
	require.NoError(t, json.Unmarshal([]byte(`{
		"date": "2024-05-01",
		"bodyWeight": 70,
		"items": [{"exerciseId": "ex-1", "sets": [{"weightKg": "60", "reps": 10, "rpe": null}]}]
	}`), &w))
	assert.Equal(t, Number("70"), w.BodyWeight)
	assert.Equal(t, Number("60"), w.Items[0].Sets[0].WeightKg)
	assert.Equal(t, Number("10"), w.Items[0].Sets[0].Reps)
	assert.True(t, w.Items[0].Sets[0].RPE.IsEmpty())

	var e ExerciseCandidate
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Squat", "bodyParts": "LEGS"}`), &e))
	assert.Equal(t, FlexList[string]{"LEGS"}, e.BodyParts)
}
