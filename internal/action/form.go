package action

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"kinkatsu/workout-log/internal/validation"
)

// maxFormSets bounds the setCount a form may claim for one item.
const maxFormSets = 1000

// DecodeExerciseForm reads "name" and the repeated "bodyParts" field.
// Blank body part values are dropped.
func DecodeExerciseForm(form url.Values) validation.ExerciseCandidate {
	c := validation.ExerciseCandidate{Name: form.Get("name")}
	for _, p := range form["bodyParts"] {
		if p = strings.TrimSpace(p); p != "" {
			c.BodyParts = append(c.BodyParts, p)
		}
	}
	return c
}

// DecodeWorkoutForm reshapes the flat workout form into a candidate.
//
// Items are the "exerciseId-{i}" fields ordered by i; gaps in i are closed
// up. Item i has "setCount-{i}" sets read from "weightKg-{i}-{j}",
// "reps-{i}-{j}" and optional "rpe-{i}-{j}". A set missing weight or reps
// is skipped and an item left with no sets is dropped. Keys whose index is
// not a non-negative integer are ignored.
func DecodeWorkoutForm(form url.Values) validation.WorkoutCandidate {
	c := validation.WorkoutCandidate{
		Date:       strings.TrimSpace(form.Get("date")),
		BodyWeight: number(form.Get("bodyWeight")),
		DayRPE:     number(form.Get("dayRpe")),
		Notes:      form.Get("notes"),
		Items:      []validation.ItemCandidate{},
	}

	for _, i := range itemIndices(form) {
		idx := strconv.Itoa(i)
		setCount, err := strconv.Atoi(strings.TrimSpace(form.Get("setCount-" + idx)))
		if err != nil || setCount < 0 {
			setCount = 0
		}
		if setCount > maxFormSets {
			setCount = maxFormSets
		}

		var sets []validation.SetCandidate
		for j := 0; j < setCount; j++ {
			suffix := idx + "-" + strconv.Itoa(j)
			weight := strings.TrimSpace(form.Get("weightKg-" + suffix))
			reps := strings.TrimSpace(form.Get("reps-" + suffix))
			if weight == "" || reps == "" {
				continue
			}
			sets = append(sets, validation.SetCandidate{
				WeightKg: validation.Number(weight),
				Reps:     validation.Number(reps),
				RPE:      number(form.Get("rpe-" + suffix)),
			})
		}
		if len(sets) == 0 {
			continue
		}
		c.Items = append(c.Items, validation.ItemCandidate{
			ExerciseID: strings.TrimSpace(form.Get("exerciseId-" + idx)),
			Sets:       sets,
		})
	}
	return c
}

func itemIndices(form url.Values) []int {
	var indices []int
	for key := range form {
		rest, ok := strings.CutPrefix(key, "exerciseId-")
		if !ok {
			continue
		}
		i, err := strconv.Atoi(rest)
		if err != nil || i < 0 || strconv.Itoa(i) != rest {
			continue
		}
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

func number(s string) validation.Number {
	return validation.Number(strings.TrimSpace(s))
}
