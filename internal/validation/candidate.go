package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern is the plain decimal notation of JSON numbers and form
// fields, with an optional fraction and exponent.
var decimalPattern = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Number holds a numeric field exactly as submitted. It accepts a JSON
// number or a JSON string so form posts and JSON bodies decode to the same
// candidate. The empty Number means the field was absent.
type Number string

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	*n = Number(data)
	return nil
}

// IsEmpty reports whether the field was left blank.
func (n Number) IsEmpty() bool {
	return strings.TrimSpace(string(n)) == ""
}

// Float64 parses the number. Only decimal notation is accepted: hex
// floats, underscores, NaN and infinities are not numbers here.
func (n Number) Float64() (float64, error) {
	s := strings.TrimSpace(string(n))
	if !decimalPattern.MatchString(s) {
		return 0, strconv.ErrSyntax
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}

// FlexList decodes from either a single JSON value or an array.
type FlexList[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '[' {
		var slice []T
		if err := json.Unmarshal(data, &slice); err != nil {
			return err
		}
		*f = FlexList[T](slice)
		return nil
	}
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*f = FlexList[T]{item}
	return nil
}

// ExerciseCandidate is an unvalidated exercise create request.
type ExerciseCandidate struct {
	Name      string           `json:"name"`
	BodyParts FlexList[string] `json:"bodyParts"`
}

// WorkoutCandidate is an unvalidated workout save request.
type WorkoutCandidate struct {
	Date       string          `json:"date"`
	BodyWeight Number          `json:"bodyWeight"`
	DayRPE     Number          `json:"dayRpe"`
	Notes      string          `json:"notes"`
	Items      []ItemCandidate `json:"items"`
}

type ItemCandidate struct {
	ExerciseID string         `json:"exerciseId"`
	Sets       []SetCandidate `json:"sets"`
}

type SetCandidate struct {
	WeightKg Number `json:"weightKg"`
	Reps     Number `json:"reps"`
	RPE      Number `json:"rpe"`
}
