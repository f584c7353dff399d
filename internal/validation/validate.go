// Package validation turns unvalidated request candidates into domain
// inputs. Nothing here performs I/O.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kinkatsu/workout-log/internal/domain"
)

const (
	MaxNameLength  = 100
	MaxNotesLength = 1000
	MaxWeightKg    = 1000
	MaxReps        = 1000
	MaxBodyWeight  = 500
	MinRPE         = 1
	MaxRPE         = 10
)

// Issue is one failed check. Path addresses the offending field, e.g.
// "items.0.sets.2.reps".
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Issues is the list of problems found in a candidate, ordered by path.
type Issues []Issue

func (is Issues) Error() string {
	parts := make([]string, len(is))
	for i, issue := range is {
		if issue.Path == "" {
			parts[i] = issue.Message
			continue
		}
		parts[i] = issue.Path + ": " + issue.Message
	}
	return strings.Join(parts, "; ")
}

// Validate implements validation.Validatable.
func (c ExerciseCandidate) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name,
			validation.Required,
			validation.By(func(interface{}) error {
				if utf8.RuneCountInString(c.Name) > MaxNameLength {
					return validation.NewError("validation_name_length", "must be at most 100 characters")
				}
				return nil
			}),
		),
		validation.Field(&c.BodyParts,
			validation.Required.ErrorObject(errNoBodyParts),
			validation.Each(bodyPartRule),
		),
	)
}

// Validate implements validation.Validatable.
func (c WorkoutCandidate) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Date,
			validation.Required,
			validation.Match(datePattern).Error("must be in YYYY-MM-DD format"),
			validation.Date(domain.DateLayout).Error("must be a valid calendar date"),
		),
		validation.Field(&c.BodyWeight, positiveUpTo(MaxBodyWeight)),
		validation.Field(&c.DayRPE, between(MinRPE, MaxRPE)),
		validation.Field(&c.Notes, validation.By(func(interface{}) error {
			if utf8.RuneCountInString(c.Notes) > MaxNotesLength {
				return validation.NewError("validation_notes_length", "must be at most 1000 characters")
			}
			return nil
		})),
		validation.Field(&c.Items),
	)
}

// Validate implements validation.Validatable.
func (c ItemCandidate) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ExerciseID, validation.Required),
		validation.Field(&c.Sets, validation.Required.ErrorObject(errNoSets)),
	)
}

// Validate implements validation.Validatable.
func (c SetCandidate) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.WeightKg, positiveUpTo(MaxWeightKg).Required()),
		validation.Field(&c.Reps, positiveUpTo(MaxReps).Integer().Required()),
		validation.Field(&c.RPE, between(MinRPE, MaxRPE)),
	)
}

// ValidateExercise checks an exercise candidate. The name is trimmed before
// checking and repeated body parts collapse to their first occurrence.
func ValidateExercise(c ExerciseCandidate) (domain.ExerciseInput, Issues) {
	c.Name = strings.TrimSpace(c.Name)
	if issues := collect(c.Validate()); len(issues) > 0 {
		return domain.ExerciseInput{}, issues
	}

	seen := make(map[domain.BodyPart]bool, len(c.BodyParts))
	parts := make([]domain.BodyPart, 0, len(c.BodyParts))
	for _, s := range c.BodyParts {
		p := domain.BodyPart(s)
		if seen[p] {
			continue
		}
		seen[p] = true
		parts = append(parts, p)
	}
	return domain.ExerciseInput{Name: c.Name, BodyParts: parts}, nil
}

// ValidateWorkout checks a workout candidate and converts it to a save
// request. A missing item list is an empty one. Exercise ids are trimmed
// before checking.
func ValidateWorkout(c WorkoutCandidate) (domain.WorkoutInput, Issues) {
	c.Date = strings.TrimSpace(c.Date)
	items := make([]ItemCandidate, len(c.Items))
	for i, item := range c.Items {
		item.ExerciseID = strings.TrimSpace(item.ExerciseID)
		items[i] = item
	}
	c.Items = items
	if issues := collect(c.Validate()); len(issues) > 0 {
		return domain.WorkoutInput{}, issues
	}

	date, err := domain.ParseDate(c.Date)
	if err != nil {
		return domain.WorkoutInput{}, Issues{{Path: "date", Message: "must be a valid calendar date"}}
	}

	var conv converter
	in := domain.WorkoutInput{
		Date: date,
		Header: domain.WorkoutHeader{
			BodyWeight: conv.optional("bodyWeight", c.BodyWeight),
			DayRPE:     conv.optional("dayRpe", c.DayRPE),
		},
		Items: make([]domain.WorkoutItemInput, 0, len(c.Items)),
	}
	if c.Notes != "" {
		notes := c.Notes
		in.Header.Notes = &notes
	}
	for i, item := range c.Items {
		sets := make([]domain.WorkoutSetInput, 0, len(item.Sets))
		for j, s := range item.Sets {
			prefix := fmt.Sprintf("items.%d.sets.%d.", i, j)
			sets = append(sets, domain.WorkoutSetInput{
				WeightKg: conv.required(prefix+"weightKg", s.WeightKg),
				Reps:     int(conv.required(prefix+"reps", s.Reps)),
				RPE:      conv.optional(prefix+"rpe", s.RPE),
			})
		}
		in.Items = append(in.Items, domain.WorkoutItemInput{
			ExerciseID: item.ExerciseID,
			Sets:       sets,
		})
	}
	if len(conv.issues) > 0 {
		return domain.WorkoutInput{}, conv.issues
	}
	return in, nil
}

// converter parses already validated numbers and records any that still
// fail, so no value is ever defaulted.
type converter struct {
	issues Issues
}

func (c *converter) required(path string, n Number) float64 {
	f, err := n.Float64()
	if err != nil {
		c.issues = append(c.issues, Issue{Path: path, Message: errNotANumber.Message()})
	}
	return f
}

func (c *converter) optional(path string, n Number) *float64 {
	if n.IsEmpty() {
		return nil
	}
	f := c.required(path, n)
	return &f
}

// collect flattens nested ozzo errors into dotted paths.
func collect(err error) Issues {
	if err == nil {
		return nil
	}
	var issues Issues
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return Issues{{Message: "invalid input"}}
	}
	flatten("", err, &issues)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}

func flatten(prefix string, err error, out *Issues) {
	if errs, ok := err.(validation.Errors); ok {
		for key, e := range errs {
			if e == nil {
				continue
			}
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			flatten(path, e, out)
		}
		return
	}
	*out = append(*out, Issue{Path: prefix, Message: err.Error()})
}
