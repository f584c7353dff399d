package validation

import (
	"fmt"
	"math"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kinkatsu/workout-log/internal/domain"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	errNotANumber  = validation.NewError("validation_not_a_number", "must be a number")
	errNotInteger  = validation.NewError("validation_not_integer", "must be an integer")
	errBodyPart    = validation.NewError("validation_body_part", "must be a recognized body part")
	errNoBodyParts = validation.NewError("validation_no_body_parts", "must contain at least one body part")
	errNoSets      = validation.NewError("validation_no_sets", "must contain at least one set")
)

// numberRule checks a Number after parsing it. Blank values, whitespace
// included, pass unless the rule is Required.
type numberRule struct {
	min, max     float64
	minExclusive bool
	integer      bool
	required     bool
}

// positiveUpTo accepts 0 < v <= max.
func positiveUpTo(max float64) numberRule {
	return numberRule{min: 0, max: max, minExclusive: true}
}

// between accepts min <= v <= max.
func between(min, max float64) numberRule {
	return numberRule{min: min, max: max}
}

func (r numberRule) Integer() numberRule {
	r.integer = true
	return r
}

// Required rejects blank values.
func (r numberRule) Required() numberRule {
	r.required = true
	return r
}

func (r numberRule) Validate(value interface{}) error {
	n, ok := value.(Number)
	if !ok {
		return errNotANumber
	}
	if n.IsEmpty() {
		if r.required {
			return validation.ErrRequired
		}
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return errNotANumber
	}
	if r.integer && f != math.Trunc(f) {
		return errNotInteger
	}
	if r.minExclusive && f <= r.min {
		return validation.NewError("validation_too_small", fmt.Sprintf("must be greater than %s", formatBound(r.min)))
	}
	if !r.minExclusive && f < r.min {
		return validation.NewError("validation_too_small", fmt.Sprintf("must be no less than %s", formatBound(r.min)))
	}
	if f > r.max {
		return validation.NewError("validation_too_large", fmt.Sprintf("must be no greater than %s", formatBound(r.max)))
	}
	return nil
}

func formatBound(f float64) string {
	return fmt.Sprintf("%g", f)
}

var bodyPartRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if !domain.BodyPart(s).Valid() {
		return errBodyPart
	}
	return nil
})
