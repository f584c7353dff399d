package action

import "kinkatsu/workout-log/internal/validation"

// Kind classifies a failed action so transports can pick a status code
// without reading messages.
type Kind string

const (
	KindAuthRequired  Kind = "auth_required"
	KindValidation    Kind = "validation_failed"
	KindDuplicateName Kind = "duplicate_name"
	KindStoreError    Kind = "store_error"
	KindUnknown       Kind = "unknown"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// User-facing messages. Internal error text never reaches a Result.
const (
	msgAuthRequired   = "authentication required"
	msgInvalidInput   = "the submitted data is invalid"
	msgDuplicateName  = "an exercise with the same name already exists"
	msgUnknownRef     = "references an exercise that does not exist"
	msgExerciseFailed = "failed to create the exercise"
	msgWorkoutFailed  = "failed to save the workout"
	msgUnexpected     = "an unexpected error occurred"
)

// Result is the outcome of a submitted action.
type Result struct {
	Status string            `json:"status"`
	Data   *Data             `json:"data,omitempty"`
	Error  string            `json:"error,omitempty"`
	Kind   Kind              `json:"kind,omitempty"`
	Issues validation.Issues `json:"issues,omitempty"`
}

// Data carries the id of the created or saved entity.
type Data struct {
	ID string `json:"id"`
}

func success(id string) Result {
	return Result{Status: StatusSuccess, Data: &Data{ID: id}}
}

func failure(kind Kind, message string) Result {
	return Result{Status: StatusError, Kind: kind, Error: message}
}

func invalid(issues validation.Issues) Result {
	return Result{Status: StatusError, Kind: KindValidation, Error: msgInvalidInput, Issues: issues}
}

// OK reports whether the action succeeded.
func (r Result) OK() bool { return r.Status == StatusSuccess }

func (r Result) metricLabel() string {
	if r.OK() {
		return "success"
	}
	return string(r.Kind)
}
