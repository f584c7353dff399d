package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kinkatsu/workout-log/internal/action"
	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/service"
	"kinkatsu/workout-log/internal/validation"
)

// WorkoutHandler serves workout saves and the cached workout reads.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	exportService  service.ExportService
	actions        *action.Orchestrator
}

func NewWorkoutHandler(workoutService service.WorkoutService, exportService service.ExportService, actions *action.Orchestrator) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		exportService:  exportService,
		actions:        actions,
	}
}

// SaveWorkout godoc
// @Summary Save the workout for one day
// @Description Replaces the current user's workout for the submitted date.
// @Description Accepts the flat form (exerciseId-{i}, setCount-{i},
// @Description weightKg-{i}-{j}, reps-{i}-{j}, rpe-{i}-{j}) or nested JSON.
// @Tags Workouts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Success 200 {object} action.Result "Workout saved"
// @Failure 400 {object} action.Result "Validation failed"
// @Failure 401 {object} action.Result "Authentication required"
// @Failure 503 {object} action.Result "Store unavailable"
// @Router /workouts [post]
func (h *WorkoutHandler) SaveWorkout(c *gin.Context) {
	ctx := c.Request.Context()
	if isJSON(c) {
		var candidate validation.WorkoutCandidate
		if err := c.ShouldBindJSON(&candidate); err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		writeResult(c, h.actions.SaveWorkout(ctx, candidate), http.StatusOK)
		return
	}

	form, err := formValues(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid form body")
		return
	}
	writeResult(c, h.actions.SubmitWorkoutSave(ctx, form), http.StatusOK)
}

// GetWorkout godoc
// @Summary Get the current user's workout for a date
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date path string true "Day in YYYY-MM-DD"
// @Success 200 {object} domain.Workout
// @Failure 404 {object} gin.H "No workout logged that day"
// @Router /workouts/{date} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be a valid YYYY-MM-DD day")
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("ERROR: get workout %s/%s: %v", userID, domain.DateKey(date), err)
		abortWithServiceError(c, err, "Failed to retrieve workout.")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// ListWorkouts godoc
// @Summary List the current user's workouts, newest first
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param from query string false "First day, inclusive"
// @Param to query string false "Last day, inclusive"
// @Success 200 {array} domain.Workout
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)
	from, ok := optionalDate(c, "from")
	if !ok {
		return
	}
	to, ok := optionalDate(c, "to")
	if !ok {
		return
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		abortWithError(c, http.StatusBadRequest, "from must not be after to")
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID, from, to)
	if err != nil {
		log.Printf("ERROR: list workouts %s: %v", userID, err)
		abortWithServiceError(c, err, "Failed to retrieve workouts.")
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	c.JSON(http.StatusOK, workouts)
}

// GetVolume godoc
// @Summary Training volume for the week and month containing a date
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day in YYYY-MM-DD, defaults to today (UTC)"
// @Success 200 {object} domain.VolumeSummary
// @Router /workouts/volume [get]
func (h *WorkoutHandler) GetVolume(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)
	date, ok := optionalDate(c, "date")
	if !ok {
		return
	}
	if date.IsZero() {
		date = domain.NormalizeDate(time.Now())
	}

	summary, err := h.workoutService.GetVolume(c.Request.Context(), userID, date)
	if err != nil {
		log.Printf("ERROR: volume %s/%s: %v", userID, domain.DateKey(date), err)
		abortWithServiceError(c, err, "Failed to compute volume.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportWorkouts godoc
// @Summary Export the current user's history to object storage
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 201 {object} service.ExportResult
// @Failure 501 {object} gin.H "Export not configured"
// @Router /workouts/export [post]
func (h *WorkoutHandler) ExportWorkouts(c *gin.Context) {
	userID, _ := getUserIDFromContext(c)
	result, err := h.exportService.ExportHistory(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrExportDisabled) {
			abortWithError(c, http.StatusNotImplemented, err.Error())
			return
		}
		log.Printf("ERROR: export %s: %v", userID, err)
		abortWithServiceError(c, err, "Failed to export workouts.")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// optionalDate parses query parameter name. An absent parameter yields the
// zero time; a malformed one aborts with 400 and ok=false.
func optionalDate(c *gin.Context, name string) (date time.Time, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, name+" must be a valid YYYY-MM-DD day")
		return time.Time{}, false
	}
	return date, true
}
