package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kinkatsu/workout-log/internal/action"
	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/service"
	"kinkatsu/workout-log/internal/validation"
)

// ExerciseHandler serves the exercise catalog.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	actions         *action.Orchestrator
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, actions *action.Orchestrator) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, actions: actions}
}

// CreateExercise godoc
// @Summary Create a new exercise
// @Description Adds an entry to the shared catalog. Accepts a form
// @Description (name, repeated bodyParts) or the equivalent JSON.
// @Tags Exercises
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Success 201 {object} action.Result "Exercise created"
// @Failure 400 {object} action.Result "Validation failed"
// @Failure 401 {object} action.Result "Authentication required"
// @Failure 409 {object} action.Result "Name already taken"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	ctx := c.Request.Context()
	if isJSON(c) {
		var candidate validation.ExerciseCandidate
		if err := c.ShouldBindJSON(&candidate); err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		writeResult(c, h.actions.CreateExercise(ctx, candidate), http.StatusCreated)
		return
	}

	form, err := formValues(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid form body")
		return
	}
	writeResult(c, h.actions.SubmitExerciseCreate(ctx, form), http.StatusCreated)
}

// ListExercises godoc
// @Summary List the exercise catalog
// @Tags Exercises
// @Produce json
// @Success 200 {array} domain.Exercise
// @Failure 503 {object} gin.H "Store unavailable"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: list exercises: %v", err)
		abortWithServiceError(c, err, "Failed to retrieve exercises.")
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}
