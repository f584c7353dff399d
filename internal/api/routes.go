package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kinkatsu/workout-log/internal/action"
	"kinkatsu/workout-log/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	exportService service.ExportService,
	actions *action.Orchestrator,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService, actions)
	workoutHandler := NewWorkoutHandler(workoutService, exportService, actions)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	// Identity is optional here; the actions answer auth_required on
	// their own, reads go through RequireUser.
	identified := apiV1.Group("")
	identified.Use(AuthMiddleware(jwtSecret))
	{
		identified.GET("/me", RequireUser(), func(c *gin.Context) {
			userID, _ := getUserIDFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		exerciseGroup := identified.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
		}

		workoutGroup := identified.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.SaveWorkout)
			workoutGroup.GET("", RequireUser(), workoutHandler.ListWorkouts)
			workoutGroup.GET("/volume", RequireUser(), workoutHandler.GetVolume)
			workoutGroup.GET("/:date", RequireUser(), workoutHandler.GetWorkout)
			workoutGroup.POST("/export", RequireUser(), workoutHandler.ExportWorkouts)
		}
	}
}
