package api

import (
	"calistix/bodyweight-app/internal/entitlement"
	"calistix/bodyweight-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the gin engine.
//
// The pro entitlement gates only route access (strength paths, stats,
// admin media); none of the services behind these routes know about it.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	proChecker entitlement.Checker,
	authService service.AuthService,
	userService service.UserService,
	catalogService service.CatalogService,
	progressService service.ProgressService,
	planService service.PlanService,
	workoutService service.WorkoutService,
) {
	authHandler := NewAuthHandler(authService, userService)
	catalogHandler := NewCatalogHandler(catalogService, progressService)
	planHandler := NewPlanHandler(planService)
	workoutHandler := NewWorkoutHandler(workoutService)

	authMiddleware := AuthMiddleware(jwtSecret)
	proMiddleware := ProMiddleware(proChecker)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.GetProfile)
		protected.PATCH("/me", authHandler.UpdateProfile)

		// --- Catalog Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", catalogHandler.ListExercises)
			exerciseGroup.GET("/beginner", catalogHandler.ListBeginnerExercises)
			exerciseGroup.GET("/:id", catalogHandler.GetExercise)
			exerciseGroup.GET("/:id/chain", catalogHandler.GetProgressionChain)

			// Demo media administration; pro-gated as a stand-in for a real
			// admin role until one exists.
			exerciseGroup.POST("/:id/demo-upload", proMiddleware, catalogHandler.RequestDemoUpload)
			exerciseGroup.POST("/:id/demo-upload/confirm", proMiddleware, catalogHandler.ConfirmDemoUpload)
		}

		skillGroup := protected.Group("/skills")
		{
			skillGroup.GET("", catalogHandler.ListSkills)
			skillGroup.GET("/:id", catalogHandler.GetSkill)
		}

		// Strength paths are a pro feature.
		pathGroup := protected.Group("/strength-paths")
		pathGroup.Use(proMiddleware)
		{
			pathGroup.GET("", catalogHandler.ListStrengthPaths)
			pathGroup.GET("/:id", catalogHandler.GetStrengthPath)
		}

		// --- Plan Routes ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.GetPlans)
			planGroup.POST("/generate", planHandler.GeneratePlans)
			planGroup.DELETE("", planHandler.DeleteAllPlans)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.PATCH("/:id", planHandler.UpdatePlan)
			planGroup.POST("/:id/complete", planHandler.CompletePlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("/complete", workoutHandler.CompleteWorkout)
			workoutGroup.GET("/history", workoutHandler.GetHistory)
			workoutGroup.GET("/stats", proMiddleware, workoutHandler.GetStats)
		}
	}
}
