package api

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler serves session completion, history and stats.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type CompletedExerciseRequest struct {
	ExerciseID    string        `json:"exerciseId" binding:"required"`
	Sets          int           `json:"sets" binding:"required,min=1"`
	CompletedSets int           `json:"completedSets" binding:"min=0"`
	Target        domain.Target `json:"target" binding:"required"`
	ActualValues  []int         `json:"actualValues"`
}

type CompleteWorkoutRequest struct {
	PlanID          string                     `json:"planId"`
	DayIndex        int                        `json:"dayIndex" binding:"required,min=1,max=7"`
	Exercises       []CompletedExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
	DurationSeconds int                        `json:"durationSeconds" binding:"min=0"`
}

// ProgressionEventResponse announces one auto-progression to the client.
type ProgressionEventResponse struct {
	FromExerciseID string              `json:"fromExerciseId"`
	ToExerciseID   string              `json:"toExerciseId"`
	ToExerciseName string              `json:"toExerciseName"`
	UpdatedPlans   BatchResultResponse `json:"updatedPlans"`
}

type CompleteWorkoutResponse struct {
	HistoryID    string                     `json:"historyId"`
	Progressions []ProgressionEventResponse `json:"progressions"`
}

// --- Handler Methods ---

// CompleteWorkout records a finished session and returns any progressions
// it triggered.
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.CompleteWorkoutInput{
		DayIndex:        req.DayIndex,
		DurationSeconds: req.DurationSeconds,
	}
	if req.PlanID != "" {
		planID, err := primitive.ObjectIDFromHex(req.PlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
			return
		}
		input.PlanID = planID
	}
	for _, ex := range req.Exercises {
		input.Exercises = append(input.Exercises, service.CompletedExerciseInput{
			ExerciseID:    ex.ExerciseID,
			Sets:          ex.Sets,
			CompletedSets: ex.CompletedSets,
			Target:        ex.Target,
			ActualValues:  ex.ActualValues,
		})
	}

	result, err := h.workoutService.CompleteWorkout(c.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrEmptyWorkout) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to record workout")
		}
		return
	}

	resp := CompleteWorkoutResponse{
		HistoryID:    result.HistoryID,
		Progressions: []ProgressionEventResponse{},
	}
	for _, ev := range result.Progressions {
		resp.Progressions = append(resp.Progressions, ProgressionEventResponse{
			FromExerciseID: ev.FromExerciseID,
			ToExerciseID:   ev.ToExerciseID,
			ToExerciseName: ev.ToExerciseName,
			UpdatedPlans:   MapBatchResult(ev.UpdatedPlans),
		})
	}
	c.JSON(http.StatusCreated, resp)
}

// GetHistory returns the user's workout log, newest first.
func (h *WorkoutHandler) GetHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	records, err := h.workoutService.GetHistory(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load workout history")
		return
	}
	if records == nil {
		records = []domain.WorkoutHistory{}
	}
	c.JSON(http.StatusOK, records)
}

// GetStats returns totals and weekly streaks.
func (h *WorkoutHandler) GetStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	stats, err := h.workoutService.GetStats(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
