package api

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler serves plan CRUD and the retained generation flow.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type PlanExerciseRequest struct {
	ExerciseID string        `json:"exerciseId" binding:"required"`
	Sets       int           `json:"sets" binding:"required,min=1"`
	Target     domain.Target `json:"target" binding:"required"`
}

type CreatePlanRequest struct {
	GoalID    string                `json:"goalId"`
	DayIndex  int                   `json:"dayIndex" binding:"required,min=1,max=7"`
	Exercises []PlanExerciseRequest `json:"exercises" binding:"required,dive"`
}

type UpdatePlanRequest struct {
	GoalID    *string                `json:"goalId"`
	DayIndex  *int                   `json:"dayIndex" binding:"omitempty,min=1,max=7"`
	Exercises *[]PlanExerciseRequest `json:"exercises" binding:"omitempty,dive"`
	Completed *bool                  `json:"completed"`
}

// BatchOutcomeResponse is the per-plan outcome of a batch mutation.
type BatchOutcomeResponse struct {
	PlanID   string `json:"planId"`
	DayLabel string `json:"dayLabel"`
	Error    string `json:"error,omitempty"`
}

// BatchResultResponse reports a best-effort batch mutation. Succeeded
// entries stay committed even when others fail.
type BatchResultResponse struct {
	Succeeded []BatchOutcomeResponse `json:"succeeded"`
	Failed    []BatchOutcomeResponse `json:"failed"`
}

// MapBatchResult converts a service batch result into the API shape.
func MapBatchResult(result *service.PlanBatchResult) BatchResultResponse {
	resp := BatchResultResponse{
		Succeeded: []BatchOutcomeResponse{},
		Failed:    []BatchOutcomeResponse{},
	}
	for _, o := range result.Succeeded {
		resp.Succeeded = append(resp.Succeeded, BatchOutcomeResponse{PlanID: o.PlanID.Hex(), DayLabel: o.DayLabel})
	}
	for _, o := range result.Failed {
		out := BatchOutcomeResponse{PlanID: o.PlanID.Hex(), DayLabel: o.DayLabel}
		if o.Err != nil {
			out.Error = o.Err.Error()
		}
		resp.Failed = append(resp.Failed, out)
	}
	return resp
}

func mapPlanExercises(in []PlanExerciseRequest) []domain.PlanExercise {
	out := make([]domain.PlanExercise, 0, len(in))
	for _, pe := range in {
		out = append(out, domain.PlanExercise{
			ExerciseID: pe.ExerciseID,
			Sets:       pe.Sets,
			Target:     pe.Target,
		})
	}
	return out
}

// --- Handler Methods ---

// CreatePlan creates a plan for one day of the week.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, req.GoalID, req.DayIndex, mapPlanExercises(req.Exercises))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanDayTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrPlanValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan")
		}
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetPlans returns all of the user's plans, or the single plan for a day
// when the "day" query parameter is present.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if dayStr := c.Query("day"); dayStr != "" {
		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 1 || day > 7 {
			abortWithError(c, http.StatusBadRequest, "day must be an integer between 1 and 7")
			return
		}
		plan, err := h.planService.GetPlanForDay(c.Request.Context(), userID, day)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
			return
		}
		if plan == nil {
			abortWithError(c, http.StatusNotFound, "no plan for this day")
			return
		}
		c.JSON(http.StatusOK, plan)
		return
	}

	plans, err := h.planService.GetUserPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load plans")
		return
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan returns one plan by id.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, planID, ok := h.planParams(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		h.mapPlanError(c, err, "Failed to load plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdatePlan applies a partial plan update.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	userID, planID, ok := h.planParams(c)
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	update := domain.PlanUpdate{
		GoalID:    req.GoalID,
		DayIndex:  req.DayIndex,
		Completed: req.Completed,
	}
	if req.Exercises != nil {
		exercises := mapPlanExercises(*req.Exercises)
		update.Exercises = &exercises
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), userID, planID, update)
	if err != nil {
		h.mapPlanError(c, err, "Failed to update plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// CompletePlan marks a plan completed (idempotent).
func (h *PlanHandler) CompletePlan(c *gin.Context) {
	userID, planID, ok := h.planParams(c)
	if !ok {
		return
	}

	if err := h.planService.MarkPlanCompleted(c.Request.Context(), userID, planID); err != nil {
		h.mapPlanError(c, err, "Failed to complete plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// DeletePlan removes one plan.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, planID, ok := h.planParams(c)
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		h.mapPlanError(c, err, "Failed to delete plan")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAllPlans removes every plan of the user, best effort.
func (h *PlanHandler) DeleteAllPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	result, err := h.planService.DeleteAllUserPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete plans")
		return
	}

	status := http.StatusOK
	if len(result.Failed) > 0 {
		// Some plans are gone, some are not; the body says which.
		status = http.StatusMultiStatus
	}
	c.JSON(status, MapBatchResult(result))
}

// GeneratePlans seeds plans from the user's primary goal (retained legacy
// flow; regeneration is delete-all first, at the client's discretion).
func (h *PlanHandler) GeneratePlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.GeneratePlans(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotConfigured):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSkillNotFound), errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plans")
		}
		return
	}
	c.JSON(http.StatusCreated, plans)
}

// planParams extracts the caller id and the :id path parameter.
func (h *PlanHandler) planParams(c *gin.Context) (primitive.ObjectID, primitive.ObjectID, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return userID, planID, true
}

func (h *PlanHandler) mapPlanError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPlanValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
