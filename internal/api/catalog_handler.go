package api

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/service"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only exercise and curriculum catalog.
type CatalogHandler struct {
	catalogService  service.CatalogService
	progressService service.ProgressService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService, progressService service.ProgressService) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  catalogService,
		progressService: progressService,
	}
}

// --- Request/Response Structs ---

// ExerciseDetailResponse is an exercise plus the caller's access state.
type ExerciseDetailResponse struct {
	domain.Exercise
	Accessible   bool   `json:"accessible"`
	DemoMediaURL string `json:"demoMediaUrl,omitempty"`
}

type ConfirmDemoUploadRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

// ListExercises returns catalog exercises, optionally filtered by exactly
// one of category, level or equipment.
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		exercises []domain.Exercise
		err       error
	)
	switch {
	case c.Query("category") != "":
		exercises, err = h.catalogService.ListExercisesByCategory(ctx, domain.Category(c.Query("category")))
	case c.Query("level") != "":
		exercises, err = h.catalogService.ListExercisesByLevel(ctx, domain.Level(c.Query("level")))
	case c.Query("equipment") != "":
		exercises, err = h.catalogService.ListExercisesByEquipment(ctx, domain.Equipment(c.Query("equipment")))
	default:
		exercises, err = h.catalogService.ListExercises(ctx)
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}

	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// ListBeginnerExercises returns the curriculum entry points.
func (h *CatalogHandler) ListBeginnerExercises(c *gin.Context) {
	exercises, err := h.catalogService.ListBeginnerExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list beginner exercises")
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExercise returns one exercise with the caller's access flag and, when
// present, a temporary demo media URL.
func (h *CatalogHandler) GetExercise(c *gin.Context) {
	ctx := c.Request.Context()
	exerciseID := c.Param("id")

	exercise, err := h.catalogService.GetExercise(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load exercise")
		}
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	accessible, err := h.progressService.CanAccessExercise(ctx, userID, exerciseID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to evaluate exercise access")
		return
	}

	resp := ExerciseDetailResponse{Exercise: *exercise, Accessible: accessible}
	if exercise.DemoMediaKey != "" {
		// Media URL failures degrade to no URL; the exercise itself matters more.
		if url, err := h.catalogService.GetDemoViewURL(ctx, exerciseID); err == nil {
			resp.DemoMediaURL = url
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetProgressionChain returns the exercise chain starting at the given id.
func (h *CatalogHandler) GetProgressionChain(c *gin.Context) {
	chain, err := h.catalogService.ProgressionChain(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load progression chain")
		}
		return
	}
	c.JSON(http.StatusOK, chain)
}

// ListSkills returns every skill with the caller's per-skill overview.
func (h *CatalogHandler) ListSkills(c *gin.Context) {
	h.listCurricula(c, h.catalogService.ListSkills)
}

// ListStrengthPaths returns every strength path with the caller's overview.
func (h *CatalogHandler) ListStrengthPaths(c *gin.Context) {
	h.listCurricula(c, h.catalogService.ListStrengthPaths)
}

func (h *CatalogHandler) listCurricula(c *gin.Context, list func(ctx context.Context) ([]domain.Skill, error)) {
	ctx := c.Request.Context()

	skills, err := list(ctx)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list skills")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	overviews := make([]service.SkillOverview, 0, len(skills))
	for i := range skills {
		overview, err := h.progressService.SkillOverview(ctx, userID, &skills[i])
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to evaluate skill progress")
			return
		}
		overviews = append(overviews, *overview)
	}
	c.JSON(http.StatusOK, overviews)
}

// GetSkill returns one skill with the caller's overview.
func (h *CatalogHandler) GetSkill(c *gin.Context) {
	h.getCurriculum(c, h.catalogService.GetSkill)
}

// GetStrengthPath returns one strength path with the caller's overview.
func (h *CatalogHandler) GetStrengthPath(c *gin.Context) {
	h.getCurriculum(c, h.catalogService.GetStrengthPath)
}

func (h *CatalogHandler) getCurriculum(c *gin.Context, get func(ctx context.Context, id string) (*domain.Skill, error)) {
	ctx := c.Request.Context()

	skill, err := get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load skill")
		}
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	overview, err := h.progressService.SkillOverview(ctx, userID, skill)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to evaluate skill progress")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// RequestDemoUpload issues a presigned upload URL for an exercise demo video.
func (h *CatalogHandler) RequestDemoUpload(c *gin.Context) {
	contentType := c.Query("contentType")
	if contentType == "" {
		contentType = "video/mp4"
	}
	fileExt := c.Query("ext")
	if fileExt == "" {
		fileExt = ".mp4"
	}

	resp, err := h.catalogService.RequestDemoUploadURL(c.Request.Context(), c.Param("id"), fileExt, contentType)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to create upload URL: %v", err))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmDemoUpload records the uploaded demo object key on the exercise.
func (h *CatalogHandler) ConfirmDemoUpload(c *gin.Context) {
	var req ConfirmDemoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.catalogService.ConfirmDemoUpload(c.Request.Context(), c.Param("id"), req.ObjectKey); err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}
