package service

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPlanAccessDenied  = errors.New("plan does not belong to this user")
	ErrPlanDayTaken      = errors.New("a plan already exists for this day")
	ErrPlanValidation    = errors.New("plan validation failed")
	ErrGoalNotConfigured = errors.New("user has no primary goal configured")
)

// PlanOutcome is the per-document result of a batch plan mutation.
type PlanOutcome struct {
	PlanID   primitive.ObjectID `json:"planId"`
	DayLabel string             `json:"dayLabel"`
	Err      error              `json:"-"`
}

// PlanBatchResult collects per-plan outcomes of a best-effort batch
// operation. Succeeded entries stay committed even when later entries fail;
// there is no rollback.
type PlanBatchResult struct {
	Succeeded []PlanOutcome `json:"succeeded"`
	Failed    []PlanOutcome `json:"failed"`
}

// PartialFailure reports whether some, but not all, documents failed.
func (r *PlanBatchResult) PartialFailure() bool {
	return len(r.Failed) > 0 && len(r.Succeeded) > 0
}

// PlanService manages the lifecycle of a user's per-day workout plans.
type PlanService interface {
	CreatePlan(ctx context.Context, userID primitive.ObjectID, goalID string, dayIndex int, exercises []domain.PlanExercise) (*domain.Plan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.Plan, error)
	GetUserPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
	// GetPlanForDay returns nil, nil when the user has no plan on that day.
	GetPlanForDay(ctx context.Context, userID primitive.ObjectID, dayIndex int) (*domain.Plan, error)
	UpdatePlan(ctx context.Context, userID, planID primitive.ObjectID, update domain.PlanUpdate) (*domain.Plan, error)
	// MarkPlanCompleted sets completed=true; calling it again is a no-op.
	MarkPlanCompleted(ctx context.Context, userID, planID primitive.ObjectID) error
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
	// DeleteAllUserPlans deletes each owned plan one document at a time and
	// reports per-plan outcomes; it never rolls back prior deletes.
	DeleteAllUserPlans(ctx context.Context, userID primitive.ObjectID) (*PlanBatchResult, error)

	// GeneratePlans seeds one single-exercise plan per training day from the
	// user's primary goal curriculum. Deprecated in the product (users build
	// plans explicitly now) but kept as the regeneration reference behavior.
	GeneratePlans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
}

// planService implements the PlanService interface.
type planService struct {
	planRepo     repository.PlanRepository
	userRepo     repository.UserRepository
	skillRepo    repository.SkillRepository
	pathRepo     repository.SkillRepository
	exerciseRepo repository.ExerciseRepository
	progressRepo repository.ProgressRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	pathRepo repository.SkillRepository,
	exerciseRepo repository.ExerciseRepository,
	progressRepo repository.ProgressRepository,
) PlanService {
	return &planService{
		planRepo:     planRepo,
		userRepo:     userRepo,
		skillRepo:    skillRepo,
		pathRepo:     pathRepo,
		exerciseRepo: exerciseRepo,
		progressRepo: progressRepo,
	}
}

// CreatePlan validates and persists a new plan. The one-plan-per-day rule
// is enforced here with a query, not by a database constraint.
func (s *planService) CreatePlan(ctx context.Context, userID primitive.ObjectID, goalID string, dayIndex int, exercises []domain.PlanExercise) (*domain.Plan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a plan")
	}
	if dayIndex < 1 || dayIndex > 7 {
		return nil, ErrPlanValidation
	}
	for _, pe := range exercises {
		if pe.ExerciseID == "" || pe.Sets < 1 || pe.Target.Value < 1 {
			return nil, ErrPlanValidation
		}
	}

	existing, err := s.planRepo.GetByUserAndDay(ctx, userID, dayIndex)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPlanDayTaken
	}

	if goalID == "" {
		goalID = domain.GoalCustom
	}
	plan := &domain.Plan{
		UserID:    userID,
		GoalID:    goalID,
		DayIndex:  dayIndex,
		Exercises: exercises,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID)
}

// GetPlan retrieves one plan and verifies ownership.
func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// GetUserPlans returns the user's plans ordered by day of week.
func (s *planService) GetUserPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	return s.planRepo.GetByUserID(ctx, userID)
}

// GetPlanForDay returns the plan for one weekday, or nil when there is none.
func (s *planService) GetPlanForDay(ctx context.Context, userID primitive.ObjectID, dayIndex int) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByUserAndDay(ctx, userID, dayIndex)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

// UpdatePlan applies a partial update, including wholesale replacement of
// the exercise list, and returns the updated plan.
func (s *planService) UpdatePlan(ctx context.Context, userID, planID primitive.ObjectID, update domain.PlanUpdate) (*domain.Plan, error) {
	if _, err := s.GetPlan(ctx, userID, planID); err != nil {
		return nil, err
	}
	if update.DayIndex != nil && (*update.DayIndex < 1 || *update.DayIndex > 7) {
		return nil, ErrPlanValidation
	}
	if update.Exercises != nil {
		for _, pe := range *update.Exercises {
			if pe.ExerciseID == "" || pe.Sets < 1 || pe.Target.Value < 1 {
				return nil, ErrPlanValidation
			}
		}
	}
	if update.IsEmpty() {
		return s.planRepo.GetByID(ctx, planID)
	}

	if err := s.planRepo.Update(ctx, planID, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID)
}

// MarkPlanCompleted flips the completed flag. Already-completed plans pass
// through unchanged.
func (s *planService) MarkPlanCompleted(ctx context.Context, userID, planID primitive.ObjectID) error {
	completed := true
	_, err := s.UpdatePlan(ctx, userID, planID, domain.PlanUpdate{Completed: &completed})
	return err
}

// DeletePlan removes one plan after an ownership check.
func (s *planService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	if _, err := s.GetPlan(ctx, userID, planID); err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// DeleteAllUserPlans deletes every plan the user owns, one at a time. A
// failure partway leaves earlier deletes committed; the result lists what
// happened to each document.
func (s *planService) DeleteAllUserPlans(ctx context.Context, userID primitive.ObjectID) (*PlanBatchResult, error) {
	plans, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &PlanBatchResult{}
	for i := range plans {
		plan := &plans[i]
		outcome := PlanOutcome{PlanID: plan.ID, DayLabel: plan.DayLabel()}
		if err := s.planRepo.Delete(ctx, plan.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			outcome.Err = err
			result.Failed = append(result.Failed, outcome)
			continue
		}
		result.Succeeded = append(result.Succeeded, outcome)
	}
	return result, nil
}

// GeneratePlans is the retained seed algorithm: resolve the user's goal
// curriculum, pick the FIRST not-yet-completed exercise (index 0 when the
// whole curriculum is complete, restarting the chain), and create one
// three-set plan per training day for that single exercise, with the target
// copied from the catalog.
//
// Regeneration is delete-all-then-generate at the caller's discretion and
// inherits the delete's non-atomicity.
func (s *planService) GeneratePlans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.PrimaryGoalID == "" || user.GoalType == domain.GoalTypeCustom || user.GoalType == "" {
		return nil, ErrGoalNotConfigured
	}

	curriculumRepo := s.skillRepo
	if user.GoalType == domain.GoalTypeStrengthPath {
		curriculumRepo = s.pathRepo
	}
	curriculum, err := curriculumRepo.GetByID(ctx, user.PrimaryGoalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	ordered := domain.OrderedProgression(curriculum.Progression)
	if len(ordered) == 0 {
		return nil, ErrPlanValidation
	}

	completedIDs, err := s.progressRepo.GetCompletedExerciseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed := domain.NewCompletedSet(completedIDs)

	seedEntry := ordered[domain.FirstIncompleteIndex(curriculum.Progression, completed)]
	exercise, err := s.exerciseRepo.GetByID(ctx, seedEntry.ExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	days := user.TrainingDaysPerWeek
	if days < 1 {
		days = 3
	}
	if days > 7 {
		days = 7
	}

	created := make([]domain.Plan, 0, days)
	for day := 1; day <= days; day++ {
		plan := &domain.Plan{
			UserID:   userID,
			GoalID:   curriculum.ID,
			DayIndex: day,
			Exercises: []domain.PlanExercise{{
				ExerciseID: exercise.ID,
				Sets:       3,
				Target:     exercise.Target,
			}},
		}
		planID, err := s.planRepo.Create(ctx, plan)
		if err != nil {
			// Best effort, like the delete path: plans already created stay.
			return created, err
		}
		plan.ID = planID
		created = append(created, *plan)
	}
	return created, nil
}
