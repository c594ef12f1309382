package service

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressionService owns the auto-progression rule: when a user's best
// value on an exercise reaches the catalog target, every plan slot holding
// that exercise is swapped to the next exercise in its chain.
type ProgressionService interface {
	// CheckAutoProgression is a pure decision: it returns the next exercise
	// when bestValue has reached the target AND the chain continues, and
	// nil (with no error) otherwise. It mutates nothing.
	CheckAutoProgression(ctx context.Context, exerciseID string, bestValue int) (*domain.Exercise, error)

	// AutoProgressPlans rewrites every plan of the user that references the
	// completed exercise so it references the next one instead, preserving
	// each slot's sets and (customized) target. Plans already advanced are
	// naturally skipped, so retries are no-ops. Outcomes are per-plan;
	// nothing is rolled back on a later failure.
	AutoProgressPlans(ctx context.Context, userID primitive.ObjectID, completedExerciseID, nextExerciseID string) (*PlanBatchResult, error)
}

// progressionService implements the ProgressionService interface.
type progressionService struct {
	exerciseRepo repository.ExerciseRepository
	planRepo     repository.PlanRepository
}

// NewProgressionService creates a new instance of progressionService.
func NewProgressionService(
	exerciseRepo repository.ExerciseRepository,
	planRepo repository.PlanRepository,
) ProgressionService {
	return &progressionService{
		exerciseRepo: exerciseRepo,
		planRepo:     planRepo,
	}
}

// CheckAutoProgression loads the exercise and applies the rule. Reaching
// the target exactly counts; an exercise at the end of its chain never
// progresses regardless of the value.
func (s *progressionService) CheckAutoProgression(ctx context.Context, exerciseID string, bestValue int) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	if bestValue < exercise.Target.Value || exercise.NextProgressionID == "" {
		return nil, nil
	}

	next, err := s.exerciseRepo.GetByID(ctx, exercise.NextProgressionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Dangling chain link: degrade to "no progression" rather than
			// failing the workout flow.
			return nil, nil
		}
		return nil, err
	}
	return next, nil
}

// AutoProgressPlans loads every plan of the user and substitutes the
// completed exercise id in place. The slot's sets and target are kept as
// they are: progression must not clobber a user's customized rep scheme.
func (s *progressionService) AutoProgressPlans(ctx context.Context, userID primitive.ObjectID, completedExerciseID, nextExerciseID string) (*PlanBatchResult, error) {
	if completedExerciseID == "" || nextExerciseID == "" {
		return nil, errors.New("completed and next exercise IDs are required")
	}

	plans, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &PlanBatchResult{}
	for i := range plans {
		plan := &plans[i]

		changed := false
		exercises := make([]domain.PlanExercise, len(plan.Exercises))
		copy(exercises, plan.Exercises)
		for j := range exercises {
			if exercises[j].ExerciseID == completedExerciseID {
				exercises[j].ExerciseID = nextExerciseID
				changed = true
			}
		}
		if !changed {
			continue // plan untouched, not part of the result
		}

		outcome := PlanOutcome{PlanID: plan.ID, DayLabel: plan.DayLabel()}
		update := domain.PlanUpdate{Exercises: &exercises}
		if err := s.planRepo.Update(ctx, plan.ID, update); err != nil {
			outcome.Err = err
			result.Failed = append(result.Failed, outcome)
			continue
		}
		result.Succeeded = append(result.Succeeded, outcome)
	}
	return result, nil
}
