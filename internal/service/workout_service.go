package service

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEmptyWorkout = errors.New("workout has no exercises")
)

// CompletedExerciseInput is one finished plan slot reported by the client.
type CompletedExerciseInput struct {
	ExerciseID    string
	Sets          int
	CompletedSets int
	Target        domain.Target
	ActualValues  []int
}

// CompleteWorkoutInput is everything the client reports when a session ends.
type CompleteWorkoutInput struct {
	PlanID          primitive.ObjectID
	DayIndex        int
	Exercises       []CompletedExerciseInput
	DurationSeconds int
}

// ProgressionEvent announces one auto-progression triggered by a session:
// which exercise was outgrown, what replaced it, and which plans changed.
type ProgressionEvent struct {
	FromExerciseID string           `json:"fromExerciseId"`
	ToExerciseID   string           `json:"toExerciseId"`
	ToExerciseName string           `json:"toExerciseName"`
	UpdatedPlans   *PlanBatchResult `json:"updatedPlans"`
}

// CompletionResult is what a finished session produced.
type CompletionResult struct {
	HistoryID    string             `json:"historyId"`
	Progressions []ProgressionEvent `json:"progressions"`
}

// WorkoutStats aggregates the history log for the stats screen.
// TotalExercises counts exercise slots across sessions, not completed sets.
type WorkoutStats struct {
	TotalWorkouts       int `json:"totalWorkouts"`
	TotalExercises      int `json:"totalExercises"`
	WeeklyStreak        int `json:"weeklyStreak"`
	LongestWeeklyStreak int `json:"longestWeeklyStreak"`
}

// WorkoutService orchestrates the end of a session: append the history
// record, update per-exercise progress, and fire auto-progression. It also
// serves history listings and adherence stats.
type WorkoutService interface {
	CompleteWorkout(ctx context.Context, userID primitive.ObjectID, input CompleteWorkoutInput) (*CompletionResult, error)
	GetHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutHistory, error)
	GetStats(ctx context.Context, userID primitive.ObjectID) (*WorkoutStats, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	historyRepo     repository.WorkoutHistoryRepository
	progressService ProgressService
	progression     ProgressionService
	now             func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	historyRepo repository.WorkoutHistoryRepository,
	progressService ProgressService,
	progression ProgressionService,
) WorkoutService {
	return &workoutService{
		historyRepo:     historyRepo,
		progressService: progressService,
		progression:     progression,
		now:             time.Now,
	}
}

// CompleteWorkout runs the full completion flow. The history append comes
// first: a failure there fails the call, while later progress/progression
// steps are best effort per exercise (the session itself is already on
// record). Nothing is transactional across documents.
func (s *workoutService) CompleteWorkout(ctx context.Context, userID primitive.ObjectID, input CompleteWorkoutInput) (*CompletionResult, error) {
	if len(input.Exercises) == 0 {
		return nil, ErrEmptyWorkout
	}

	completedAt := s.now().UTC()
	record := &domain.WorkoutHistory{
		ID:              uuid.NewString(),
		UserID:          userID,
		PlanID:          input.PlanID,
		DayIndex:        input.DayIndex,
		CompletedAt:     completedAt,
		DurationSeconds: input.DurationSeconds,
	}
	for _, in := range input.Exercises {
		record.Exercises = append(record.Exercises, domain.HistoryExercise{
			ExerciseID:    in.ExerciseID,
			Sets:          in.Sets,
			CompletedSets: in.CompletedSets,
			Target:        in.Target,
			ActualValues:  in.ActualValues,
		})
	}

	if err := s.historyRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	result := &CompletionResult{HistoryID: record.ID}
	return s.applyProgress(ctx, userID, record, result)
}

// applyProgress records best values and fires auto-progression for every
// exercise of the finished session.
func (s *workoutService) applyProgress(ctx context.Context, userID primitive.ObjectID, record *domain.WorkoutHistory, result *CompletionResult) (*CompletionResult, error) {
	for i := range record.Exercises {
		ex := &record.Exercises[i]
		best := ex.BestLoggedValue()
		if best <= 0 {
			continue // nothing logged for this slot
		}

		progress, err := s.progressService.RecordCompletion(ctx, userID, ex.ExerciseID, best, record.CompletedAt)
		if err != nil {
			return result, err
		}

		next, err := s.progression.CheckAutoProgression(ctx, ex.ExerciseID, progress.BestValue)
		if err != nil {
			if errors.Is(err, ErrExerciseNotFound) {
				continue // slot references an exercise gone from the catalog
			}
			return result, err
		}
		if next == nil {
			continue
		}

		updated, err := s.progression.AutoProgressPlans(ctx, userID, ex.ExerciseID, next.ID)
		if err != nil {
			return result, err
		}
		result.Progressions = append(result.Progressions, ProgressionEvent{
			FromExerciseID: ex.ExerciseID,
			ToExerciseID:   next.ID,
			ToExerciseName: next.Name,
			UpdatedPlans:   updated,
		})
	}
	return result, nil
}

// GetHistory returns the user's sessions, newest first.
func (s *workoutService) GetHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutHistory, error) {
	return s.historyRepo.GetByUserID(ctx, userID)
}

// GetStats aggregates totals and weekly streaks from the history log.
func (s *workoutService) GetStats(ctx context.Context, userID primitive.ObjectID) (*WorkoutStats, error) {
	records, err := s.historyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &WorkoutStats{TotalWorkouts: len(records)}
	completions := make([]time.Time, 0, len(records))
	for i := range records {
		stats.TotalExercises += len(records[i].Exercises)
		completions = append(completions, records[i].CompletedAt)
	}
	stats.WeeklyStreak, stats.LongestWeeklyStreak = domain.ComputeWeeklyStreaks(completions, s.now())
	return stats, nil
}
