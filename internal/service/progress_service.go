package service

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
)

// SkillOverview is the per-user view of one curriculum: whether it is
// unlocked, how far along the user is, and what to train next.
type SkillOverview struct {
	Skill             domain.Skill `json:"skill"`
	Accessible        bool         `json:"accessible"`
	ProgressPercent   int          `json:"progressPercent"`
	CurrentExerciseID string       `json:"currentExerciseId,omitempty"`
}

// ProgressService joins the catalog with per-user progress records: it
// materializes the completed set, runs the pure access evaluators against
// it, and records new completions (monotonic best value).
type ProgressService interface {
	// CompletedSet loads the user's completed exercise ids as a set.
	CompletedSet(ctx context.Context, userID primitive.ObjectID) (domain.CompletedSet, error)

	// CanAccessExercise checks the prerequisite gate for one exercise.
	CanAccessExercise(ctx context.Context, userID primitive.ObjectID, exerciseID string) (bool, error)

	// SkillOverview evaluates unlock state, completion percentage and the
	// current exercise of one curriculum for one user.
	SkillOverview(ctx context.Context, userID primitive.ObjectID, skill *domain.Skill) (*SkillOverview, error)

	// RecordCompletion upserts the user's progress on an exercise and
	// returns the record with BestValue never decreasing.
	RecordCompletion(ctx context.Context, userID primitive.ObjectID, exerciseID string, value int, completedAt time.Time) (*domain.Progress, error)

	// GetProgress returns the user's record for one exercise, or nil when
	// the exercise was never completed.
	GetProgress(ctx context.Context, userID primitive.ObjectID, exerciseID string) (*domain.Progress, error)
}

// progressService implements the ProgressService interface.
type progressService struct {
	progressRepo repository.ProgressRepository
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(
	progressRepo repository.ProgressRepository,
	exerciseRepo repository.ExerciseRepository,
	userRepo repository.UserRepository,
) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
	}
}

// CompletedSet materializes the user's completed exercise ids into a
// membership set sized to the actual completion count.
func (s *progressService) CompletedSet(ctx context.Context, userID primitive.ObjectID) (domain.CompletedSet, error) {
	ids, err := s.progressRepo.GetCompletedExerciseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.NewCompletedSet(ids), nil
}

// CanAccessExercise checks whether every prerequisite of the exercise is in
// the user's completed set.
func (s *progressService) CanAccessExercise(ctx context.Context, userID primitive.ObjectID, exerciseID string) (bool, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrExerciseNotFound
		}
		return false, err
	}
	// Ungated exercises skip the progress lookup entirely.
	if !exercise.HasPrerequisites() {
		return true, nil
	}

	completed, err := s.CompletedSet(ctx, userID)
	if err != nil {
		return false, err
	}
	return domain.CanAccessExercise(exercise, completed), nil
}

// SkillOverview evaluates one curriculum against the user's level and
// completed set.
func (s *progressService) SkillOverview(ctx context.Context, userID primitive.ObjectID, skill *domain.Skill) (*SkillOverview, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	completed, err := s.CompletedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &SkillOverview{
		Skill:           *skill,
		Accessible:      domain.CanAccessSkill(skill, user.Level, completed),
		ProgressPercent: domain.SkillProgress(skill, completed),
	}
	if current, ok := domain.CurrentSkillExercise(skill, completed); ok {
		overview.CurrentExerciseID = current
	}
	return overview, nil
}

// RecordCompletion applies the read-max-write best value rule. The
// read-then-write is racy across concurrent sessions of one user; accepted
// for single-device usage.
func (s *progressService) RecordCompletion(ctx context.Context, userID primitive.ObjectID, exerciseID string, value int, completedAt time.Time) (*domain.Progress, error) {
	if value < 0 {
		value = 0
	}

	progress, err := s.progressRepo.Get(ctx, userID, exerciseID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if progress == nil {
		progress = &domain.Progress{
			UserID:     userID,
			ExerciseID: exerciseID,
		}
	}

	if value > progress.BestValue {
		progress.BestValue = value
	}
	progress.LastCompletedAt = completedAt

	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// GetProgress returns the record for one exercise; a missing record comes
// back as nil, nil so callers can treat "never completed" non-fatally.
func (s *progressService) GetProgress(ctx context.Context, userID primitive.ObjectID, exerciseID string) (*domain.Progress, error) {
	progress, err := s.progressRepo.Get(ctx, userID, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return progress, nil
}
