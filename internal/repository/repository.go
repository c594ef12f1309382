package repository

import (
	"calistix/bodyweight-app/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository reads the exercise catalog. The catalog is immutable
// at runtime except for administrative reseeding and demo-media attachment.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	GetByCategory(ctx context.Context, category domain.Category) ([]domain.Exercise, error)
	GetByLevel(ctx context.Context, level domain.Level) ([]domain.Exercise, error)
	GetByEquipment(ctx context.Context, equipment domain.Equipment) ([]domain.Exercise, error)
	// GetBeginner returns the curriculum entry points: beginner-level
	// exercises with no prerequisites.
	GetBeginner(ctx context.Context) ([]domain.Exercise, error)
	SetDemoMediaKey(ctx context.Context, id, objectKey string) error
	// SeedAll bulk-upserts catalog documents by id (administrative reseeding).
	SeedAll(ctx context.Context, exercises []domain.Exercise) error
}

// SkillRepository reads a curriculum collection. Skills and strength paths
// share the document shape; one implementation serves both, bound to its
// collection at construction.
type SkillRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Skill, error)
	GetAll(ctx context.Context) ([]domain.Skill, error)
	SeedAll(ctx context.Context, skills []domain.Skill) error
}

// PlanRepository owns the plans collection.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	// GetByUserID returns all plans of a user ordered by ascending dayIndex.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
	// GetByUserAndDay returns the first plan for that day, or ErrNotFound.
	GetByUserAndDay(ctx context.Context, userID primitive.ObjectID, dayIndex int) (*domain.Plan, error)
	Update(ctx context.Context, id primitive.ObjectID, update domain.PlanUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProgressRepository owns per-user-per-exercise best results.
type ProgressRepository interface {
	Get(ctx context.Context, userID primitive.ObjectID, exerciseID string) (*domain.Progress, error)
	Upsert(ctx context.Context, progress *domain.Progress) error
	// GetCompletedExerciseIDs returns the ids of every exercise the user has
	// a progress record for.
	GetCompletedExerciseIDs(ctx context.Context, userID primitive.ObjectID) ([]string, error)
}

// WorkoutHistoryRepository owns the append-only session log. There is
// deliberately no update or delete.
type WorkoutHistoryRepository interface {
	Create(ctx context.Context, record *domain.WorkoutHistory) error
	// GetByUserID returns the user's history, newest first.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutHistory, error)
}

// UserRepository owns user accounts and training profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update domain.ProfileUpdate) error
}
