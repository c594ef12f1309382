package service

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/repository"
	"calistix/bodyweight-app/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrSkillNotFound    = errors.New("skill not found")
	ErrNoDemoMedia      = errors.New("exercise has no demonstration media")
	ErrMediaURLFailed   = errors.New("failed to generate media URL")
)

// maxChainLength caps progression chain traversal. No real chain comes
// close; the cap plus the visited set keep cyclic seed data from looping.
const maxChainLength = 100

// DemoUploadResponse carries a presigned PUT URL plus the object key the
// admin must report back on confirm.
type DemoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// CatalogService serves the read-only exercise and curriculum catalog: id
// and attribute lookups, progression-chain traversal, and demonstration
// media handling.
type CatalogService interface {
	GetExercise(ctx context.Context, exerciseID string) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	ListExercisesByCategory(ctx context.Context, category domain.Category) ([]domain.Exercise, error)
	ListExercisesByLevel(ctx context.Context, level domain.Level) ([]domain.Exercise, error)
	ListExercisesByEquipment(ctx context.Context, equipment domain.Equipment) ([]domain.Exercise, error)
	ListBeginnerExercises(ctx context.Context) ([]domain.Exercise, error)

	// ProgressionChain walks nextProgressionId links starting at the given
	// exercise. A missing id truncates the chain silently; a revisited id
	// (cyclic data) stops the walk. Only an unknown STARTING id errors.
	ProgressionChain(ctx context.Context, startExerciseID string) ([]domain.Exercise, error)

	GetSkill(ctx context.Context, skillID string) (*domain.Skill, error)
	ListSkills(ctx context.Context) ([]domain.Skill, error)
	GetStrengthPath(ctx context.Context, pathID string) (*domain.Skill, error)
	ListStrengthPaths(ctx context.Context) ([]domain.Skill, error)

	// Demo media: admin side requests an upload URL and confirms the key;
	// read side resolves a temporary view URL.
	RequestDemoUploadURL(ctx context.Context, exerciseID, fileExt, contentType string) (*DemoUploadResponse, error)
	ConfirmDemoUpload(ctx context.Context, exerciseID, objectKey string) error
	GetDemoViewURL(ctx context.Context, exerciseID string) (string, error)
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	exerciseRepo repository.ExerciseRepository
	skillRepo    repository.SkillRepository
	pathRepo     repository.SkillRepository
	fileStorage  storage.FileStorage
}

// NewCatalogService creates a new instance of catalogService. fileStorage
// may be nil when the deployment has no media bucket; media calls then fail
// with ErrMediaURLFailed.
func NewCatalogService(
	exerciseRepo repository.ExerciseRepository,
	skillRepo repository.SkillRepository,
	pathRepo repository.SkillRepository,
	fileStorage storage.FileStorage,
) CatalogService {
	return &catalogService{
		exerciseRepo: exerciseRepo,
		skillRepo:    skillRepo,
		pathRepo:     pathRepo,
		fileStorage:  fileStorage,
	}
}

// GetExercise retrieves a single catalog exercise.
func (s *catalogService) GetExercise(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *catalogService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

func (s *catalogService) ListExercisesByCategory(ctx context.Context, category domain.Category) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByCategory(ctx, category)
}

func (s *catalogService) ListExercisesByLevel(ctx context.Context, level domain.Level) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByLevel(ctx, level)
}

func (s *catalogService) ListExercisesByEquipment(ctx context.Context, equipment domain.Equipment) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByEquipment(ctx, equipment)
}

// ListBeginnerExercises returns the curriculum entry points.
func (s *catalogService) ListBeginnerExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetBeginner(ctx)
}

// ProgressionChain walks the singly-linked progression starting at
// startExerciseID. Broken links (a nextProgressionId pointing nowhere)
// truncate the chain rather than erroring; a visited set guards against
// cyclic data so the walk always terminates.
func (s *catalogService) ProgressionChain(ctx context.Context, startExerciseID string) ([]domain.Exercise, error) {
	start, err := s.GetExercise(ctx, startExerciseID)
	if err != nil {
		return nil, err
	}

	chain := []domain.Exercise{*start}
	visited := map[string]struct{}{start.ID: {}}

	nextID := start.NextProgressionID
	for nextID != "" && len(chain) < maxChainLength {
		if _, seen := visited[nextID]; seen {
			break // cycle in seed data; return what we have
		}
		next, err := s.exerciseRepo.GetByID(ctx, nextID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				break // broken chain; return the truncated prefix
			}
			return nil, err
		}
		chain = append(chain, *next)
		visited[next.ID] = struct{}{}
		nextID = next.NextProgressionID
	}
	return chain, nil
}

// GetSkill retrieves a skill curriculum.
func (s *catalogService) GetSkill(ctx context.Context, skillID string) (*domain.Skill, error) {
	return getSkillFrom(ctx, s.skillRepo, skillID)
}

func (s *catalogService) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	return s.skillRepo.GetAll(ctx)
}

// GetStrengthPath retrieves a strength path curriculum.
func (s *catalogService) GetStrengthPath(ctx context.Context, pathID string) (*domain.Skill, error) {
	return getSkillFrom(ctx, s.pathRepo, pathID)
}

func (s *catalogService) ListStrengthPaths(ctx context.Context) ([]domain.Skill, error) {
	return s.pathRepo.GetAll(ctx)
}

func getSkillFrom(ctx context.Context, repo repository.SkillRepository, id string) (*domain.Skill, error) {
	skill, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return skill, nil
}

// RequestDemoUploadURL issues a presigned PUT URL for uploading a
// demonstration video for an exercise.
func (s *catalogService) RequestDemoUploadURL(ctx context.Context, exerciseID, fileExt, contentType string) (*DemoUploadResponse, error) {
	if s.fileStorage == nil {
		return nil, ErrMediaURLFailed
	}
	if _, err := s.GetExercise(ctx, exerciseID); err != nil {
		return nil, err
	}

	objectKey := path.Join("exercises", exerciseID, fmt.Sprintf("%s%s", uuid.NewString(), fileExt))
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrMediaURLFailed
	}
	return &DemoUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmDemoUpload records the uploaded object key on the exercise,
// replacing (and deleting) any previous demo object.
func (s *catalogService) ConfirmDemoUpload(ctx context.Context, exerciseID, objectKey string) error {
	exercise, err := s.GetExercise(ctx, exerciseID)
	if err != nil {
		return err
	}

	if err := s.exerciseRepo.SetDemoMediaKey(ctx, exerciseID, objectKey); err != nil {
		return err
	}
	if s.fileStorage != nil && exercise.DemoMediaKey != "" && exercise.DemoMediaKey != objectKey {
		// Old object is orphaned now; best-effort cleanup.
		_ = s.fileStorage.DeleteObject(ctx, exercise.DemoMediaKey)
	}
	return nil
}

// GetDemoViewURL resolves a temporary GET URL for the exercise's demo video.
func (s *catalogService) GetDemoViewURL(ctx context.Context, exerciseID string) (string, error) {
	exercise, err := s.GetExercise(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.DemoMediaKey == "" {
		return "", ErrNoDemoMedia
	}
	if s.fileStorage == nil {
		return "", ErrMediaURLFailed
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.DemoMediaKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrMediaURLFailed
	}
	return url, nil
}
