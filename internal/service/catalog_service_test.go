package service

import (
	"calistix/bodyweight-app/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainExercise(id, nextID string) domain.Exercise {
	return domain.Exercise{
		ID:                id,
		Name:              id,
		Category:          domain.CategoryPush,
		Level:             domain.LevelBeginner,
		Equipment:         domain.EquipmentNone,
		Target:            domain.Target{Type: domain.TargetReps, Value: 10},
		NextProgressionID: nextID,
	}
}

func TestProgressionChain_WalksToEnd(t *testing.T) {
	repo := newFakeExerciseRepo(
		chainExercise("pushup-wall", "pushup-incline"),
		chainExercise("pushup-incline", "pushup-full"),
		chainExercise("pushup-full", ""),
	)
	svc := NewCatalogService(repo, newFakeSkillRepo(), newFakeSkillRepo(), nil)

	chain, err := svc.ProgressionChain(context.Background(), "pushup-wall")
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, "pushup-wall", chain[0].ID)
	assert.Equal(t, "pushup-incline", chain[1].ID)
	assert.Equal(t, "pushup-full", chain[2].ID)
}

func TestProgressionChain_StartsMidChain(t *testing.T) {
	repo := newFakeExerciseRepo(
		chainExercise("pushup-wall", "pushup-incline"),
		chainExercise("pushup-incline", "pushup-full"),
		chainExercise("pushup-full", ""),
	)
	svc := NewCatalogService(repo, newFakeSkillRepo(), newFakeSkillRepo(), nil)

	chain, err := svc.ProgressionChain(context.Background(), "pushup-incline")
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "pushup-incline", chain[0].ID)
}

func TestProgressionChain_BrokenLinkTruncates(t *testing.T) {
	// pushup-incline points at an id that is not in the catalog.
	repo := newFakeExerciseRepo(
		chainExercise("pushup-wall", "pushup-incline"),
		chainExercise("pushup-incline", "pushup-one-arm"),
	)
	svc := NewCatalogService(repo, newFakeSkillRepo(), newFakeSkillRepo(), nil)

	chain, err := svc.ProgressionChain(context.Background(), "pushup-wall")
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "pushup-incline", chain[1].ID)
}

func TestProgressionChain_CycleTerminates(t *testing.T) {
	repo := newFakeExerciseRepo(
		chainExercise("a", "b"),
		chainExercise("b", "c"),
		chainExercise("c", "a"),
	)
	svc := NewCatalogService(repo, newFakeSkillRepo(), newFakeSkillRepo(), nil)

	chain, err := svc.ProgressionChain(context.Background(), "a")
	require.NoError(t, err)
	assert.Len(t, chain, 3)
}

func TestProgressionChain_SelfLoopTerminates(t *testing.T) {
	repo := newFakeExerciseRepo(chainExercise("a", "a"))
	svc := NewCatalogService(repo, newFakeSkillRepo(), newFakeSkillRepo(), nil)

	chain, err := svc.ProgressionChain(context.Background(), "a")
	require.NoError(t, err)
	assert.Len(t, chain, 1)
}

func TestProgressionChain_UnknownStart(t *testing.T) {
	svc := NewCatalogService(newFakeExerciseRepo(), newFakeSkillRepo(), newFakeSkillRepo(), nil)

	_, err := svc.ProgressionChain(context.Background(), "no-such-exercise")
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestGetSkillAndStrengthPath_UseSeparateCollections(t *testing.T) {
	skillRepo := newFakeSkillRepo(domain.Skill{ID: "skill-handstand", Name: "Handstand"})
	pathRepo := newFakeSkillRepo(domain.Skill{ID: "path-push", Name: "Push Strength"})
	svc := NewCatalogService(newFakeExerciseRepo(), skillRepo, pathRepo, nil)

	skill, err := svc.GetSkill(context.Background(), "skill-handstand")
	require.NoError(t, err)
	assert.Equal(t, "Handstand", skill.Name)

	// The skill id is not visible through the strength-path namespace.
	_, err = svc.GetStrengthPath(context.Background(), "skill-handstand")
	assert.ErrorIs(t, err, ErrSkillNotFound)

	p, err := svc.GetStrengthPath(context.Background(), "path-push")
	require.NoError(t, err)
	assert.Equal(t, "Push Strength", p.Name)
}

func TestDemoMedia_NoStorageConfigured(t *testing.T) {
	ex := chainExercise("pushup-full", "")
	ex.DemoMediaKey = "exercises/pushup-full/some-object"
	svc := NewCatalogService(newFakeExerciseRepo(ex), newFakeSkillRepo(), newFakeSkillRepo(), nil)

	_, err := svc.RequestDemoUploadURL(context.Background(), "pushup-full", ".mp4", "video/mp4")
	assert.ErrorIs(t, err, ErrMediaURLFailed)

	_, err = svc.GetDemoViewURL(context.Background(), "pushup-full")
	assert.ErrorIs(t, err, ErrMediaURLFailed)
}

func TestGetDemoViewURL_NoMediaAttached(t *testing.T) {
	svc := NewCatalogService(newFakeExerciseRepo(chainExercise("plank", "")), newFakeSkillRepo(), newFakeSkillRepo(), nil)

	_, err := svc.GetDemoViewURL(context.Background(), "plank")
	assert.ErrorIs(t, err, ErrNoDemoMedia)
}
