package service

import (
	"calistix/bodyweight-app/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCheckAutoProgression_TriggersAtExactTarget(t *testing.T) {
	repo := newFakeExerciseRepo(
		chainExercise("pushup-incline", "pushup-full"),
		chainExercise("pushup-full", ""),
	)
	svc := NewProgressionService(repo, newFakePlanRepo())

	next, err := svc.CheckAutoProgression(context.Background(), "pushup-incline", 10)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "pushup-full", next.ID)
}

func TestCheckAutoProgression_OneBelowTargetDoesNot(t *testing.T) {
	repo := newFakeExerciseRepo(
		chainExercise("pushup-incline", "pushup-full"),
		chainExercise("pushup-full", ""),
	)
	svc := NewProgressionService(repo, newFakePlanRepo())

	next, err := svc.CheckAutoProgression(context.Background(), "pushup-incline", 9)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestCheckAutoProgression_EndOfChain(t *testing.T) {
	repo := newFakeExerciseRepo(chainExercise("pushup-full", ""))
	svc := NewProgressionService(repo, newFakePlanRepo())

	next, err := svc.CheckAutoProgression(context.Background(), "pushup-full", 500)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestCheckAutoProgression_DanglingNextDegrades(t *testing.T) {
	repo := newFakeExerciseRepo(chainExercise("pushup-incline", "pushup-one-arm"))
	svc := NewProgressionService(repo, newFakePlanRepo())

	next, err := svc.CheckAutoProgression(context.Background(), "pushup-incline", 10)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestCheckAutoProgression_UnknownExercise(t *testing.T) {
	svc := NewProgressionService(newFakeExerciseRepo(), newFakePlanRepo())

	_, err := svc.CheckAutoProgression(context.Background(), "no-such-exercise", 10)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestAutoProgressPlans_SwapsMatchingSlotsOnly(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := newFakePlanRepo()
	ctx := context.Background()

	monday := &domain.Plan{UserID: userID, GoalID: "skill-pullup", DayIndex: 1, Exercises: []domain.PlanExercise{
		{ExerciseID: "pullup-negative", Sets: 5, Target: domain.Target{Type: domain.TargetReps, Value: 6}},
		{ExerciseID: "plank", Sets: 3, Target: domain.Target{Type: domain.TargetTime, Value: 45}},
	}}
	wednesday := &domain.Plan{UserID: userID, GoalID: "skill-pullup", DayIndex: 3, Exercises: []domain.PlanExercise{
		{ExerciseID: "pullup-negative", Sets: 4, Target: domain.Target{Type: domain.TargetReps, Value: 8}},
	}}
	friday := &domain.Plan{UserID: userID, GoalID: "custom", DayIndex: 5, Exercises: []domain.PlanExercise{
		{ExerciseID: "squat-full", Sets: 3, Target: domain.Target{Type: domain.TargetReps, Value: 20}},
	}}
	for _, p := range []*domain.Plan{monday, wednesday, friday} {
		_, err := planRepo.Create(ctx, p)
		require.NoError(t, err)
	}

	svc := NewProgressionService(newFakeExerciseRepo(), planRepo)
	result, err := svc.AutoProgressPlans(ctx, userID, "pullup-negative", "pullup-full")
	require.NoError(t, err)

	// Only the two plans that referenced the outgrown exercise appear.
	assert.Len(t, result.Succeeded, 2)
	assert.Empty(t, result.Failed)

	got, err := planRepo.GetByID(ctx, monday.ID)
	require.NoError(t, err)
	assert.Equal(t, "pullup-full", got.Exercises[0].ExerciseID)
	// Customized sets and target survive the swap.
	assert.Equal(t, 5, got.Exercises[0].Sets)
	assert.Equal(t, 6, got.Exercises[0].Target.Value)
	// Unrelated slots in the same plan are untouched.
	assert.Equal(t, "plank", got.Exercises[1].ExerciseID)

	got, err = planRepo.GetByID(ctx, wednesday.ID)
	require.NoError(t, err)
	assert.Equal(t, "pullup-full", got.Exercises[0].ExerciseID)
	assert.Equal(t, 8, got.Exercises[0].Target.Value)

	got, err = planRepo.GetByID(ctx, friday.ID)
	require.NoError(t, err)
	assert.Equal(t, "squat-full", got.Exercises[0].ExerciseID)
}

func TestAutoProgressPlans_RetryIsNoOp(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := newFakePlanRepo()
	ctx := context.Background()

	plan := &domain.Plan{UserID: userID, GoalID: "custom", DayIndex: 2, Exercises: []domain.PlanExercise{
		{ExerciseID: "pullup-negative", Sets: 3, Target: domain.Target{Type: domain.TargetReps, Value: 6}},
	}}
	_, err := planRepo.Create(ctx, plan)
	require.NoError(t, err)

	svc := NewProgressionService(newFakeExerciseRepo(), planRepo)
	first, err := svc.AutoProgressPlans(ctx, userID, "pullup-negative", "pullup-full")
	require.NoError(t, err)
	assert.Len(t, first.Succeeded, 1)

	// After the swap no plan references the outgrown id, so running the same
	// progression again touches nothing.
	second, err := svc.AutoProgressPlans(ctx, userID, "pullup-negative", "pullup-full")
	require.NoError(t, err)
	assert.Empty(t, second.Succeeded)
	assert.Empty(t, second.Failed)
}

func TestAutoProgressPlans_PartialFailure(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := newFakePlanRepo()
	ctx := context.Background()

	ok := &domain.Plan{UserID: userID, GoalID: "custom", DayIndex: 1, Exercises: []domain.PlanExercise{
		{ExerciseID: "pullup-negative", Sets: 3, Target: domain.Target{Type: domain.TargetReps, Value: 6}},
	}}
	bad := &domain.Plan{UserID: userID, GoalID: "custom", DayIndex: 3, Exercises: []domain.PlanExercise{
		{ExerciseID: "pullup-negative", Sets: 3, Target: domain.Target{Type: domain.TargetReps, Value: 6}},
	}}
	_, err := planRepo.Create(ctx, ok)
	require.NoError(t, err)
	_, err = planRepo.Create(ctx, bad)
	require.NoError(t, err)
	planRepo.failUpdates[bad.ID] = errors.New("write conflict")

	svc := NewProgressionService(newFakeExerciseRepo(), planRepo)
	result, err := svc.AutoProgressPlans(ctx, userID, "pullup-negative", "pullup-full")
	require.NoError(t, err)

	require.Len(t, result.Succeeded, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, ok.ID, result.Succeeded[0].PlanID)
	assert.Equal(t, bad.ID, result.Failed[0].PlanID)
	assert.True(t, result.PartialFailure())

	// The successful swap stays committed despite the failure.
	got, err := planRepo.GetByID(ctx, ok.ID)
	require.NoError(t, err)
	assert.Equal(t, "pullup-full", got.Exercises[0].ExerciseID)
}

func TestAutoProgressPlans_RequiresBothIDs(t *testing.T) {
	svc := NewProgressionService(newFakeExerciseRepo(), newFakePlanRepo())

	_, err := svc.AutoProgressPlans(context.Background(), primitive.NewObjectID(), "", "pullup-full")
	assert.Error(t, err)
	_, err = svc.AutoProgressPlans(context.Background(), primitive.NewObjectID(), "pullup-negative", "")
	assert.Error(t, err)
}
