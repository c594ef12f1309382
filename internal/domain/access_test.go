package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func exerciseWithPrereqs(prereqs ...string) *Exercise {
	return &Exercise{
		ID:            "test-exercise",
		Name:          "Test Exercise",
		Level:         LevelIntermediate,
		Prerequisites: prereqs,
	}
}

func TestCanAccessExercise_NoPrerequisites(t *testing.T) {
	ex := exerciseWithPrereqs()

	assert.True(t, CanAccessExercise(ex, NewCompletedSet(nil)))
	assert.True(t, CanAccessExercise(ex, NewCompletedSet([]string{"anything", "else"})))
}

func TestCanAccessExercise_RequiresAllPrerequisites(t *testing.T) {
	ex := exerciseWithPrereqs("a", "b", "c")

	assert.True(t, CanAccessExercise(ex, NewCompletedSet([]string{"a", "b", "c"})))
	// Superset is fine too.
	assert.True(t, CanAccessExercise(ex, NewCompletedSet([]string{"a", "b", "c", "d"})))
	// One missing element denies access: AND semantics, not ANY.
	assert.False(t, CanAccessExercise(ex, NewCompletedSet([]string{"a", "b"})))
	assert.False(t, CanAccessExercise(ex, NewCompletedSet(nil)))
}

func TestCanAccessExercise_NilExercise(t *testing.T) {
	assert.False(t, CanAccessExercise(nil, NewCompletedSet([]string{"a"})))
}

func skillWithProgression(ids ...string) *Skill {
	s := &Skill{ID: "test-skill", Name: "Test Skill"}
	for i, id := range ids {
		s.Progression = append(s.Progression, ProgressionEntry{ExerciseID: id, Order: i + 1})
	}
	return s
}

func TestCanAccessSkill_NoCriteria(t *testing.T) {
	skill := skillWithProgression("a", "b")

	assert.True(t, CanAccessSkill(skill, LevelBeginner, NewCompletedSet(nil)))
}

func TestCanAccessSkill_MinLevel(t *testing.T) {
	skill := skillWithProgression("a")
	skill.UnlockCriteria = &UnlockCriteria{MinLevel: LevelIntermediate}

	assert.False(t, CanAccessSkill(skill, LevelBeginner, NewCompletedSet(nil)))
	assert.True(t, CanAccessSkill(skill, LevelIntermediate, NewCompletedSet(nil)))
	assert.True(t, CanAccessSkill(skill, LevelAdvanced, NewCompletedSet(nil)))
}

func TestCanAccessSkill_RequiredExercises(t *testing.T) {
	skill := skillWithProgression("a")
	skill.UnlockCriteria = &UnlockCriteria{
		MinLevel:             LevelBeginner,
		CompletedExerciseIDs: []string{"x", "y"},
	}

	assert.False(t, CanAccessSkill(skill, LevelAdvanced, NewCompletedSet([]string{"x"})))
	assert.True(t, CanAccessSkill(skill, LevelAdvanced, NewCompletedSet([]string{"x", "y"})))
}

func TestSkillProgress(t *testing.T) {
	skill := skillWithProgression("a", "b", "c")

	assert.Equal(t, 0, SkillProgress(skill, NewCompletedSet(nil)))
	assert.Equal(t, 0, SkillProgress(skill, NewCompletedSet([]string{"unrelated"})))
	assert.Equal(t, 33, SkillProgress(skill, NewCompletedSet([]string{"a"})))
	assert.Equal(t, 67, SkillProgress(skill, NewCompletedSet([]string{"a", "b"})))
	assert.Equal(t, 100, SkillProgress(skill, NewCompletedSet([]string{"a", "b", "c"})))
}

func TestSkillProgress_EmptyProgression(t *testing.T) {
	skill := &Skill{ID: "empty"}

	assert.Equal(t, 0, SkillProgress(skill, NewCompletedSet([]string{"a"})))
}

func TestSkillProgress_MonotonicallyNonDecreasing(t *testing.T) {
	skill := skillWithProgression("a", "b", "c", "d", "e")

	completed := []string{}
	prev := 0
	for _, id := range []string{"x", "a", "b", "y", "c", "d", "e"} {
		completed = append(completed, id)
		pct := SkillProgress(skill, NewCompletedSet(completed))
		assert.GreaterOrEqual(t, pct, prev)
		prev = pct
	}
	assert.Equal(t, 100, prev)
}

func TestCurrentSkillExercise_FirstIncomplete(t *testing.T) {
	skill := skillWithProgression("a", "b", "c")

	current, ok := CurrentSkillExercise(skill, NewCompletedSet([]string{"a"}))
	assert.True(t, ok)
	assert.Equal(t, "b", current)
}

func TestCurrentSkillExercise_RespectsOrderField(t *testing.T) {
	// Array order scrambled; Order field says c -> a -> b.
	skill := &Skill{
		ID: "scrambled",
		Progression: []ProgressionEntry{
			{ExerciseID: "a", Order: 2},
			{ExerciseID: "b", Order: 3},
			{ExerciseID: "c", Order: 1},
		},
	}

	current, ok := CurrentSkillExercise(skill, NewCompletedSet(nil))
	assert.True(t, ok)
	assert.Equal(t, "c", current)

	current, ok = CurrentSkillExercise(skill, NewCompletedSet([]string{"c"}))
	assert.True(t, ok)
	assert.Equal(t, "a", current)
}

func TestCurrentSkillExercise_AllCompleteReturnsLast(t *testing.T) {
	skill := skillWithProgression("a", "b", "c")

	current, ok := CurrentSkillExercise(skill, NewCompletedSet([]string{"a", "b", "c"}))
	assert.True(t, ok)
	assert.Equal(t, "c", current, "a mastered skill keeps its last exercise as the ongoing target")
}

func TestCurrentSkillExercise_EmptyProgression(t *testing.T) {
	_, ok := CurrentSkillExercise(&Skill{ID: "empty"}, NewCompletedSet(nil))
	assert.False(t, ok)
}

func TestFirstIncompleteIndex(t *testing.T) {
	progression := skillWithProgression("a", "b", "c").Progression

	assert.Equal(t, 0, FirstIncompleteIndex(progression, NewCompletedSet(nil)))
	assert.Equal(t, 1, FirstIncompleteIndex(progression, NewCompletedSet([]string{"a"})))
	// Seed-time policy: a fully completed curriculum restarts at index 0,
	// unlike CurrentSkillExercise which sticks to the last entry.
	assert.Equal(t, 0, FirstIncompleteIndex(progression, NewCompletedSet([]string{"a", "b", "c"})))
}
