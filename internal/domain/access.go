// internal/domain/access.go
package domain

import (
	"math"
	"sort"
)

// Pure access evaluation over the prerequisite graph. These functions never
// touch storage; callers load the exercise/skill and the user's completed
// set first. Missing or dangling ids degrade to "not completed" rather than
// erroring, so broken catalog data locks content instead of crashing.

// CanAccessExercise reports whether a user with the given completed set may
// train the exercise. An exercise with no prerequisites is always
// accessible; otherwise EVERY prerequisite must be completed.
func CanAccessExercise(exercise *Exercise, completed CompletedSet) bool {
	if exercise == nil {
		return false
	}
	for _, prereq := range exercise.Prerequisites {
		if !completed.Contains(prereq) {
			return false
		}
	}
	return true
}

// CanAccessSkill reports whether a user at userLevel with the given
// completed set may open the skill. A skill without unlock criteria is
// always accessible; otherwise the user's level must reach MinLevel and
// every required exercise must be completed.
func CanAccessSkill(skill *Skill, userLevel Level, completed CompletedSet) bool {
	if skill == nil {
		return false
	}
	criteria := skill.UnlockCriteria
	if criteria == nil {
		return true
	}
	if criteria.MinLevel != "" && userLevel.Rank() < criteria.MinLevel.Rank() {
		return false
	}
	for _, id := range criteria.CompletedExerciseIDs {
		if !completed.Contains(id) {
			return false
		}
	}
	return true
}

// SkillProgress returns the completion percentage of a skill's progression,
// rounded to the nearest integer. A skill with no progression entries is 0%.
func SkillProgress(skill *Skill, completed CompletedSet) int {
	if skill == nil || len(skill.Progression) == 0 {
		return 0
	}
	done := 0
	for _, entry := range skill.Progression {
		if completed.Contains(entry.ExerciseID) {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(skill.Progression))))
}

// CurrentSkillExercise returns the exercise id the user should work on now:
// the first entry (by ascending Order, not array position) not yet
// completed. When every entry is completed the LAST entry is returned as an
// ongoing mastery target rather than reporting the skill as finished.
// ok is false only for an empty progression.
//
// Note this fallback differs from plan generation, which restarts a fully
// completed curriculum at its first exercise (see PlanService.GeneratePlans).
func CurrentSkillExercise(skill *Skill, completed CompletedSet) (exerciseID string, ok bool) {
	if skill == nil || len(skill.Progression) == 0 {
		return "", false
	}
	ordered := orderedProgression(skill.Progression)
	for _, entry := range ordered {
		if !completed.Contains(entry.ExerciseID) {
			return entry.ExerciseID, true
		}
	}
	return ordered[len(ordered)-1].ExerciseID, true
}

// FirstIncompleteIndex returns the position (within the order-sorted
// progression) of the first exercise not yet completed, or 0 when every
// exercise is completed. This is the seed-time selection policy used by the
// plan generator.
func FirstIncompleteIndex(progression []ProgressionEntry, completed CompletedSet) int {
	for i, entry := range orderedProgression(progression) {
		if !completed.Contains(entry.ExerciseID) {
			return i
		}
	}
	return 0
}

// orderedProgression returns a copy of the entries sorted by ascending Order.
func orderedProgression(entries []ProgressionEntry) []ProgressionEntry {
	ordered := make([]ProgressionEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}

// OrderedProgression is the exported form of the progression sort, used
// where callers need the full curriculum in training order.
func OrderedProgression(entries []ProgressionEntry) []ProgressionEntry {
	return orderedProgression(entries)
}
