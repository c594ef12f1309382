// internal/domain/skill.go
package domain

import "time"

// ProgressionEntry places one exercise at a position within a skill's
// curriculum. Order values are unique and monotonic within a skill; the
// array position is NOT authoritative, the Order field is.
type ProgressionEntry struct {
	ExerciseID string `bson:"exerciseId" json:"exerciseId"`
	Order      int    `bson:"order" json:"order"`
}

// UnlockCriteria gates access to a skill. A nil criteria means the skill is
// always accessible.
type UnlockCriteria struct {
	MinLevel             Level    `bson:"minLevel,omitempty" json:"minLevel,omitempty"`
	CompletedExerciseIDs []string `bson:"completedExerciseIds,omitempty" json:"completedExerciseIds,omitempty"`
}

// Skill is a named curriculum: an ordered list of exercises a user works
// through toward a goal movement (e.g. "Handstand", "Front Lever").
// Strength paths share this exact shape and live in a separate collection;
// both are served by the same repository implementation.
type Skill struct {
	ID             string             `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Progression    []ProgressionEntry `bson:"progression" json:"progression"`
	UnlockCriteria *UnlockCriteria    `bson:"unlockCriteria,omitempty" json:"unlockCriteria,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
