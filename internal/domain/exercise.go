// internal/domain/exercise.go
package domain

import (
	"time"
)

// Category groups exercises by the movement pattern they train.
type Category string

const (
	CategoryPush     Category = "push"
	CategoryPull     Category = "pull"
	CategoryLegs     Category = "legs"
	CategoryCore     Category = "core"
	CategorySkill    Category = "skill"
	CategoryMobility Category = "mobility"
)

// Level is the difficulty tier of an exercise (and of a user).
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Rank returns the ordinal position of the level (beginner < intermediate < advanced).
// Unknown levels rank below beginner so malformed data never unlocks anything.
func (l Level) Rank() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	default:
		return 0
	}
}

// Equipment describes what (if anything) is needed to perform an exercise.
type Equipment string

const (
	EquipmentNone        Equipment = "none"
	EquipmentPullupBar   Equipment = "pullup_bar"
	EquipmentParallettes Equipment = "parallettes"
	EquipmentRings       Equipment = "rings"
	EquipmentWall        Equipment = "wall"
)

// TargetType says how an exercise target is measured.
type TargetType string

const (
	TargetReps TargetType = "reps"
	TargetTime TargetType = "time" // seconds
)

// Target is the goal a user works toward on an exercise, e.g. 20 reps or a
// 60 second hold. Plans carry their own copy of this so a user can customize
// it without touching the catalog.
type Target struct {
	Type  TargetType `bson:"type" json:"type"`
	Value int        `bson:"value" json:"value"` // positive; reps or seconds
}

// Exercise is a single catalog entry. Catalog documents use human-readable
// slug ids (e.g. "pushup-incline") so prerequisite and progression edges
// stay legible in seed files.
//
// NextProgressionID links exercises into a singly-linked chain; the chain
// must be acyclic, but traversal guards against bad data anyway.
// Prerequisites may point at ids from any chain.
type Exercise struct {
	ID                string    `bson:"_id" json:"id"`
	Name              string    `bson:"name" json:"name"`
	Description       string    `bson:"description,omitempty" json:"description,omitempty"`
	Category          Category  `bson:"category" json:"category"`
	Level             Level     `bson:"level" json:"level"`
	Equipment         Equipment `bson:"equipment" json:"equipment"`
	Target            Target    `bson:"target" json:"target"`
	Prerequisites     []string  `bson:"prerequisites,omitempty" json:"prerequisites,omitempty"`
	NextProgressionID string    `bson:"nextProgressionId,omitempty" json:"nextProgressionId,omitempty"`

	// DemoMediaKey is the object-storage key of the demonstration video, set
	// administratively after the catalog is seeded. Empty when no demo exists.
	DemoMediaKey string `bson:"demoMediaKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasPrerequisites reports whether the exercise is gated at all.
func (e *Exercise) HasPrerequisites() bool {
	return len(e.Prerequisites) > 0
}
