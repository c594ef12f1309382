// internal/domain/plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalCustom is the sentinel GoalID for plans the user assembled by hand
// rather than from a skill or strength path.
const GoalCustom = "custom"

// PlanExercise is one slot in a plan. Target is a COPY of the catalog
// target taken at creation time: the user may tune sets and target freely,
// and auto-progression deliberately preserves them when swapping the
// exercise id (see ProgressionService).
type PlanExercise struct {
	ExerciseID string `bson:"exerciseId" json:"exerciseId"`
	Sets       int    `bson:"sets" json:"sets"`
	Target     Target `bson:"target" json:"target"`
}

// Plan is a user's workout for one day of the week. A user holds at most
// one plan per DayIndex; that rule is enforced by the service's
// query-before-create, not by a database constraint.
type Plan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	GoalID    string             `bson:"goalId" json:"goalId"` // skill/path id, or GoalCustom
	DayIndex  int                `bson:"dayIndex" json:"dayIndex"` // 1 (Mon) - 7 (Sun)
	Exercises []PlanExercise     `bson:"exercises" json:"exercises"`
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// dayNames maps DayIndex to a label shown in progression summaries.
var dayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayLabel returns a human-readable name for the plan's day of week.
func (p *Plan) DayLabel() string {
	if p.DayIndex >= 1 && p.DayIndex <= 7 {
		return dayNames[p.DayIndex]
	}
	return "Unscheduled"
}

// PlanUpdate is a partial update to a plan. Nil fields are left untouched;
// a non-nil Exercises pointer replaces the whole list.
type PlanUpdate struct {
	GoalID    *string
	DayIndex  *int
	Exercises *[]PlanExercise
	Completed *bool
}

// IsEmpty reports whether the update would change nothing.
func (u PlanUpdate) IsEmpty() bool {
	return u.GoalID == nil && u.DayIndex == nil && u.Exercises == nil && u.Completed == nil
}
