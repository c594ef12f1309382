// internal/domain/workout_history.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryExercise records how one plan slot went during a session.
// ActualValues holds the per-set logged reps/seconds; CompletedSets may be
// lower than Sets when the user bailed early.
type HistoryExercise struct {
	ExerciseID    string `bson:"exerciseId" json:"exerciseId"`
	Sets          int    `bson:"sets" json:"sets"`
	CompletedSets int    `bson:"completedSets" json:"completedSets"`
	Target        Target `bson:"target" json:"target"`
	ActualValues  []int  `bson:"actualValues" json:"actualValues"`
}

// WorkoutHistory is the append-only record of one finished session. It is
// never mutated after creation; streaks and stats are derived from it.
// Document ids are client-generated UUIDs since inserts never race on them.
type WorkoutHistory struct {
	ID              string             `bson:"_id" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	PlanID          primitive.ObjectID `bson:"planId,omitempty" json:"planId,omitempty"`
	DayIndex        int                `bson:"dayIndex" json:"dayIndex"`
	Exercises       []HistoryExercise  `bson:"exercises" json:"exercises"`
	CompletedAt     time.Time          `bson:"completedAt" json:"completedAt"`
	DurationSeconds int                `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
}

// BestLoggedValue returns the highest value logged across the sets of this
// slot, or 0 when nothing was logged.
func (h *HistoryExercise) BestLoggedValue() int {
	best := 0
	for _, v := range h.ActualValues {
		if v > best {
			best = v
		}
	}
	return best
}
