// internal/domain/progress.go
package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress is the best recorded performance of one user on one exercise.
// Its document id is the composite ProgressID so a completion upsert never
// needs a lookup query first. BestValue only ever grows; the set of
// exercise ids holding a Progress record for a user IS that user's
// completed set, which drives all access gating and auto-progression.
type Progress struct {
	ID              string             `bson:"_id" json:"id"` // "<userIdHex>_<exerciseId>"
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseID      string             `bson:"exerciseId" json:"exerciseId"`
	BestValue       int                `bson:"bestValue" json:"bestValue"` // max reps or seconds ever logged
	LastCompletedAt time.Time          `bson:"lastCompletedAt" json:"lastCompletedAt"`
}

// ProgressID builds the composite document id for a (user, exercise) pair.
func ProgressID(userID primitive.ObjectID, exerciseID string) string {
	return fmt.Sprintf("%s_%s", userID.Hex(), exerciseID)
}

// CompletedSet is a membership structure over completed exercise ids.
type CompletedSet map[string]struct{}

// NewCompletedSet builds a CompletedSet from a list of exercise ids.
func NewCompletedSet(ids []string) CompletedSet {
	set := make(CompletedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports membership of an exercise id.
func (s CompletedSet) Contains(exerciseID string) bool {
	_, ok := s[exerciseID]
	return ok
}
