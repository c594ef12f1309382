// internal/domain/user.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalType says what kind of curriculum the user is chasing.
type GoalType string

const (
	GoalTypeSkill        GoalType = "skill"
	GoalTypeStrengthPath GoalType = "strengthPath"
	GoalTypeCustom       GoalType = "custom"
)

// User is an account plus its training profile. The profile fields drive
// plan generation and skill access checks; auth fields are the usual
// email + bcrypt hash pair.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // unique
	PasswordHash string             `bson:"passwordHash" json:"-"`

	Level               Level    `bson:"level" json:"level"`
	GoalType            GoalType `bson:"goalType,omitempty" json:"goalType,omitempty"`
	PrimaryGoalID       string   `bson:"primaryGoalId,omitempty" json:"primaryGoalId,omitempty"`
	TrainingDaysPerWeek int      `bson:"trainingDaysPerWeek,omitempty" json:"trainingDaysPerWeek,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate is a partial update to the training profile. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name                *string
	Level               *Level
	GoalType            *GoalType
	PrimaryGoalID       *string
	TrainingDaysPerWeek *int
}
