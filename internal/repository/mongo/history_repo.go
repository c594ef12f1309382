package mongo

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyCollectionName = "workoutHistory"

// mongoWorkoutHistoryRepository implements repository.WorkoutHistoryRepository
type mongoWorkoutHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutHistoryRepository creates a new WorkoutHistory repository
// backed by MongoDB.
func NewMongoWorkoutHistoryRepository(db *mongo.Database) repository.WorkoutHistoryRepository {
	return &mongoWorkoutHistoryRepository{
		collection: db.Collection(historyCollectionName),
	}
}

// Create appends a session record. The record is immutable afterwards; the
// repository exposes no update or delete on purpose.
func (r *mongoWorkoutHistoryRepository) Create(ctx context.Context, record *domain.WorkoutHistory) error {
	if record.ID == "" {
		return errors.New("workout history ID is required")
	}
	if record.UserID == primitive.NilObjectID {
		return errors.New("workout history user ID is required")
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// GetByUserID retrieves the user's full history, newest first.
func (r *mongoWorkoutHistoryRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutHistory, error) {
	var records []domain.WorkoutHistory
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureWorkoutHistoryIndexes creates necessary indexes for the
// workoutHistory collection.
func EnsureWorkoutHistoryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
