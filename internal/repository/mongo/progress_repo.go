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

const progressCollectionName = "progress"

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new Progress repository backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Get retrieves the progress record of one (user, exercise) pair.
func (r *mongoProgressRepository) Get(ctx context.Context, userID primitive.ObjectID, exerciseID string) (*domain.Progress, error) {
	var progress domain.Progress
	filter := bson.M{"_id": domain.ProgressID(userID, exerciseID)}

	err := r.collection.FindOne(ctx, filter).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// Upsert writes a progress record under its composite id, creating it on
// first completion. The caller is responsible for the monotonic-best rule
// (read, max, write); two concurrent sessions of the same user can lose an
// update here, accepted for single-device usage.
func (r *mongoProgressRepository) Upsert(ctx context.Context, progress *domain.Progress) error {
	if progress.UserID == primitive.NilObjectID || progress.ExerciseID == "" {
		return errors.New("progress user ID and exercise ID are required")
	}
	progress.ID = domain.ProgressID(progress.UserID, progress.ExerciseID)

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": progress.ID}, progress, opts)
	return err
}

// GetCompletedExerciseIDs returns the ids of every exercise the user has a
// progress record for. Only the exerciseId field is fetched; the caller
// turns the slice into a membership set.
func (r *mongoProgressRepository) GetCompletedExerciseIDs(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetProjection(bson.M{"exerciseId": 1})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ExerciseID string `bson:"exerciseId"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ExerciseID)
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// EnsureProgressIndexes creates necessary indexes for the progress collection.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
