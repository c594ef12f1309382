package mongo

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// GetByID retrieves an exercise by its slug id.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetAll retrieves the whole catalog, ordered by name for stable listings.
func (r *mongoExerciseRepository) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{})
}

// GetByCategory retrieves all exercises in a movement category.
func (r *mongoExerciseRepository) GetByCategory(ctx context.Context, category domain.Category) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{"category": category})
}

// GetByLevel retrieves all exercises at a difficulty level.
func (r *mongoExerciseRepository) GetByLevel(ctx context.Context, level domain.Level) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{"level": level})
}

// GetByEquipment retrieves all exercises requiring a given piece of equipment.
func (r *mongoExerciseRepository) GetByEquipment(ctx context.Context, equipment domain.Equipment) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{"equipment": equipment})
}

// GetBeginner retrieves the entry points of the curriculum: beginner-level
// exercises that have no prerequisites.
func (r *mongoExerciseRepository) GetBeginner(ctx context.Context) ([]domain.Exercise, error) {
	filter := bson.M{
		"level": domain.LevelBeginner,
		"$or": []bson.M{
			{"prerequisites": bson.M{"$exists": false}},
			{"prerequisites": bson.M{"$size": 0}},
		},
	}
	return r.find(ctx, filter)
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// SetDemoMediaKey attaches (or clears) the demonstration-media object key.
// The rest of the document stays immutable.
func (r *mongoExerciseRepository) SetDemoMediaKey(ctx context.Context, id, objectKey string) error {
	update := bson.M{
		"$set": bson.M{
			"demoMediaKey": objectKey,
			"updatedAt":    time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SeedAll bulk-upserts catalog documents by id. Existing documents are
// replaced wholesale; this is the administrative reseeding path.
func (r *mongoExerciseRepository) SeedAll(ctx context.Context, exercises []domain.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(exercises))
	for i := range exercises {
		ex := exercises[i]
		if ex.CreatedAt.IsZero() {
			ex.CreatedAt = now
		}
		ex.UpdatedAt = now
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": ex.ID}).
			SetReplacement(ex).
			SetUpsert(true))
	}
	_, err := r.collection.BulkWrite(ctx, models)
	return err
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "level", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "equipment", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
