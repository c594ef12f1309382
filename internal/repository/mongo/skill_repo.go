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

// Collection names for the two curriculum namespaces. Skills and strength
// paths share the document shape; the repository is bound to one of the
// collections at construction.
const (
	SkillCollectionName        = "skills"
	StrengthPathCollectionName = "strengthPaths"
)

// mongoSkillRepository implements repository.SkillRepository
type mongoSkillRepository struct {
	collection *mongo.Collection
}

// NewMongoSkillRepository creates a curriculum repository over the named
// collection (SkillCollectionName or StrengthPathCollectionName).
func NewMongoSkillRepository(db *mongo.Database, collectionName string) repository.SkillRepository {
	return &mongoSkillRepository{
		collection: db.Collection(collectionName),
	}
}

// GetByID retrieves a skill by its slug id.
func (r *mongoSkillRepository) GetByID(ctx context.Context, id string) (*domain.Skill, error) {
	var skill domain.Skill
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&skill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &skill, nil
}

// GetAll retrieves every curriculum in the collection, ordered by name.
func (r *mongoSkillRepository) GetAll(ctx context.Context) ([]domain.Skill, error) {
	var skills []domain.Skill
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &skills); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return skills, nil
}

// SeedAll bulk-upserts curriculum documents by id.
func (r *mongoSkillRepository) SeedAll(ctx context.Context, skills []domain.Skill) error {
	if len(skills) == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(skills))
	for i := range skills {
		skill := skills[i]
		if skill.CreatedAt.IsZero() {
			skill.CreatedAt = now
		}
		skill.UpdatedAt = now
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": skill.ID}).
			SetReplacement(skill).
			SetUpsert(true))
	}
	_, err := r.collection.BulkWrite(ctx, models)
	return err
}
