// Command seed loads catalog content from YAML files and bulk-upserts it
// into MongoDB. Running it again replaces existing documents by id, which
// is the administrative reseeding path; user data is never touched.
//
// Usage: seed -dir ./seed [-config .]
package main

import (
	"calistix/bodyweight-app/internal/config"
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/repository"
	"calistix/bodyweight-app/internal/repository/mongo"
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type seedExercise struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	Description       string   `yaml:"description"`
	Category          string   `yaml:"category"`
	Level             string   `yaml:"level"`
	Equipment         string   `yaml:"equipment"`
	TargetType        string   `yaml:"targetType"`
	TargetValue       int      `yaml:"targetValue"`
	Prerequisites     []string `yaml:"prerequisites"`
	NextProgressionID string   `yaml:"nextProgressionId"`
}

type seedSkill struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Progression []struct {
		ExerciseID string `yaml:"exerciseId"`
		Order      int    `yaml:"order"`
	} `yaml:"progression"`
	UnlockCriteria *struct {
		MinLevel             string   `yaml:"minLevel"`
		CompletedExerciseIDs []string `yaml:"completedExerciseIds"`
	} `yaml:"unlockCriteria"`
}

func main() {
	dir := flag.String("dir", "./seed", "directory containing exercises.yaml, skills.yaml, strength_paths.yaml")
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	skillRepo := mongo.NewMongoSkillRepository(appDB, mongo.SkillCollectionName)
	pathRepo := mongo.NewMongoSkillRepository(appDB, mongo.StrengthPathCollectionName)

	exercises, err := loadExercises(filepath.Join(*dir, "exercises.yaml"))
	if err != nil {
		log.Fatalf("FATAL: Could not load exercises: %v", err)
	}
	if err := exerciseRepo.SeedAll(ctx, exercises); err != nil {
		log.Fatalf("FATAL: Could not seed exercises: %v", err)
	}
	log.Printf("Seeded %d exercises.", len(exercises))

	seedCurriculum(ctx, skillRepo, filepath.Join(*dir, "skills.yaml"), "skills")
	seedCurriculum(ctx, pathRepo, filepath.Join(*dir, "strength_paths.yaml"), "strength paths")

	log.Println("Seeding complete.")
}

func seedCurriculum(ctx context.Context, repo repository.SkillRepository, path, label string) {
	skills, err := loadSkills(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No %s file at %s, skipping.", label, path)
			return
		}
		log.Fatalf("FATAL: Could not load %s: %v", label, err)
	}
	if err := repo.SeedAll(ctx, skills); err != nil {
		log.Fatalf("FATAL: Could not seed %s: %v", label, err)
	}
	log.Printf("Seeded %d %s.", len(skills), label)
}

func loadExercises(path string) ([]domain.Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []seedExercise
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	exercises := make([]domain.Exercise, 0, len(raw))
	for _, e := range raw {
		exercises = append(exercises, domain.Exercise{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Category:    domain.Category(e.Category),
			Level:       domain.Level(e.Level),
			Equipment:   domain.Equipment(e.Equipment),
			Target: domain.Target{
				Type:  domain.TargetType(e.TargetType),
				Value: e.TargetValue,
			},
			Prerequisites:     e.Prerequisites,
			NextProgressionID: e.NextProgressionID,
		})
	}
	return exercises, nil
}

func loadSkills(path string) ([]domain.Skill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []seedSkill
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	skills := make([]domain.Skill, 0, len(raw))
	for _, s := range raw {
		skill := domain.Skill{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
		}
		for _, p := range s.Progression {
			skill.Progression = append(skill.Progression, domain.ProgressionEntry{
				ExerciseID: p.ExerciseID,
				Order:      p.Order,
			})
		}
		if s.UnlockCriteria != nil {
			skill.UnlockCriteria = &domain.UnlockCriteria{
				MinLevel:             domain.Level(s.UnlockCriteria.MinLevel),
				CompletedExerciseIDs: s.UnlockCriteria.CompletedExerciseIDs,
			}
		}
		skills = append(skills, skill)
	}
	return skills, nil
}
