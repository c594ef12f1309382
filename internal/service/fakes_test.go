package service

import (
	"calistix/bodyweight-app/internal/domain"
	"calistix/bodyweight-app/internal/repository"
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository interfaces. Kept deliberately dumb:
// maps plus the same ErrNotFound contract as the mongo implementations.

type fakeExerciseRepo struct {
	exercises map[string]domain.Exercise
}

func newFakeExerciseRepo(exercises ...domain.Exercise) *fakeExerciseRepo {
	r := &fakeExerciseRepo{exercises: make(map[string]domain.Exercise)}
	for _, ex := range exercises {
		r.exercises[ex.ID] = ex
	}
	return r
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (r *fakeExerciseRepo) GetAll(_ context.Context) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, ex := range r.exercises {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeExerciseRepo) GetByCategory(ctx context.Context, category domain.Category) ([]domain.Exercise, error) {
	return r.filter(func(ex domain.Exercise) bool { return ex.Category == category })
}

func (r *fakeExerciseRepo) GetByLevel(ctx context.Context, level domain.Level) ([]domain.Exercise, error) {
	return r.filter(func(ex domain.Exercise) bool { return ex.Level == level })
}

func (r *fakeExerciseRepo) GetByEquipment(ctx context.Context, equipment domain.Equipment) ([]domain.Exercise, error) {
	return r.filter(func(ex domain.Exercise) bool { return ex.Equipment == equipment })
}

func (r *fakeExerciseRepo) GetBeginner(_ context.Context) ([]domain.Exercise, error) {
	return r.filter(func(ex domain.Exercise) bool {
		return ex.Level == domain.LevelBeginner && len(ex.Prerequisites) == 0
	})
}

func (r *fakeExerciseRepo) filter(keep func(domain.Exercise) bool) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, ex := range r.exercises {
		if keep(ex) {
			out = append(out, ex)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeExerciseRepo) SetDemoMediaKey(_ context.Context, id, objectKey string) error {
	ex, ok := r.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	ex.DemoMediaKey = objectKey
	r.exercises[id] = ex
	return nil
}

func (r *fakeExerciseRepo) SeedAll(_ context.Context, exercises []domain.Exercise) error {
	for _, ex := range exercises {
		r.exercises[ex.ID] = ex
	}
	return nil
}

type fakeSkillRepo struct {
	skills map[string]domain.Skill
}

func newFakeSkillRepo(skills ...domain.Skill) *fakeSkillRepo {
	r := &fakeSkillRepo{skills: make(map[string]domain.Skill)}
	for _, s := range skills {
		r.skills[s.ID] = s
	}
	return r
}

func (r *fakeSkillRepo) GetByID(_ context.Context, id string) (*domain.Skill, error) {
	s, ok := r.skills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSkillRepo) GetAll(_ context.Context) ([]domain.Skill, error) {
	var out []domain.Skill
	for _, s := range r.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeSkillRepo) SeedAll(_ context.Context, skills []domain.Skill) error {
	for _, s := range skills {
		r.skills[s.ID] = s
	}
	return nil
}

type fakePlanRepo struct {
	plans map[primitive.ObjectID]domain.Plan
	// failUpdates/failDeletes make specific plan ids error, for testing
	// best-effort batch behavior.
	failUpdates map[primitive.ObjectID]error
	failDeletes map[primitive.ObjectID]error
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{
		plans:       make(map[primitive.ObjectID]domain.Plan),
		failUpdates: make(map[primitive.ObjectID]error),
		failDeletes: make(map[primitive.ObjectID]error),
	}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	r.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakePlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	var out []domain.Plan
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayIndex < out[j].DayIndex })
	return out, nil
}

func (r *fakePlanRepo) GetByUserAndDay(_ context.Context, userID primitive.ObjectID, dayIndex int) (*domain.Plan, error) {
	for _, p := range r.plans {
		if p.UserID == userID && p.DayIndex == dayIndex {
			plan := p
			return &plan, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) Update(_ context.Context, id primitive.ObjectID, update domain.PlanUpdate) error {
	if err, ok := r.failUpdates[id]; ok {
		return err
	}
	p, ok := r.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.GoalID != nil {
		p.GoalID = *update.GoalID
	}
	if update.DayIndex != nil {
		p.DayIndex = *update.DayIndex
	}
	if update.Exercises != nil {
		p.Exercises = *update.Exercises
	}
	if update.Completed != nil {
		p.Completed = *update.Completed
	}
	p.UpdatedAt = time.Now().UTC()
	r.plans[id] = p
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if err, ok := r.failDeletes[id]; ok {
		return err
	}
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type fakeProgressRepo struct {
	records map[string]domain.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[string]domain.Progress)}
}

func (r *fakeProgressRepo) Get(_ context.Context, userID primitive.ObjectID, exerciseID string) (*domain.Progress, error) {
	p, ok := r.records[domain.ProgressID(userID, exerciseID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProgressRepo) Upsert(_ context.Context, progress *domain.Progress) error {
	progress.ID = domain.ProgressID(progress.UserID, progress.ExerciseID)
	r.records[progress.ID] = *progress
	return nil
}

func (r *fakeProgressRepo) GetCompletedExerciseIDs(_ context.Context, userID primitive.ObjectID) ([]string, error) {
	var ids []string
	for _, p := range r.records {
		if p.UserID == userID {
			ids = append(ids, p.ExerciseID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeHistoryRepo struct {
	records []domain.WorkoutHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{}
}

func (r *fakeHistoryRepo) Create(_ context.Context, record *domain.WorkoutHistory) error {
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeHistoryRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutHistory, error) {
	var out []domain.WorkoutHistory
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, update domain.ProfileUpdate) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Level != nil {
		u.Level = *update.Level
	}
	if update.GoalType != nil {
		u.GoalType = *update.GoalType
	}
	if update.PrimaryGoalID != nil {
		u.PrimaryGoalID = *update.PrimaryGoalID
	}
	if update.TrainingDaysPerWeek != nil {
		u.TrainingDaysPerWeek = *update.TrainingDaysPerWeek
	}
	r.users[id] = u
	return nil
}
