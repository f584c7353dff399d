package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/repository"
)

// mongoWorkoutRepository stores each (user, day) workout as one document
// with its items and sets embedded.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
	exercises  *mongo.Collection
}

// NewMongoWorkoutRepository creates a new instance of mongoWorkoutRepository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
		exercises:  db.Collection(exerciseCollectionName),
	}
}

// SaveWorkout replaces the header and embedded items with a single upsert,
// which MongoDB applies atomically to the document.
func (r *mongoWorkoutRepository) SaveWorkout(ctx context.Context, userID string, date time.Time, header domain.WorkoutHeader, items []domain.WorkoutItemInput) (*domain.Workout, error) {
	day := domain.NormalizeDate(date)
	if err := r.checkExercisesExist(ctx, items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	set := bson.M{
		"items":     embedItems(items),
		"updatedAt": now,
	}
	unset := bson.M{}
	setOrUnset(set, unset, "bodyWeight", header.BodyWeight)
	setOrUnset(set, unset, "dayRpe", header.DayRPE)
	if header.Notes != nil {
		set["notes"] = *header.Notes
	} else {
		unset["notes"] = ""
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": uuid.NewString(), "createdAt": now},
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	filter := bson.M{"userId": userID, "date": day}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.Workout
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, repository.Wrap("save workout", err)
	}
	out := []domain.Workout{saved}
	if err := r.fillNames(ctx, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

func setOrUnset(set, unset bson.M, field string, v *float64) {
	if v != nil {
		set[field] = *v
		return
	}
	unset[field] = ""
}

func embedItems(items []domain.WorkoutItemInput) []domain.WorkoutItem {
	out := make([]domain.WorkoutItem, len(items))
	for i, it := range items {
		sets := make([]domain.WorkoutSet, len(it.Sets))
		for j, s := range it.Sets {
			sets[j] = domain.WorkoutSet{
				ID:       uuid.NewString(),
				SetIndex: j,
				WeightKg: s.WeightKg,
				Reps:     s.Reps,
				RPE:      s.RPE,
			}
		}
		out[i] = domain.WorkoutItem{
			ID:         uuid.NewString(),
			ExerciseID: it.ExerciseID,
			OrderIndex: i,
			Sets:       sets,
		}
	}
	return out
}

func (r *mongoWorkoutRepository) checkExercisesExist(ctx context.Context, items []domain.WorkoutItemInput) error {
	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it.ExerciseID] {
			seen[it.ExerciseID] = true
			ids = append(ids, it.ExerciseID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	n, err := r.exercises.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return repository.Wrap("check exercises", err)
	}
	if int(n) != len(ids) {
		return repository.ErrUnknownExercise
	}
	return nil
}

func (r *mongoWorkoutRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.Workout, error) {
	var w domain.Workout
	filter := bson.M{"userId": userID, "date": domain.NormalizeDate(date)}
	if err := r.collection.FindOne(ctx, filter).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, repository.Wrap("get workout", err)
	}
	out := []domain.Workout{w}
	if err := r.fillNames(ctx, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (r *mongoWorkoutRepository) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]domain.Workout, error) {
	filter := bson.M{"userId": userID}
	dateRange := bson.M{}
	if !from.IsZero() {
		dateRange["$gte"] = domain.NormalizeDate(from)
	}
	if !to.IsZero() {
		dateRange["$lt"] = domain.NormalizeDate(to)
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, repository.Wrap("list workouts", err)
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, repository.Wrap("list workouts", err)
	}
	if err := r.fillNames(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// fillNames restores the fields that are implied by the document shape
// rather than stored: parent ids, UTC dates and exercise names.
func (r *mongoWorkoutRepository) fillNames(ctx context.Context, workouts []domain.Workout) error {
	var ids []string
	seen := make(map[string]bool)
	for _, w := range workouts {
		for _, it := range w.Items {
			if !seen[it.ExerciseID] {
				seen[it.ExerciseID] = true
				ids = append(ids, it.ExerciseID)
			}
		}
	}
	names, err := exerciseNames(ctx, r.exercises, ids)
	if err != nil {
		return repository.Wrap("load exercise names", err)
	}

	for i := range workouts {
		w := &workouts[i]
		w.Date = domain.NormalizeDate(w.Date.UTC())
		if w.Items == nil {
			w.Items = []domain.WorkoutItem{}
		}
		for j := range w.Items {
			it := &w.Items[j]
			it.WorkoutID = w.ID
			it.ExerciseName = names[it.ExerciseID]
			for k := range it.Sets {
				it.Sets[k].WorkoutItemID = it.ID
			}
		}
	}
	return nil
}

// EnsureWorkoutIndexes creates the unique (userId, date) index.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().SetUnique(true).SetName("workout_user_date_unique"),
	})
	return err
}
