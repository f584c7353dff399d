package sqlstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/repository"
)

type workoutStore struct {
	db *gorm.DB
}

// NewWorkoutRepository returns a gorm-backed repository.WorkoutRepository.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &workoutStore{db: db}
}

// SaveWorkout upserts the header for (userID, day) and replaces the whole
// item and set tree inside one transaction. Any error rolls everything
// back, so readers see either the previous tree or the new one.
func (s *workoutStore) SaveWorkout(ctx context.Context, userID string, date time.Time, header domain.WorkoutHeader, items []domain.WorkoutItemInput) (*domain.Workout, error) {
	day := domain.NormalizeDate(date)
	var row workoutRow
	var saved []domain.Workout

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkExercisesExist(tx, items); err != nil {
			return err
		}

		now := time.Now().UTC()
		err := forUpdate(tx).
			Where("user_id = ? AND date = ?", userID, day).
			Take(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = workoutRow{
				ID:         uuid.NewString(),
				UserID:     userID,
				Date:       day,
				BodyWeight: header.BodyWeight,
				DayRPE:     header.DayRPE,
				Notes:      header.Notes,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			row.BodyWeight = header.BodyWeight
			row.DayRPE = header.DayRPE
			row.Notes = header.Notes
			row.UpdatedAt = now
			if err := tx.Model(&row).
				Select("body_weight", "day_rpe", "notes", "updated_at").
				Updates(&row).Error; err != nil {
				return err
			}
		}

		// Sets go first; they are reached only through this workout's items.
		itemIDs := tx.Model(&workoutItemRow{}).Select("id").Where("workout_id = ?", row.ID)
		if err := tx.Where("workout_item_id IN (?)", itemIDs).Delete(&workoutSetRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workout_id = ?", row.ID).Delete(&workoutItemRow{}).Error; err != nil {
			return err
		}

		itemRows, setRows := buildTree(row.ID, items)
		if len(itemRows) > 0 {
			if err := tx.Create(&itemRows).Error; err != nil {
				return err
			}
		}
		if len(setRows) > 0 {
			if err := tx.Create(&setRows).Error; err != nil {
				return err
			}
		}

		saved, err = loadTrees(tx, []workoutRow{row})
		return err
	})
	if err != nil {
		return nil, repository.Wrap("save workout", err)
	}
	return &saved[0], nil
}

func checkExercisesExist(tx *gorm.DB, items []domain.WorkoutItemInput) error {
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
	var n int64
	if err := tx.Model(&exerciseRow{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return err
	}
	if int(n) != len(ids) {
		return repository.ErrUnknownExercise
	}
	return nil
}

func buildTree(workoutID string, items []domain.WorkoutItemInput) ([]workoutItemRow, []workoutSetRow) {
	itemRows := make([]workoutItemRow, 0, len(items))
	var setRows []workoutSetRow
	for i, it := range items {
		itemID := uuid.NewString()
		itemRows = append(itemRows, workoutItemRow{
			ID:         itemID,
			WorkoutID:  workoutID,
			ExerciseID: it.ExerciseID,
			OrderIndex: i,
		})
		for j, set := range it.Sets {
			setRows = append(setRows, workoutSetRow{
				ID:            uuid.NewString(),
				WorkoutItemID: itemID,
				SetIndex:      j,
				WeightKg:      set.WeightKg,
				Reps:          set.Reps,
				RPE:           set.RPE,
			})
		}
	}
	return itemRows, setRows
}

func (s *workoutStore) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.Workout, error) {
	day := domain.NormalizeDate(date)
	var out []domain.Workout

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row workoutRow
		if err := tx.Where("user_id = ? AND date = ?", userID, day).Take(&row).Error; err != nil {
			return err
		}
		var err error
		out, err = loadTrees(tx, []workoutRow{row})
		return err
	}, readTxOptions(s.db)...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, repository.Wrap("get workout", err)
	}
	return &out[0], nil
}

func (s *workoutStore) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]domain.Workout, error) {
	var out []domain.Workout

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ?", userID)
		if !from.IsZero() {
			q = q.Where("date >= ?", domain.NormalizeDate(from))
		}
		if !to.IsZero() {
			q = q.Where("date < ?", domain.NormalizeDate(to))
		}
		var rows []workoutRow
		if err := q.Order("date DESC").Find(&rows).Error; err != nil {
			return err
		}
		var err error
		out, err = loadTrees(tx, rows)
		return err
	}, readTxOptions(s.db)...)
	if err != nil {
		return nil, repository.Wrap("list workouts", err)
	}
	return out, nil
}

// loadTrees attaches items, sets and exercise names to each workout row,
// keeping the order of rows.
func loadTrees(tx *gorm.DB, rows []workoutRow) ([]domain.Workout, error) {
	out := make([]domain.Workout, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	byWorkout := make(map[string]int, len(rows))
	workoutIDs := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
		byWorkout[r.ID] = i
		workoutIDs[i] = r.ID
	}

	var items []workoutItemRow
	if err := tx.Where("workout_id IN ?", workoutIDs).
		Order("workout_id").Order("order_index").
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return out, nil
	}

	itemIDs := make([]string, len(items))
	exerciseIDs := make([]string, 0, len(items))
	seenExercise := make(map[string]bool)
	for i, it := range items {
		itemIDs[i] = it.ID
		if !seenExercise[it.ExerciseID] {
			seenExercise[it.ExerciseID] = true
			exerciseIDs = append(exerciseIDs, it.ExerciseID)
		}
	}

	var sets []workoutSetRow
	if err := tx.Where("workout_item_id IN ?", itemIDs).
		Order("workout_item_id").Order("set_index").
		Find(&sets).Error; err != nil {
		return nil, err
	}
	setsByItem := make(map[string][]domain.WorkoutSet, len(items))
	for _, s := range sets {
		setsByItem[s.WorkoutItemID] = append(setsByItem[s.WorkoutItemID], domain.WorkoutSet{
			ID:            s.ID,
			WorkoutItemID: s.WorkoutItemID,
			SetIndex:      s.SetIndex,
			WeightKg:      s.WeightKg,
			Reps:          s.Reps,
			RPE:           s.RPE,
		})
	}

	var exercises []exerciseRow
	if err := tx.Select("id", "name").Where("id IN ?", exerciseIDs).Find(&exercises).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}

	for _, it := range items {
		w := &out[byWorkout[it.WorkoutID]]
		itemSets := setsByItem[it.ID]
		if itemSets == nil {
			itemSets = []domain.WorkoutSet{}
		}
		w.Items = append(w.Items, domain.WorkoutItem{
			ID:           it.ID,
			WorkoutID:    it.WorkoutID,
			ExerciseID:   it.ExerciseID,
			ExerciseName: names[it.ExerciseID],
			OrderIndex:   it.OrderIndex,
			Sets:         itemSets,
		})
	}
	return out, nil
}
