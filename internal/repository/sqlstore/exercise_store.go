package sqlstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/repository"
)

type exerciseStore struct {
	db *gorm.DB
}

// NewExerciseRepository returns a gorm-backed repository.ExerciseRepository.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &exerciseStore{db: db}
}

// Create inserts a catalog entry. The unique index on name is the final
// arbiter when two creates race past the service's name check.
func (s *exerciseStore) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	row := exerciseRow{
		ID:        uuid.NewString(),
		Name:      exercise.Name,
		BodyParts: datatypes.JSONSlice[domain.BodyPart](exercise.BodyParts),
		CreatedBy: exercise.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", repository.ErrDuplicateName
		}
		return "", repository.Wrap("create exercise", err)
	}
	exercise.ID = row.ID
	exercise.CreatedAt = row.CreatedAt
	return row.ID, nil
}

func (s *exerciseStore) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	return s.take(ctx, "get exercise", "id = ?", id)
}

func (s *exerciseStore) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	return s.take(ctx, "get exercise by name", "name = ?", name)
}

func (s *exerciseStore) take(ctx context.Context, op, query string, arg any) (*domain.Exercise, error) {
	var row exerciseRow
	if err := s.db.WithContext(ctx).Where(query, arg).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, repository.Wrap(op, err)
	}
	ex := row.toDomain()
	return &ex, nil
}

func (s *exerciseStore) ListAll(ctx context.Context) ([]domain.Exercise, error) {
	var rows []exerciseRow
	if err := s.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, repository.Wrap("list exercises", err)
	}
	out := make([]domain.Exercise, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}
