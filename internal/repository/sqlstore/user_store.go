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

type userStore struct {
	db *gorm.DB
}

// NewUserRepository returns a gorm-backed repository.UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userStore{db: db}
}

func (s *userStore) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return "", errors.New("user email and password hash are required")
	}
	now := time.Now().UTC()
	row := userRow{
		ID:           uuid.NewString(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", repository.ErrDuplicateEmail
		}
		return "", repository.Wrap("create user", err)
	}
	user.ID = row.ID
	user.CreatedAt = now
	user.UpdatedAt = now
	return row.ID, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.take(ctx, "get user by email", "email = ?", email)
}

func (s *userStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.take(ctx, "get user", "id = ?", id)
}

func (s *userStore) take(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).Where(query, arg).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, repository.Wrap(op, err)
	}
	return row.toDomain(), nil
}
