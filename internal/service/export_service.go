package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kinkatsu/workout-log/internal/domain"
	"kinkatsu/workout-log/internal/repository"
	"kinkatsu/workout-log/internal/storage"
)

var ErrExportDisabled = errors.New("workout export is not configured")

// ExportResult describes an uploaded history export.
type ExportResult struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	Workouts    int       `json:"workouts"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ExportService writes a user's full workout history to object storage.
type ExportService interface {
	ExportHistory(ctx context.Context, userID string) (*ExportResult, error)
}

type exportService struct {
	workoutRepo repository.WorkoutRepository
	fileStorage storage.FileStorage
	urlExpiry   time.Duration
	now         func() time.Time
}

// NewExportService returns an ExportService. A nil fileStorage disables
// exports.
func NewExportService(workoutRepo repository.WorkoutRepository, fileStorage storage.FileStorage, urlExpiry time.Duration) ExportService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &exportService{
		workoutRepo: workoutRepo,
		fileStorage: fileStorage,
		urlExpiry:   urlExpiry,
		now:         time.Now,
	}
}

type historyDocument struct {
	UserID     string           `json:"userId"`
	ExportedAt time.Time        `json:"exportedAt"`
	Workouts   []domain.Workout `json:"workouts"`
}

// ExportHistory reads from the store rather than the cache so the export
// reflects every committed save.
func (s *exportService) ExportHistory(ctx context.Context, userID string) (*ExportResult, error) {
	if s.fileStorage == nil {
		return nil, ErrExportDisabled
	}

	workouts, err := s.workoutRepo.ListByUser(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	body, err := json.Marshal(historyDocument{UserID: userID, ExportedAt: now, Workouts: workouts})
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s-%s.json", userID, now.Format("20060102T150405Z"), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		// Without a link nobody can fetch the object.
		_ = s.fileStorage.DeleteObject(ctx, key)
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &ExportResult{
		ObjectKey:   key,
		DownloadURL: url,
		Workouts:    len(workouts),
		ExpiresAt:   now.Add(s.urlExpiry),
	}, nil
}
