package repo

import (
	"PriVault/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type GormCleanupTaskStore struct {
	db *gorm.DB
}

// NewGormCleanupTaskStore builds a CleanupTaskStore over a gorm connection.
func NewGormCleanupTaskStore(db *gorm.DB) *GormCleanupTaskStore {
	return &GormCleanupTaskStore{db: db}
}

// Create inserts a cleanup task row.
func (s *GormCleanupTaskStore) Create(ctx context.Context, task *model.CleanupTask) error {
	return s.db.WithContext(ctx).Create(task).Error
}

// Find returns a cleanup task by id.
func (s *GormCleanupTaskStore) Find(ctx context.Context, id uint64) (*model.CleanupTask, error) {
	var task model.CleanupTask
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// MarkRunning claims a pending or retrying task. Returns false when another
// consumer already holds it or it is already done.
func (s *GormCleanupTaskStore) MarkRunning(ctx context.Context, id uint64) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.CleanupTask{}).
		Where("id = ? AND status IN ?", id, []string{"pending", "retrying"}).
		Updates(map[string]interface{}{
			"status":    "running",
			"error_msg": "",
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkCompleted finishes a task.
func (s *GormCleanupTaskStore) MarkCompleted(ctx context.Context, id uint64) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&model.CleanupTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       "completed",
			"completed_at": &now,
		}).Error
}

// MarkRetrying records a failed attempt that will be redelivered.
func (s *GormCleanupTaskStore) MarkRetrying(ctx context.Context, id uint64, attempt int, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return s.db.WithContext(ctx).Model(&model.CleanupTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    "retrying",
			"attempts":  attempt,
			"error_msg": msg,
		}).Error
}

// MarkFailed dead-letters a task after retries are exhausted.
func (s *GormCleanupTaskStore) MarkFailed(ctx context.Context, id uint64, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return s.db.WithContext(ctx).Model(&model.CleanupTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    "failed",
			"error_msg": msg,
		}).Error
}
