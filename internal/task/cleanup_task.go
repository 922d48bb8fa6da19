package task

import (
	"PriVault/internal/logger"
	"PriVault/internal/mq"
	"PriVault/internal/repo"
	"PriVault/internal/storage"
	"PriVault/model"
	"context"
	"encoding/json"
	"errors"
)

// CleanupMessage is the payload sent to the cleanup worker.
type CleanupMessage struct {
	TaskID  uint64 `json:"task_id"`
	Attempt int    `json:"attempt"`
}

// EnqueueOrphanCleanup records an orphaned blob and hands it to the worker
// queue for a compensating delete. With the broker unreachable it falls back
// to a best-effort direct delete so the blob is not silently leaked.
func EnqueueOrphanCleanup(ctx context.Context, bucket, objectName, ownerEmail string) {
	t := &model.CleanupTask{
		Bucket:     bucket,
		ObjectName: objectName,
		OwnerEmail: ownerEmail,
		Status:     "pending",
	}
	if err := repo.CleanupTasks.Create(ctx, t); err != nil {
		logger.Error("cleanup: record task failed", "object", objectName, "err", err)
		removeDirect(ctx, bucket, objectName)
		return
	}

	msg := CleanupMessage{TaskID: t.ID, Attempt: 0}
	body, err := json.Marshal(msg)
	if err != nil {
		_ = repo.CleanupTasks.MarkFailed(ctx, t.ID, err)
		removeDirect(ctx, bucket, objectName)
		return
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		logger.Error("cleanup: broker unavailable, deleting directly", "object", objectName, "err", err)
		removeDirect(ctx, bucket, objectName)
		_ = repo.CleanupTasks.MarkCompleted(ctx, t.ID)
		return
	}
	if err := publisher.PublishTask(ctx, body); err != nil {
		logger.Error("cleanup: publish failed, deleting directly", "object", objectName, "err", err)
		removeDirect(ctx, bucket, objectName)
		_ = repo.CleanupTasks.MarkCompleted(ctx, t.ID)
		return
	}
	logger.Info("cleanup: orphan enqueued", "task_id", t.ID, "object", objectName)
}

func removeDirect(ctx context.Context, bucket, objectName string) {
	if storage.Default == nil {
		return
	}
	if err := storage.Default.RemoveObject(ctx, bucket, objectName); err != nil {
		logger.Error("cleanup: direct delete failed", "object", objectName, "err", err)
	}
}

// ProcessCleanupTask deletes the recorded blob. Idempotent: a completed task
// and a task claimed by another consumer are both no-ops.
func ProcessCleanupTask(ctx context.Context, taskID uint64) error {
	t, err := repo.CleanupTasks.Find(ctx, taskID)
	if err != nil {
		return err
	}
	if t.Status == "completed" {
		return nil
	}
	claimed, err := repo.CleanupTasks.MarkRunning(ctx, taskID)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	if storage.Default == nil {
		return errStorageNotReady
	}
	if err := storage.Default.RemoveObject(ctx, t.Bucket, t.ObjectName); err != nil {
		return err
	}
	return repo.CleanupTasks.MarkCompleted(ctx, taskID)
}

var errStorageNotReady = errors.New("storage not initialized")
