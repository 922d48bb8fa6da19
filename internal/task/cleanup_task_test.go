package task

import (
	"PriVault/config"
	"PriVault/internal/repo"
	"PriVault/internal/storage"
	"PriVault/model"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskStore struct {
	tasks         map[uint64]*model.CleanupTask
	nextID        uint64
	createErr     error
	markRunning   int
	markCompleted int
	markRetrying  int
	markFailed    int
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[uint64]*model.CleanupTask{}}
}

func (s *fakeTaskStore) Create(ctx context.Context, t *model.CleanupTask) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	t.ID = s.nextID
	copied := *t
	s.tasks[t.ID] = &copied
	return nil
}

func (s *fakeTaskStore) Find(ctx context.Context, id uint64) (*model.CleanupTask, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, errors.New("task not found")
	}
	copied := *t
	return &copied, nil
}

func (s *fakeTaskStore) MarkRunning(ctx context.Context, id uint64) (bool, error) {
	s.markRunning++
	t, ok := s.tasks[id]
	if !ok {
		return false, errors.New("task not found")
	}
	if t.Status != "pending" && t.Status != "retrying" {
		return false, nil
	}
	t.Status = "running"
	return true, nil
}

func (s *fakeTaskStore) MarkCompleted(ctx context.Context, id uint64) error {
	s.markCompleted++
	s.tasks[id].Status = "completed"
	return nil
}

func (s *fakeTaskStore) MarkRetrying(ctx context.Context, id uint64, attempt int, cause error) error {
	s.markRetrying++
	s.tasks[id].Status = "retrying"
	s.tasks[id].Attempts = attempt
	return nil
}

func (s *fakeTaskStore) MarkFailed(ctx context.Context, id uint64, cause error) error {
	s.markFailed++
	s.tasks[id].Status = "failed"
	return nil
}

type fakeBlobStore struct {
	removed   []string
	removeErr error
}

func (s *fakeBlobStore) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts storage.PutOptions) error {
	return nil
}

func (s *fakeBlobStore) RemoveObject(ctx context.Context, bucket, object string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, bucket+"/"+object)
	return nil
}

func (s *fakeBlobStore) PresignedGetObjectWithResponse(ctx context.Context, bucket, object string, expiry time.Duration, params map[string]string) (string, error) {
	return "https://signed.example/" + bucket + "/" + object, nil
}

func setupCleanupTest(t *testing.T) (*fakeTaskStore, *fakeBlobStore) {
	t.Helper()
	tasks := newFakeTaskStore()
	blobs := &fakeBlobStore{}
	repo.CleanupTasks = tasks
	storage.Default = blobs
	t.Cleanup(func() {
		repo.CleanupTasks = nil
		storage.Default = nil
	})
	return tasks, blobs
}

func pendingTask(tasks *fakeTaskStore) uint64 {
	t := &model.CleanupTask{Bucket: "vault-test", ObjectName: "1/orphan.txt", Status: "pending"}
	_ = tasks.Create(context.Background(), t)
	return t.ID
}

func TestProcessCleanupTaskDeletesAndCompletes(t *testing.T) {
	tasks, blobs := setupCleanupTest(t)
	id := pendingTask(tasks)

	require.NoError(t, ProcessCleanupTask(context.Background(), id))

	assert.Equal(t, []string{"vault-test/1/orphan.txt"}, blobs.removed)
	assert.Equal(t, "completed", tasks.tasks[id].Status)
}

func TestProcessCleanupTaskCompletedIsNoop(t *testing.T) {
	tasks, blobs := setupCleanupTest(t)
	id := pendingTask(tasks)
	tasks.tasks[id].Status = "completed"

	require.NoError(t, ProcessCleanupTask(context.Background(), id))

	assert.Empty(t, blobs.removed)
	assert.Zero(t, tasks.markRunning, "a completed task must not be re-claimed")
}

func TestProcessCleanupTaskClaimedIsNoop(t *testing.T) {
	tasks, blobs := setupCleanupTest(t)
	id := pendingTask(tasks)
	// another consumer holds the claim
	tasks.tasks[id].Status = "running"

	require.NoError(t, ProcessCleanupTask(context.Background(), id))

	assert.Empty(t, blobs.removed)
	assert.Zero(t, tasks.markCompleted)
}

func TestProcessCleanupTaskDeleteFailureKeepsClaim(t *testing.T) {
	tasks, blobs := setupCleanupTest(t)
	id := pendingTask(tasks)
	blobs.removeErr = errors.New("minio unreachable")

	err := ProcessCleanupTask(context.Background(), id)

	require.Error(t, err)
	assert.Equal(t, "running", tasks.tasks[id].Status)
	assert.Zero(t, tasks.markCompleted)
}

func TestEnqueueOrphanCleanupBrokerDownDeletesDirectly(t *testing.T) {
	tasks, blobs := setupCleanupTest(t)
	config.AppConfig.RabbitMQURL = ""

	EnqueueOrphanCleanup(context.Background(), "vault-test", "1/orphan.txt", "user@example.com")

	assert.Equal(t, []string{"vault-test/1/orphan.txt"}, blobs.removed)
	require.Len(t, tasks.tasks, 1)
	assert.Equal(t, "completed", tasks.tasks[1].Status)
}

func TestEnqueueOrphanCleanupRecordFailureStillDeletes(t *testing.T) {
	tasks, blobs := setupCleanupTest(t)
	tasks.createErr = errors.New("db down")

	EnqueueOrphanCleanup(context.Background(), "vault-test", "1/orphan.txt", "user@example.com")

	assert.Equal(t, []string{"vault-test/1/orphan.txt"}, blobs.removed)
}
