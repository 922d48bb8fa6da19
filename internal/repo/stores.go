package repo

import (
	"PriVault/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserStore abstracts user-row persistence.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	UpsertByEmail(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePhone(ctx context.Context, email, phone string) error
}

// FileStore abstracts vault-file metadata persistence.
type FileStore interface {
	Insert(ctx context.Context, file *model.VaultFile) error
	ListByOwner(ctx context.Context, ownerEmail string) ([]model.VaultFile, error)
}

// CleanupTaskStore abstracts orphan-cleanup bookkeeping.
type CleanupTaskStore interface {
	Create(ctx context.Context, task *model.CleanupTask) error
	Find(ctx context.Context, id uint64) (*model.CleanupTask, error)
	MarkRunning(ctx context.Context, id uint64) (bool, error)
	MarkCompleted(ctx context.Context, id uint64) error
	MarkRetrying(ctx context.Context, id uint64, attempt int, cause error) error
	MarkFailed(ctx context.Context, id uint64, cause error) error
}

// Store instances bound at init time; tests may swap in fakes.
var (
	Users        UserStore
	Files        FileStore
	CleanupTasks CleanupTaskStore
)

type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore builds a UserStore over a gorm connection.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// Create inserts a new user row.
func (s *GormUserStore) Create(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// UpsertByEmail inserts or refreshes a user row keyed by the email unique
// constraint, then reloads the authoritative record into user.
func (s *GormUserStore) UpsertByEmail(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"is_active": true}),
	}).Create(user).Error
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("email = ?", user.Email).First(user).Error
}

// FindByEmail returns the user with the given email.
func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePhone persists the phone field for the user keyed by email.
func (s *GormUserStore) UpdatePhone(ctx context.Context, email, phone string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("phone", phone).Error
}

type GormFileStore struct {
	db *gorm.DB
}

// NewGormFileStore builds a FileStore over a gorm connection.
func NewGormFileStore(db *gorm.DB) *GormFileStore {
	return &GormFileStore{db: db}
}

// Insert creates a vault-file row and fills the server-assigned id and
// timestamp back into file.
func (s *GormFileStore) Insert(ctx context.Context, file *model.VaultFile) error {
	return s.db.WithContext(ctx).Create(file).Error
}

// ListByOwner returns all files owned by the email, newest first.
func (s *GormFileStore) ListByOwner(ctx context.Context, ownerEmail string) ([]model.VaultFile, error) {
	var files []model.VaultFile
	err := s.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}
