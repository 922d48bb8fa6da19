package repo

import (
	"PriVault/model"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUpsertByEmailInsertsAndReloads(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormUserStore(db)

	mock.ExpectExec("INSERT INTO `user_db`.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(7, 1))
	rows := sqlmock.NewRows([]string{"id", "email", "pass_word", "phone", "is_active", "created_at", "updated_at"}).
		AddRow(7, "user@example.com", "", "", true, time.Now(), time.Now())
	mock.ExpectQuery("SELECT \\* FROM `user_db` WHERE email = \\?").
		WithArgs("user@example.com", 1).
		WillReturnRows(rows)

	user := &model.User{Email: "user@example.com"}
	require.NoError(t, store.UpsertByEmail(context.Background(), user))

	assert.Equal(t, uint64(7), user.ID)
	assert.Equal(t, "user@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.Empty(t, user.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertByEmailRefreshesExisting(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormUserStore(db)

	// conflict path: the row already exists, the reload wins
	mock.ExpectExec("INSERT INTO `user_db`.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 2))
	rows := sqlmock.NewRows([]string{"id", "email", "pass_word", "phone", "is_active", "created_at", "updated_at"}).
		AddRow(3, "user@example.com", "hash", "+14155552671", true, time.Now(), time.Now())
	mock.ExpectQuery("SELECT \\* FROM `user_db` WHERE email = \\?").
		WithArgs("user@example.com", 1).
		WillReturnRows(rows)

	user := &model.User{Email: "user@example.com"}
	require.NoError(t, store.UpsertByEmail(context.Background(), user))

	assert.Equal(t, uint64(3), user.ID)
	assert.Equal(t, "+14155552671", user.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePhone(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormUserStore(db)

	mock.ExpectExec("UPDATE `user_db` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpdatePhone(context.Background(), "user@example.com", "+14155552671")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileInsert(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormFileStore(db)

	mock.ExpectExec("INSERT INTO `vault_file`").
		WillReturnResult(sqlmock.NewResult(11, 1))

	file := &model.VaultFile{
		Name:        "notes.txt",
		StoragePath: "1/notes.txt",
		OwnerEmail:  "user@example.com",
	}
	require.NoError(t, store.Insert(context.Background(), file))
	assert.Equal(t, uint64(11), file.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileListByOwnerNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormFileStore(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "storage_path", "owner_email", "created_at"}).
		AddRow(2, "photo.png", "", "1/photo.png", "user@example.com", time.Now()).
		AddRow(1, "notes.txt", "", "1/notes.txt", "user@example.com", time.Now().Add(-time.Hour))
	mock.ExpectQuery("SELECT \\* FROM `vault_file` WHERE owner_email = \\?.*ORDER BY created_at DESC").
		WithArgs("user@example.com").
		WillReturnRows(rows)

	files, err := store.ListByOwner(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "photo.png", files[0].Name)
	assert.Equal(t, "notes.txt", files[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
