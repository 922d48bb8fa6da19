package service

import (
	"PriVault/internal/apperrors"
	"PriVault/internal/repo"
	"PriVault/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhoneAcceptsE164(t *testing.T) {
	assert.NoError(t, ValidatePhone("+14155552671"))
	assert.NoError(t, ValidatePhone("+442071838750"))
}

func TestValidatePhoneRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"not-a-number", "", "4155552671", "+1", "++14155552671", "+1 415 555 2671"} {
		err := ValidatePhone(raw)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr, "input %q", raw)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code, "input %q", raw)
	}
}

func TestSavePhoneRejectsWithoutTouchingStore(t *testing.T) {
	users := newFakeUserStore()
	_ = users.Create(context.Background(), &model.User{Email: "user@example.com"})
	repo.Users = users

	user, _ := users.FindByEmail(context.Background(), "user@example.com")
	sess := &VaultSession{User: user}

	err := SavePhone(context.Background(), sess, "not-a-number")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	assert.Zero(t, users.updatePhoneCalls, "validation failure must not reach the store")
	assert.Empty(t, sess.User.Phone)
}

func TestSavePhonePersistsAndUpdatesSession(t *testing.T) {
	users := newFakeUserStore()
	_ = users.Create(context.Background(), &model.User{Email: "user@example.com"})
	repo.Users = users

	user, _ := users.FindByEmail(context.Background(), "user@example.com")
	sess := &VaultSession{User: user, PhoneRequired: true}

	err := SavePhone(context.Background(), sess, "+14155552671")
	require.NoError(t, err)

	assert.Equal(t, 1, users.updatePhoneCalls)
	assert.Equal(t, "+14155552671", sess.User.Phone)
	assert.False(t, sess.PhoneRequired)
	assert.Equal(t, model.AccountStateComplete, sess.User.AccountState())

	stored, _ := users.FindByEmail(context.Background(), "user@example.com")
	assert.Equal(t, "+14155552671", stored.Phone)
}

func TestSavePhonePersistenceFailure(t *testing.T) {
	users := newFakeUserStore()
	_ = users.Create(context.Background(), &model.User{Email: "user@example.com"})
	users.updatePhoneErr = errors.New("db down")
	repo.Users = users

	user, _ := users.FindByEmail(context.Background(), "user@example.com")
	sess := &VaultSession{User: user}

	err := SavePhone(context.Background(), sess, "+14155552671")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodePersistenceError, appErr.Code)
	assert.Empty(t, sess.User.Phone, "in-memory record untouched on a failed save")
}

func TestSavePhoneWithoutUser(t *testing.T) {
	err := SavePhone(context.Background(), &VaultSession{}, "+14155552671")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodePreconditionFailed, appErr.Code)
}
