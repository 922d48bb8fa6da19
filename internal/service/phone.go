package service

import (
	"PriVault/internal/apperrors"
	"PriVault/internal/repo"
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phoneValidator = validator.New()

// ValidatePhone checks that raw is an E.164 number with country code.
// Runs before any I/O.
func ValidatePhone(raw string) error {
	raw = strings.TrimSpace(raw)
	if err := phoneValidator.Var(raw, "required,e164"); err != nil {
		return apperrors.Validation("enter a valid phone number with country code")
	}
	return nil
}

// SavePhone validates and persists the required phone field for the session
// user, then updates the in-memory record. Validation failures never reach
// the store.
func SavePhone(ctx context.Context, sess *VaultSession, raw string) error {
	if sess == nil || sess.User == nil {
		return apperrors.Precondition("no user")
	}
	raw = strings.TrimSpace(raw)
	if err := ValidatePhone(raw); err != nil {
		return err
	}
	if err := repo.Users.UpdatePhone(ctx, sess.User.Email, raw); err != nil {
		return apperrors.Persistence(err, "failed to save")
	}
	sess.User.Phone = raw
	sess.PhoneRequired = false
	return nil
}
