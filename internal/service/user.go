package service

import (
	"PriVault/internal/repo"
	"PriVault/model"
	"PriVault/utils"
	"context"
	"errors"
)

// CreateUser hashes the password and creates a user.
func CreateUser(ctx context.Context, user *model.User) error {
	user.Password = utils.GetPwd(user.Password)
	return repo.Users.Create(ctx, user)
}

// IsEmailExist reports whether a user with the email exists.
func IsEmailExist(ctx context.Context, email string) bool {
	_, err := repo.Users.FindByEmail(ctx, email)
	return err == nil
}

// CheckPassword verifies a user's password by email.
func CheckPassword(ctx context.Context, email, password string) (*model.User, error) {
	user, err := repo.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPwd(password, user.Password) {
		return nil, errors.New("password error")
	}
	return user, nil
}
