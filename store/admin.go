package store

import (
	"context"
	"errors"
	"fmt"

	"lunch-voting-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin creates a staff account with the given credentials unless a
// user with that email already exists. It reports whether one was created.
func EnsureAdmin(ctx context.Context, db *gorm.DB, email, username, password string) (bool, error) {
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).Take(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	if username == "" {
		username = "admin"
	}
	admin := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		IsStaff:      true,
		IsActive:     true,
		CreatedBy:    "bootstrap",
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
