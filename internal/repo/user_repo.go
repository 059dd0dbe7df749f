// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Handle/email normalization happens in
// the service layer; this package stores what it is given.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// CreateUser inserts a new User row. The ID is a randomly generated UUID and
// CreatedAt is set to UTC. A handle or email collision is returned as
// ErrDuplicate.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

// GetUser fetches a user by ID, or ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByHandle fetches a user by its case-folded handle.
func GetUserByHandle(ctx context.Context, db *gorm.DB, handle string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("handle = ?", handle).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail fetches a user by its lowercased email.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserFields applies a partial update to the user row and returns the
// post-update state. A unique violation (email already taken) is returned as
// ErrDuplicate; a missing row as ErrNotFound.
func UpdateUserFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.User, error) {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, ErrDuplicate
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetUser(ctx, db, id)
}

// notFoundAsNil turns ErrNotFound into (nil, nil) for lookups where absence
// is an expected outcome rather than a failure.
func notFoundAsNil(u *domain.User, err error) (*domain.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return u, err
}

// FindUserByHandle is like GetUserByHandle but reports absence as (nil, nil).
// Used by registration pre-checks where "no such user" is the happy path.
func FindUserByHandle(ctx context.Context, db *gorm.DB, handle string) (*domain.User, error) {
	return notFoundAsNil(GetUserByHandle(ctx, db, handle))
}
