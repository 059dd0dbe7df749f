// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Session
// model: issued access/refresh token pairs.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// CreateSession persists a freshly issued token pair.
func CreateSession(ctx context.Context, db *gorm.DB, s *domain.Session) (*domain.Session, error) {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSessionByAccessToken returns the session for a still-valid access token,
// or ErrNotFound when the token is unknown or expired.
func GetSessionByAccessToken(ctx context.Context, db *gorm.DB, token string, now time.Time) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).
		Where("access_token = ? AND access_expires_at > ?", token, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSessionByRefreshToken returns the session for a still-valid refresh
// token, or ErrNotFound when the token is unknown or expired.
func GetSessionByRefreshToken(ctx context.Context, db *gorm.DB, token string, now time.Time) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).
		Where("refresh_token = ? AND refresh_expires_at > ?", token, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RotateSession swaps both tokens and expiries on an existing session row.
// Rotation keyed by the old refresh token makes concurrent refreshes race
// safely: only one caller finds a row to update, the loser gets ErrNotFound.
func RotateSession(ctx context.Context, db *gorm.DB, oldRefreshToken string, s *domain.Session) error {
	res := db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("refresh_token = ?", oldRefreshToken).
		Updates(map[string]any{
			"access_token":       s.AccessToken,
			"refresh_token":      s.RefreshToken,
			"access_expires_at":  s.AccessExpiresAt,
			"refresh_expires_at": s.RefreshExpiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSessionByAccessToken removes the session backing an access token
// (logout). Deleting an already-absent session is not an error.
func DeleteSessionByAccessToken(ctx context.Context, db *gorm.DB, token string) error {
	return db.WithContext(ctx).
		Where("access_token = ?", token).
		Delete(&domain.Session{}).Error
}

// PurgeExpiredSessions deletes sessions whose refresh token has expired and
// returns the number of rows removed. Run periodically by the maintenance job.
func PurgeExpiredSessions(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("refresh_expires_at <= ?", now).
		Delete(&domain.Session{})
	return res.RowsAffected, res.Error
}
