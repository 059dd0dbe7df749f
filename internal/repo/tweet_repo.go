// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Tweet
// model. Mutations are owner-scoped single filtered statements.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// CreateTweet inserts a new Tweet row.
func CreateTweet(ctx context.Context, db *gorm.DB, t *domain.Tweet) (*domain.Tweet, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTweet fetches a tweet by ID, or ErrNotFound if missing.
func GetTweet(ctx context.Context, db *gorm.DB, id string) (*domain.Tweet, error) {
	var t domain.Tweet
	if err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTweetsPage returns one page of a user's tweets, newest first.
func ListTweetsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Tweet, int64, error) {
	base := db.Model(&domain.Tweet{}).Where("owner_id = ?", ownerID)
	return FindPage[domain.Tweet](ctx, base, "created_at desc, id desc", offset, limit, "Owner")
}

// UpdateTweetOwned rewrites the content of a tweet owned by ownerID and
// returns the post-update state, or ErrNotFound (absent or not owner).
func UpdateTweetOwned(ctx context.Context, db *gorm.DB, id, ownerID, content string) (*domain.Tweet, error) {
	res := db.WithContext(ctx).
		Model(&domain.Tweet{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("content", content)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetTweet(ctx, db, id)
}

// DeleteTweetOwned removes a tweet owned by ownerID together with the likes
// attached to it, in one transaction.
func DeleteTweetOwned(ctx context.Context, db *gorm.DB, id, ownerID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Tweet{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("tweet_id = ?", id).Delete(&domain.Like{}).Error
	})
}
