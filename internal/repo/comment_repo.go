// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model. Mutations are owner-scoped single filtered statements.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// CreateComment inserts a new Comment row.
func CreateComment(ctx context.Context, db *gorm.DB, c *domain.Comment) (*domain.Comment, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComment fetches a comment by ID, or ErrNotFound if missing.
func GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCommentsPage returns one page of a video's comments, newest first,
// with authors preloaded.
func ListCommentsPage(ctx context.Context, db *gorm.DB, videoID string, offset, limit int) ([]domain.Comment, int64, error) {
	base := db.Model(&domain.Comment{}).Where("video_id = ?", videoID)
	return FindPage[domain.Comment](ctx, base, "created_at desc, id desc", offset, limit, "Owner")
}

// UpdateCommentOwned rewrites the content of a comment owned by ownerID and
// returns the post-update state, or ErrNotFound (absent or not owner).
func UpdateCommentOwned(ctx context.Context, db *gorm.DB, id, ownerID, content string) (*domain.Comment, error) {
	res := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("content", content)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetComment(ctx, db, id)
}

// DeleteCommentOwned removes a comment owned by ownerID together with the
// likes attached to it, in one transaction.
func DeleteCommentOwned(ctx context.Context, db *gorm.DB, id, ownerID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("comment_id = ?", id).Delete(&domain.Like{}).Error
	})
}
