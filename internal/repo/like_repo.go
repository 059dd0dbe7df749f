// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Like model,
// including the toggle primitive shared by all three like targets.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// likeScope narrows a query to the (user, target) pair of the tagged union.
func likeScope(db *gorm.DB, userID string, target domain.LikeTarget) *gorm.DB {
	q := db.Where("user_id = ?", userID)
	switch target.Kind {
	case domain.LikeTargetVideo:
		return q.Where("video_id = ?", target.ID)
	case domain.LikeTargetComment:
		return q.Where("comment_id = ?", target.ID)
	default:
		return q.Where("tweet_id = ?", target.ID)
	}
}

// ToggleLike flips the like state of (userID, target) and returns the
// resulting state: true when the call created a like, false when it removed
// one.
//
// The delete-then-insert sequence runs in a transaction, and the per-target
// unique index is the concurrency arbiter: if a concurrent toggle wins the
// insert race, the duplicate violation is read as "already liked" and the
// stored state is reported instead of an error. Two sequential toggles always
// return to the original state.
func ToggleLike(ctx context.Context, db *gorm.DB, userID string, target domain.LikeTarget) (bool, error) {
	liked := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := likeScope(tx, userID, target).Delete(&domain.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		l, err := domain.NewLike(userID, target)
		if err != nil {
			return err
		}
		l.ID = uuid.NewString()
		l.CreatedAt = time.Now().UTC()
		if err := tx.Create(l).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost the race against a concurrent toggle; the like exists.
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

// HasLike reports whether (userID, target) is currently liked.
func HasLike(ctx context.Context, db *gorm.DB, userID string, target domain.LikeTarget) (bool, error) {
	var count int64
	err := likeScope(db.WithContext(ctx).Model(&domain.Like{}), userID, target).Count(&count).Error
	return count > 0, err
}

// ListLikedVideosPage returns one page of the videos a user has liked,
// most recently liked first, joined through the likes table.
func ListLikedVideosPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Video, int64, error) {
	base := db.Model(&domain.Video{}).
		Joins("JOIN likes ON likes.video_id = videos.id").
		Where("likes.user_id = ?", userID)
	return FindPage[domain.Video](ctx, base, "likes.created_at desc, videos.id desc", offset, limit, "Owner")
}

// CountLikesOnVideosOf returns the number of likes received across all videos
// owned by ownerID. Used by the channel dashboard.
func CountLikesOnVideosOf(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("video_id IN (?)",
			db.Model(&domain.Video{}).Select("id").Where("owner_id = ?", ownerID),
		).
		Count(&total).Error
	return total, err
}

// LikeTargetExists verifies the liked entity is present before a toggle
// creates a record, so likes cannot point at nothing.
func LikeTargetExists(ctx context.Context, db *gorm.DB, target domain.LikeTarget) (bool, error) {
	var model any
	switch target.Kind {
	case domain.LikeTargetVideo:
		model = &domain.Video{}
	case domain.LikeTargetComment:
		model = &domain.Comment{}
	case domain.LikeTargetTweet:
		model = &domain.Tweet{}
	default:
		return false, domain.ErrInvalidLikeTarget
	}
	var count int64
	err := db.WithContext(ctx).Model(model).Where("id = ?", target.ID).Count(&count).Error
	return count > 0, err
}
