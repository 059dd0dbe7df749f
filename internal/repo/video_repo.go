// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Video model.
//
// Mutations are owner-scoped: updates and deletes filter on
// (id, owner_id) in a single statement, so a missing row and a row owned by
// someone else produce the same ErrNotFound. There is no read-then-compare
// step anywhere in this file.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// VideoFilter narrows ListVideosPage. Zero values mean "no constraint".
type VideoFilter struct {
	// Query matches title or description, case-insensitive substring.
	Query string
	// OwnerID restricts to a single channel.
	OwnerID string
	// PublishedOnly hides drafts; listing endpoints set this except the
	// owner dashboard.
	PublishedOnly bool
}

// videoSortColumns is the allow-list of sortable columns. Anything else
// falls back to created_at.
var videoSortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

// VideoOrder converts an API sort key and direction into a deterministic
// ORDER BY clause with an id tie-break.
func VideoOrder(sortBy string, desc bool) string {
	col, ok := videoSortColumns[sortBy]
	if !ok {
		col = "created_at"
	}
	dir := "asc"
	if desc {
		dir = "desc"
	}
	return col + " " + dir + ", id " + dir
}

// CreateVideo inserts a new Video row with UUID primary key and UTC timestamp.
func CreateVideo(ctx context.Context, db *gorm.DB, v *domain.Video) (*domain.Video, error) {
	v.ID = uuid.NewString()
	v.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// GetVideo fetches a video by ID with its owner preloaded, or ErrNotFound.
func GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error) {
	var v domain.Video
	err := db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVideosPage returns one page of videos matching the filter, plus the
// total match count. order must come from VideoOrder.
func ListVideosPage(ctx context.Context, db *gorm.DB, f VideoFilter, order string, offset, limit int) ([]domain.Video, int64, error) {
	base := db.Model(&domain.Video{})
	if f.PublishedOnly {
		base = base.Where("published = ?", true)
	}
	if f.OwnerID != "" {
		base = base.Where("owner_id = ?", f.OwnerID)
	}
	if f.Query != "" {
		pat := "%" + f.Query + "%"
		base = base.Where("title LIKE ? OR description LIKE ?", pat, pat)
	}
	return FindPage[domain.Video](ctx, base, order, offset, limit, "Owner")
}

// UpdateVideoOwned applies a partial update to a video owned by ownerID and
// returns the post-update state. ErrNotFound covers both an absent id and a
// non-owner caller.
func UpdateVideoOwned(ctx context.Context, db *gorm.DB, id, ownerID string, fields map[string]any) (*domain.Video, error) {
	res := db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetVideo(ctx, db, id)
}

// TogglePublishOwned flips the published flag in a single owner-scoped
// statement and returns the new value.
func TogglePublishOwned(ctx context.Context, db *gorm.DB, id, ownerID string) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("published", gorm.Expr("NOT published"))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, ErrNotFound
	}
	v, err := GetVideo(ctx, db, id)
	if err != nil {
		return false, err
	}
	return v.Published, nil
}

// DeleteVideoCascade removes a video owned by ownerID together with its
// dependents, all inside one transaction: likes on the video, the video's
// comments and the likes on those comments, playlist memberships, and view
// markers. It returns the deleted video so the caller can clean up the
// external media objects afterwards.
func DeleteVideoCascade(ctx context.Context, db *gorm.DB, id, ownerID string) (*domain.Video, error) {
	var deleted *domain.Video
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Owner-scoped delete of the video row is the gate: zero rows means
		// absent or not owned, and nothing else in the cascade runs.
		var v domain.Video
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&v).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Video{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		// Likes on comments under this video, then the comments themselves.
		if err := tx.Where("comment_id IN (?)",
			tx.Model(&domain.Comment{}).Select("id").Where("video_id = ?", id),
		).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}

		// Direct dependents of the video.
		if err := tx.Where("video_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&domain.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&domain.VideoView{}).Error; err != nil {
			return err
		}

		deleted = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// CountView records a view of videoID by viewerKey within the window starting
// at windowStart, incrementing the counter only when this (video, viewer,
// window) tuple has not been seen before. The unique index on video_views is
// the arbiter: a duplicate insert means the view was already counted and the
// function reports counted=false without touching the counter.
func CountView(ctx context.Context, db *gorm.DB, videoID, viewerKey string, windowStart time.Time) (bool, error) {
	counted := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marker := &domain.VideoView{
			ID:          uuid.NewString(),
			VideoID:     videoID,
			ViewerKey:   viewerKey,
			WindowStart: windowStart,
			CreatedAt:   time.Now().UTC(),
		}
		if err := tx.Create(marker).Error; err != nil {
			if isUniqueViolation(err) {
				return nil // seen within this window, nothing to do
			}
			return err
		}
		res := tx.Model(&domain.Video{}).
			Where("id = ?", videoID).
			Update("views", gorm.Expr("views + 1"))
		if res.Error != nil {
			return res.Error
		}
		counted = res.RowsAffected > 0
		return nil
	})
	return counted, err
}

// PurgeStaleViews deletes view markers whose window ended before cutoff.
// They only exist to dedup counting and are dead weight afterwards.
func PurgeStaleViews(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("window_start < ?", cutoff).
		Delete(&domain.VideoView{})
	return res.RowsAffected, res.Error
}
