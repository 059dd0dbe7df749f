// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Playlist
// model and its ordered video memberships.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// CreatePlaylist inserts a new Playlist row.
func CreatePlaylist(ctx context.Context, db *gorm.DB, p *domain.Playlist) (*domain.Playlist, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlaylist fetches a playlist by ID, or ErrNotFound if missing.
func GetPlaylist(ctx context.Context, db *gorm.DB, id string) (*domain.Playlist, error) {
	var p domain.Playlist
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPlaylistsPage returns one page of a user's playlists, newest first.
func ListPlaylistsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Playlist, int64, error) {
	base := db.Model(&domain.Playlist{}).Where("owner_id = ?", ownerID)
	return FindPage[domain.Playlist](ctx, base, "created_at desc, id desc", offset, limit)
}

// ListPlaylistVideos returns every membership row of a playlist in insertion
// order, with the videos and their owners preloaded.
func ListPlaylistVideos(ctx context.Context, db *gorm.DB, playlistID string) ([]domain.PlaylistVideo, error) {
	var out []domain.PlaylistVideo
	err := db.WithContext(ctx).
		Where("playlist_id = ?", playlistID).
		Order("position asc, id asc").
		Preload("Video").
		Preload("Video.Owner").
		Find(&out).Error
	return out, err
}

// UpdatePlaylistOwned applies a partial update to a playlist owned by
// ownerID, or ErrNotFound (absent or not owner).
func UpdatePlaylistOwned(ctx context.Context, db *gorm.DB, id, ownerID string, fields map[string]any) (*domain.Playlist, error) {
	res := db.WithContext(ctx).
		Model(&domain.Playlist{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetPlaylist(ctx, db, id)
}

// DeletePlaylistOwned removes a playlist owned by ownerID and its membership
// rows, in one transaction.
func DeletePlaylistOwned(ctx context.Context, db *gorm.DB, id, ownerID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("playlist_id = ?", id).Delete(&domain.PlaylistVideo{}).Error
	})
}

// AddPlaylistVideo appends a video to a playlist owned by ownerID. The
// membership's position is one past the current maximum. A video already in
// the playlist is rejected with ErrDuplicate via the (playlist_id, video_id)
// unique index; an absent or non-owned playlist yields ErrNotFound.
func AddPlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, ownerID, videoID string) (*domain.PlaylistVideo, error) {
	var pv *domain.PlaylistVideo
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ownership gate on the playlist itself.
		var count int64
		if err := tx.Model(&domain.Playlist{}).
			Where("id = ? AND owner_id = ?", playlistID, ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		var next int
		row := struct{ Max int }{}
		if err := tx.Model(&domain.PlaylistVideo{}).
			Select("COALESCE(MAX(position), 0) AS max").
			Where("playlist_id = ?", playlistID).
			Scan(&row).Error; err != nil {
			return err
		}
		next = row.Max + 1

		rec := &domain.PlaylistVideo{
			ID:         uuid.NewString(),
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   next,
			CreatedAt:  time.Now().UTC(),
		}
		if err := tx.Create(rec).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		pv = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pv, nil
}

// RemovePlaylistVideo drops a membership row from a playlist owned by
// ownerID. Removing a video that is not a member yields ErrNotFound, as does
// an absent or non-owned playlist.
func RemovePlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, ownerID, videoID string) error {
	res := db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Where("playlist_id IN (?)",
			db.Model(&domain.Playlist{}).Select("id").Where("id = ? AND owner_id = ?", playlistID, ownerID),
		).
		Delete(&domain.PlaylistVideo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
