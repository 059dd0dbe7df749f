package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// ChannelStats is an aggregate snapshot of a single channel, computed
// entirely in the database. Zero values are returned for channels with
// no content yet.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

// GetChannelStats aggregates video count, summed views, subscriber count
// and received video likes for the given channel owner.
func GetChannelStats(ctx context.Context, db *gorm.DB, ownerID string) (*ChannelStats, error) {
	var stats ChannelStats

	if err := db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("owner_id = ?", ownerID).
		Count(&stats.TotalVideos).Error; err != nil {
		return nil, err
	}

	var views struct{ Total int64 }
	if err := db.WithContext(ctx).
		Model(&domain.Video{}).
		Select("COALESCE(SUM(views), 0) AS total").
		Where("owner_id = ?", ownerID).
		Scan(&views).Error; err != nil {
		return nil, err
	}
	stats.TotalViews = views.Total

	subs, err := CountSubscribers(ctx, db, ownerID)
	if err != nil {
		return nil, err
	}
	stats.TotalSubscribers = subs

	likes, err := CountLikesOnVideosOf(ctx, db, ownerID)
	if err != nil {
		return nil, err
	}
	stats.TotalLikes = likes

	return &stats, nil
}
