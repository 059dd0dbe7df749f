// Package services – DashboardService
//
// This file implements the DashboardService: the channel owner's private
// view, exposing aggregate statistics and a listing of their videos that
// includes unpublished drafts.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/repo"
)

// DashboardService implements the channel-owner dashboard use-cases.
type DashboardService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Stats aggregates video count, total views, subscribers, and received likes
// for ownerID's channel.
func (s *DashboardService) Stats(ctx context.Context, ownerID string) (*repo.ChannelStats, error) {
	return repo.GetChannelStats(ctx, s.DB, ownerID)
}

// VideosPage returns one page of ownerID's videos, drafts included, ordered
// by the given sort key.
func (s *DashboardService) VideosPage(ctx context.Context, ownerID, sortBy string, desc bool, page, limit int) ([]domain.Video, int64, error) {
	page, limit = normalizePage(page, limit)
	return repo.ListVideosPage(ctx, s.DB,
		repo.VideoFilter{OwnerID: ownerID},
		repo.VideoOrder(sortBy, desc),
		(page-1)*limit, limit)
}
