// Package services – EngagementService
//
// This file implements the EngagementService, which governs the two
// toggle-shaped relations: likes (on videos, comments, and tweets) and
// channel subscriptions. Toggles validate that the target exists, then
// delegate to the repository's transactional toggle primitives; the resulting
// boolean state is returned so clients can render without a second request.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/repo"
)

// EngagementService implements the use-cases around likes and subscriptions.
type EngagementService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// ToggleLike flips userID's like on the target and returns the resulting
// state. The target must exist; a dangling target yields the per-kind
// not-found error.
func (s *EngagementService) ToggleLike(ctx context.Context, userID string, target domain.LikeTarget) (bool, error) {
	exists, err := repo.LikeTargetExists(ctx, s.DB, target)
	if err != nil {
		return false, err
	}
	if !exists {
		switch target.Kind {
		case domain.LikeTargetVideo:
			return false, ErrVideoNotFound
		case domain.LikeTargetComment:
			return false, ErrCommentNotFound
		default:
			return false, ErrTweetNotFound
		}
	}
	return repo.ToggleLike(ctx, s.DB, userID, target)
}

// IsLiked reports whether userID currently likes the target.
func (s *EngagementService) IsLiked(ctx context.Context, userID string, target domain.LikeTarget) (bool, error) {
	return repo.HasLike(ctx, s.DB, userID, target)
}

// LikedVideosPage returns one page of the videos userID has liked, most
// recently liked first, plus the total count.
func (s *EngagementService) LikedVideosPage(ctx context.Context, userID string, page, limit int) ([]domain.Video, int64, error) {
	page, limit = normalizePage(page, limit)
	return repo.ListLikedVideosPage(ctx, s.DB, userID, (page-1)*limit, limit)
}

// ToggleSubscription flips whether subscriberID follows channelID and
// returns the resulting state. Subscribing to yourself is rejected; the
// channel must exist.
func (s *EngagementService) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if subscriberID == channelID {
		return false, ErrSelfSubscription
	}
	if _, err := repo.GetUser(ctx, s.DB, channelID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return repo.ToggleSubscription(ctx, s.DB, subscriberID, channelID)
}

// SubscribersPage returns one page of the users following channelID.
func (s *EngagementService) SubscribersPage(ctx context.Context, channelID string, page, limit int) ([]domain.User, int64, error) {
	page, limit = normalizePage(page, limit)
	return repo.ListSubscribersPage(ctx, s.DB, channelID, (page-1)*limit, limit)
}

// SubscribedChannelsPage returns one page of the channels subscriberID
// follows.
func (s *EngagementService) SubscribedChannelsPage(ctx context.Context, subscriberID string, page, limit int) ([]domain.User, int64, error) {
	page, limit = normalizePage(page, limit)
	return repo.ListSubscribedChannelsPage(ctx, s.DB, subscriberID, (page-1)*limit, limit)
}
