// Package services – TweetService
//
// This file implements the TweetService, which governs short-form text posts:
// creation, per-user paginated listing, and owner-scoped edit/delete.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/repo"
)

// TweetMaxLen caps tweet content by byte length.
const TweetMaxLen = 500

// TweetService implements the use-cases around tweets.
type TweetService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create adds a tweet by ownerID.
func (s *TweetService) Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > TweetMaxLen {
		return nil, ErrTooLong
	}
	return repo.CreateTweet(ctx, s.DB, &domain.Tweet{OwnerID: ownerID, Content: content})
}

// ListPage returns one page of a user's tweets, newest first, plus the total
// count. An unknown user yields ErrUserNotFound.
func (s *TweetService) ListPage(ctx context.Context, userID string, page, limit int) ([]domain.Tweet, int64, error) {
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	return repo.ListTweetsPage(ctx, s.DB, userID, (page-1)*limit, limit)
}

// Update rewrites a tweet owned by ownerID, or ErrTweetNotFound.
func (s *TweetService) Update(ctx context.Context, ownerID, id, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > TweetMaxLen {
		return nil, ErrTooLong
	}
	tw, err := repo.UpdateTweetOwned(ctx, s.DB, id, ownerID, content)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return tw, nil
}

// Delete removes a tweet owned by ownerID together with its likes, or
// ErrTweetNotFound.
func (s *TweetService) Delete(ctx context.Context, ownerID, id string) error {
	if err := repo.DeleteTweetOwned(ctx, s.DB, id, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTweetNotFound
		}
		return err
	}
	return nil
}
