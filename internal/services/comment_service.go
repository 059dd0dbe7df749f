// Package services – CommentService
//
// This file implements the CommentService, which governs comments on videos:
// creation against an existing, visible video, paginated listing, and
// owner-scoped edit/delete.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/repo"
)

// CommentMaxLen caps comment content by byte length.
const CommentMaxLen = 2000

// CommentService implements the use-cases around video comments.
type CommentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create adds a comment by ownerID on videoID. The video must exist and be
// visible to the commenter (published, or a draft they own).
func (s *CommentService) Create(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > CommentMaxLen {
		return nil, ErrTooLong
	}

	v, err := repo.GetVideo(ctx, s.DB, videoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !v.Published && v.OwnerID != ownerID {
		return nil, ErrVideoNotFound
	}

	return repo.CreateComment(ctx, s.DB, &domain.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	})
}

// ListPage returns one page of a video's comments, newest first, plus the
// total count. A missing video yields ErrVideoNotFound rather than an empty
// page.
func (s *CommentService) ListPage(ctx context.Context, videoID string, page, limit int) ([]domain.Comment, int64, error) {
	if _, err := repo.GetVideo(ctx, s.DB, videoID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, ErrVideoNotFound
		}
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	return repo.ListCommentsPage(ctx, s.DB, videoID, (page-1)*limit, limit)
}

// Update rewrites a comment owned by ownerID, or ErrCommentNotFound.
func (s *CommentService) Update(ctx context.Context, ownerID, id, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > CommentMaxLen {
		return nil, ErrTooLong
	}
	c, err := repo.UpdateCommentOwned(ctx, s.DB, id, ownerID, content)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a comment owned by ownerID together with its likes, or
// ErrCommentNotFound.
func (s *CommentService) Delete(ctx context.Context, ownerID, id string) error {
	if err := repo.DeleteCommentOwned(ctx, s.DB, id, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}
