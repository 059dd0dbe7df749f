// Package services – VideoService
//
// This file implements the VideoService, which manages the video lifecycle:
// publishing (with media upload and idempotent retry), fetching with
// deduplicated view counting, partial updates, publish toggling, listing, and
// transactional cascade deletion with external media cleanup. Service-level
// errors (e.g. ErrVideoNotFound) are returned for predictable cases so
// handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/media"
	"github.com/tbourn/go-video-backend/internal/repo"
)

// TitleMaxLen caps video titles by byte length.
const TitleMaxLen = 255

// PublishInput carries the fields of a publish request. Video and Thumbnail
// are both required. Duration is declared by the client (extracted on the
// uploading device); the store does not probe media files.
type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	Video       *Upload
	Thumbnail   *Upload

	// IdempotencyKey, when non-empty, makes retries of the same publish
	// return the already-created video instead of storing a duplicate.
	IdempotencyKey string
}

// VideoUpdate is a partial update; nil fields are left untouched.
type VideoUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *Upload
}

// VideoListInput narrows and orders a listing request.
type VideoListInput struct {
	Query   string
	OwnerID string
	SortBy  string
	Desc    bool
	Page    int
	Limit   int
}

// VideoService implements the use-cases around videos. It is context-aware
// and safe for concurrent use.
type VideoService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Media stores video files and thumbnails.
	Media media.Store
	// ViewWindow is the deduplication window for view counting: one view per
	// (video, viewer) per window.
	ViewWindow time.Duration
	// IdempotencyTTL bounds how long a publish idempotency key is honored.
	IdempotencyTTL time.Duration
}

// Publish uploads the media pair and creates the video row as a draft.
// When in.IdempotencyKey is set and was already used by this owner, the
// previously created video is returned with created=false and nothing is
// stored. Uploads are best-effort deleted if any later step fails.
func (s *VideoService) Publish(ctx context.Context, ownerID string, in PublishInput) (v *domain.Video, created bool, err error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, false, ErrEmptyContent
	}
	if len(title) > TitleMaxLen {
		return nil, false, ErrTooLong
	}
	if in.Video == nil || in.Thumbnail == nil {
		return nil, false, ErrMissingUpload
	}

	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		rec, err := repo.GetIdempotency(ctx, s.DB, ownerID, key, time.Now().UTC())
		if err == nil {
			prev, err := repo.GetVideo(ctx, s.DB, rec.ResourceID)
			if err == nil {
				return prev, false, nil
			}
			// The recorded video is gone (deleted since); fall through and
			// publish fresh under the same key after clearing the record.
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, false, err
		}
	}

	id := uuid.NewString()
	videoAsset, err := s.Media.Upload(ctx, "videos/"+id, in.Video.Reader, in.Video.ContentType)
	if err != nil {
		return nil, false, err
	}
	thumbAsset, err := s.Media.Upload(ctx, "thumbnails/"+id, in.Thumbnail.Reader, in.Thumbnail.ContentType)
	if err != nil {
		s.cleanup(ctx, videoAsset.Key)
		return nil, false, err
	}

	v, err = repo.CreateVideo(ctx, s.DB, &domain.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		VideoURL:     videoAsset.URL,
		VideoKey:     videoAsset.Key,
		ThumbnailURL: thumbAsset.URL,
		ThumbnailKey: thumbAsset.Key,
		Duration:     in.Duration,
	})
	if err != nil {
		s.cleanup(ctx, videoAsset.Key, thumbAsset.Key)
		return nil, false, err
	}

	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		if _, err := repo.CreateIdempotency(ctx, s.DB, ownerID, key, "video", v.ID, http.StatusCreated, s.idempotencyTTL()); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			log.Warn().Err(err).Str("key", key).Msg("idempotency record failed")
		}
	}
	return v, true, nil
}

// Get fetches a video. Drafts are only visible to their owner; everyone else
// gets ErrVideoNotFound. A fetch by a non-owner counts a view, deduplicated
// by viewerKey within the configured window.
func (s *VideoService) Get(ctx context.Context, id, viewerID, viewerKey string) (*domain.Video, error) {
	v, err := repo.GetVideo(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !v.Published && v.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}

	if v.OwnerID != viewerID && viewerKey != "" {
		window := time.Now().UTC().Truncate(s.viewWindow())
		counted, err := repo.CountView(ctx, s.DB, v.ID, viewerKey, window)
		if err != nil {
			log.Warn().Err(err).Str("video", v.ID).Msg("view counting failed")
		} else if counted {
			v.Views++
		}
	}
	return v, nil
}

// Update applies a partial update to a video owned by ownerID. A new
// thumbnail replaces the old object, which is then best-effort deleted.
func (s *VideoService) Update(ctx context.Context, ownerID, id string, in VideoUpdate) (*domain.Video, error) {
	fields := map[string]any{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, ErrEmptyContent
		}
		if len(t) > TitleMaxLen {
			return nil, ErrTooLong
		}
		fields["title"] = t
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}

	var oldThumbKey string
	if in.Thumbnail != nil {
		current, err := repo.GetVideo(ctx, s.DB, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrVideoNotFound
			}
			return nil, err
		}
		oldThumbKey = current.ThumbnailKey

		asset, err := s.Media.Upload(ctx, "thumbnails/"+uuid.NewString(), in.Thumbnail.Reader, in.Thumbnail.ContentType)
		if err != nil {
			return nil, err
		}
		fields["thumbnail_url"] = asset.URL
		fields["thumbnail_key"] = asset.Key
	}
	if len(fields) == 0 {
		return s.owned(ctx, ownerID, id)
	}

	v, err := repo.UpdateVideoOwned(ctx, s.DB, id, ownerID, fields)
	if err != nil {
		if key, ok := fields["thumbnail_key"].(string); ok {
			s.cleanup(ctx, key)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if in.Thumbnail != nil {
		s.cleanup(ctx, oldThumbKey)
	}
	return v, nil
}

// TogglePublish flips the published flag and returns the new state.
func (s *VideoService) TogglePublish(ctx context.Context, ownerID, id string) (bool, error) {
	published, err := repo.TogglePublishOwned(ctx, s.DB, id, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrVideoNotFound
		}
		return false, err
	}
	return published, nil
}

// Delete removes a video owned by ownerID with all its dependents, then
// best-effort deletes the media objects. A failed object delete is logged and
// does not undo the database deletion.
func (s *VideoService) Delete(ctx context.Context, ownerID, id string) error {
	v, err := repo.DeleteVideoCascade(ctx, s.DB, id, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	s.cleanup(ctx, v.VideoKey, v.ThumbnailKey)
	return nil
}

// List returns one page of published videos matching the input, plus the
// total match count. Owner-scoped listings that should include drafts go
// through DashboardService instead.
func (s *VideoService) List(ctx context.Context, in VideoListInput) ([]domain.Video, int64, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	return repo.ListVideosPage(ctx, s.DB,
		repo.VideoFilter{Query: strings.TrimSpace(in.Query), OwnerID: in.OwnerID, PublishedOnly: true},
		repo.VideoOrder(in.SortBy, in.Desc),
		(page-1)*limit, limit)
}

// owned fetches a video and verifies ownership without mutating anything.
func (s *VideoService) owned(ctx context.Context, ownerID, id string) (*domain.Video, error) {
	v, err := repo.GetVideo(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if v.OwnerID != ownerID {
		return nil, ErrVideoNotFound
	}
	return v, nil
}

func (s *VideoService) viewWindow() time.Duration {
	if s.ViewWindow > 0 {
		return s.ViewWindow
	}
	return time.Hour
}

func (s *VideoService) idempotencyTTL() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return 24 * time.Hour
}

func (s *VideoService) cleanup(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.Media.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("media cleanup failed")
		}
	}
}

// normalizePage applies the pagination defaults shared by every listing
// service: page >= 1 and a positive limit defaulting to 10.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
