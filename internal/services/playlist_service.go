// Package services – PlaylistService
//
// This file implements the PlaylistService, which manages named ordered
// collections of videos: CRUD on the playlist itself and add/remove of
// member videos, all owner-scoped.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/repo"
)

// PlaylistNameMaxLen caps playlist names by byte length.
const PlaylistNameMaxLen = 255

// PlaylistWithVideos is a playlist expanded with its member videos in
// insertion order.
type PlaylistWithVideos struct {
	*domain.Playlist
	Videos []domain.PlaylistVideo `json:"videos"`
}

// PlaylistService implements the use-cases around playlists.
type PlaylistService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create adds an empty playlist owned by ownerID.
func (s *PlaylistService) Create(ctx context.Context, ownerID, name, description string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyContent
	}
	if len(name) > PlaylistNameMaxLen {
		return nil, ErrTooLong
	}
	return repo.CreatePlaylist(ctx, s.DB, &domain.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
	})
}

// Get returns a playlist with its member videos, or ErrPlaylistNotFound.
// Playlists are publicly readable; only mutations are owner-scoped.
func (s *PlaylistService) Get(ctx context.Context, id string) (*PlaylistWithVideos, error) {
	p, err := repo.GetPlaylist(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	videos, err := repo.ListPlaylistVideos(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	return &PlaylistWithVideos{Playlist: p, Videos: videos}, nil
}

// ListPage returns one page of a user's playlists, newest first, plus the
// total count.
func (s *PlaylistService) ListPage(ctx context.Context, ownerID string, page, limit int) ([]domain.Playlist, int64, error) {
	page, limit = normalizePage(page, limit)
	return repo.ListPlaylistsPage(ctx, s.DB, ownerID, (page-1)*limit, limit)
}

// Update applies a partial update to a playlist owned by ownerID; nil fields
// are left untouched.
func (s *PlaylistService) Update(ctx context.Context, ownerID, id string, name, description *string) (*domain.Playlist, error) {
	fields := map[string]any{}
	if name != nil {
		v := strings.TrimSpace(*name)
		if v == "" {
			return nil, ErrEmptyContent
		}
		if len(v) > PlaylistNameMaxLen {
			return nil, ErrTooLong
		}
		fields["name"] = v
	}
	if description != nil {
		fields["description"] = strings.TrimSpace(*description)
	}
	if len(fields) == 0 {
		p, err := repo.GetPlaylist(ctx, s.DB, id)
		if err != nil || p.OwnerID != ownerID {
			return nil, ErrPlaylistNotFound
		}
		return p, nil
	}

	p, err := repo.UpdatePlaylistOwned(ctx, s.DB, id, ownerID, fields)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a playlist owned by ownerID and its membership rows.
func (s *PlaylistService) Delete(ctx context.Context, ownerID, id string) error {
	if err := repo.DeletePlaylistOwned(ctx, s.DB, id, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPlaylistNotFound
		}
		return err
	}
	return nil
}

// AddVideo appends videoID to a playlist owned by ownerID. The video must
// exist; re-adding a member yields ErrAlreadyInPlaylist.
func (s *PlaylistService) AddVideo(ctx context.Context, ownerID, playlistID, videoID string) (*domain.PlaylistVideo, error) {
	if _, err := repo.GetVideo(ctx, s.DB, videoID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	pv, err := repo.AddPlaylistVideo(ctx, s.DB, playlistID, ownerID, videoID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrPlaylistNotFound
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrAlreadyInPlaylist
		}
		return nil, err
	}
	return pv, nil
}

// RemoveVideo drops videoID from a playlist owned by ownerID. Removing a
// non-member yields ErrNotInPlaylist; a missing or non-owned playlist is
// indistinguishable from that.
func (s *PlaylistService) RemoveVideo(ctx context.Context, ownerID, playlistID, videoID string) error {
	if err := repo.RemovePlaylistVideo(ctx, s.DB, playlistID, ownerID, videoID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotInPlaylist
		}
		return err
	}
	return nil
}
