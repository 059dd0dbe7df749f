// Playlist HTTP handlers.
//
//   - POST   /playlists
//   - GET    /users/{id}/playlists              (paginated)
//   - GET    /playlists/{id}                    (members joined, in order)
//   - PATCH  /playlists/{id}                    (owner-scoped)
//   - DELETE /playlists/{id}                    (owner-scoped)
//   - POST   /playlists/{id}/videos/{videoId}   (append member)
//   - DELETE /playlists/{id}/videos/{videoId}   (remove member)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/services"
)

// PlaylistService defines playlist operations consumed by HTTP handlers.
type PlaylistService interface {
	// Create starts a new playlist for ownerID.
	Create(ctx context.Context, ownerID, name, description string) (*domain.Playlist, error)
	// Get returns a playlist with its member videos in insertion order.
	Get(ctx context.Context, id string) (*services.PlaylistWithVideos, error)
	// ListPage returns a page of a user's playlists.
	ListPage(ctx context.Context, ownerID string, page, limit int) ([]domain.Playlist, int64, error)
	// Update patches name and/or description; nil fields are untouched.
	Update(ctx context.Context, ownerID, id string, name, description *string) (*domain.Playlist, error)
	// Delete removes a playlist owned by ownerID and its memberships.
	Delete(ctx context.Context, ownerID, id string) error
	// AddVideo appends a video to a playlist owned by ownerID.
	AddVideo(ctx context.Context, ownerID, playlistID, videoID string) (*domain.PlaylistVideo, error)
	// RemoveVideo detaches a video from a playlist owned by ownerID.
	RemoveVideo(ctx context.Context, ownerID, playlistID, videoID string) error
}

// CreatePlaylistRequest is the JSON payload for creating a playlist.
type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required" example:"Go deep dives"`
	Description string `json:"description" example:"Longer-form internals talks"`
}

// UpdatePlaylistRequest patches a playlist; omitted fields are left untouched.
type UpdatePlaylistRequest struct {
	Name        *string `json:"name" example:"Go deep dives"`
	Description *string `json:"description" example:"Longer-form internals talks"`
}

// CreatePlaylist godoc
// @ID          createPlaylist
// @Summary     Create a playlist
// @Description Creates an empty playlist for the current user.
// @Tags        Playlists
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreatePlaylistRequest  true  "Playlist payload"
//
// @Success     201  {object}  handlers.Response{data=domain.Playlist}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /playlists [post]
func (h *Handlers) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}

	pl, err := h.playlists.Create(c.Request.Context(), userID(c), req.Name, req.Description)
	if err != nil {
		failService(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, pl, "playlist created")
}

// ListUserPlaylists godoc
// @ID          listUserPlaylists
// @Summary     List a user's playlists
// @Description Returns a page of the user's playlists, newest first.
// @Tags        Playlists
// @Produce     json
//
// @Param       id     path   string  true   "User ID (UUID)"  format(uuid)
// @Param       page   query  int     false  "Page number"     minimum(1) default(1)
// @Param       limit  query  int     false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.Response{data=handlers.ListResponse}
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/{id}/playlists [get]
func (h *Handlers) ListUserPlaylists(c *gin.Context) {
	page, limit := clampPagination(c)
	items, total, err := h.playlists.ListPage(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		failService(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, listPayload(items, page, limit, total), "ok")
}

// GetPlaylist godoc
// @ID          getPlaylist
// @Summary     Get a playlist
// @Description Returns the playlist and its member videos in insertion order, each with its owner.
// @Tags        Playlists
// @Produce     json
//
// @Param       id  path  string  true  "Playlist ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.Response{data=services.PlaylistWithVideos}
// @Failure     404  {object}  handlers.Response  "Playlist not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /playlists/{id} [get]
func (h *Handlers) GetPlaylist(c *gin.Context) {
	pl, err := h.playlists.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, pl, "ok")
}

// UpdatePlaylist godoc
// @ID          updatePlaylist
// @Summary     Update a playlist
// @Description Patches name and/or description of a playlist owned by the current user.
// @Tags        Playlists
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                          true  "Playlist ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdatePlaylistRequest  true  "Fields to update"
//
// @Success     200  {object}  handlers.Response{data=domain.Playlist}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Playlist not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /playlists/{id} [patch]
func (h *Handlers) UpdatePlaylist(c *gin.Context) {
	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.Name == nil && req.Description == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "nothing to update")
		return
	}

	pl, err := h.playlists.Update(c.Request.Context(), userID(c), c.Param("id"), req.Name, req.Description)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, pl, "playlist updated")
}

// DeletePlaylist godoc
// @ID          deletePlaylist
// @Summary     Delete a playlist
// @Description Removes a playlist owned by the current user and all of its memberships. Member videos are untouched.
// @Tags        Playlists
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Playlist ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Playlist not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /playlists/{id} [delete]
func (h *Handlers) DeletePlaylist(c *gin.Context) {
	if err := h.playlists.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}

// AddPlaylistVideo godoc
// @ID          addPlaylistVideo
// @Summary     Add a video to a playlist
// @Description Appends the video at the end of a playlist owned by the current user. Adding the same video twice is a conflict.
// @Tags        Playlists
// @Produce     json
// @Security    BearerAuth
//
// @Param       id       path  string  true  "Playlist ID (UUID)"  format(uuid)
// @Param       videoId  path  string  true  "Video ID (UUID)"     format(uuid)
//
// @Success     201  {object}  handlers.Response{data=domain.PlaylistVideo}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Playlist or video not found"
// @Failure     409  {object}  handlers.Response  "Video already in playlist"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /playlists/{id}/videos/{videoId} [post]
func (h *Handlers) AddPlaylistVideo(c *gin.Context) {
	pv, err := h.playlists.AddVideo(c.Request.Context(), userID(c), c.Param("id"), c.Param("videoId"))
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusCreated, pv, "video added to playlist")
}

// RemovePlaylistVideo godoc
// @ID          removePlaylistVideo
// @Summary     Remove a video from a playlist
// @Description Detaches the video from a playlist owned by the current user. Removing an absent member is a 404.
// @Tags        Playlists
// @Produce     json
// @Security    BearerAuth
//
// @Param       id       path  string  true  "Playlist ID (UUID)"  format(uuid)
// @Param       videoId  path  string  true  "Video ID (UUID)"     format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Playlist or member not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /playlists/{id}/videos/{videoId} [delete]
func (h *Handlers) RemovePlaylistVideo(c *gin.Context) {
	if err := h.playlists.RemoveVideo(c.Request.Context(), userID(c), c.Param("id"), c.Param("videoId")); err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}
