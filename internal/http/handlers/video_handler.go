// Video HTTP handlers.
//
// This file exposes REST endpoints for video resources:
//   - POST   /videos                      (publish: multipart video + thumbnail)
//   - GET    /videos                      (public catalog, filtered + paginated)
//   - GET    /videos/{id}                 (watch; counts a view for non-owners)
//   - PATCH  /videos/{id}                 (owner-scoped metadata/thumbnail update)
//   - DELETE /videos/{id}                 (owner-scoped cascade delete)
//   - PATCH  /videos/{id}/toggle-publish  (owner-scoped draft flip)
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/http/middleware"
	"github.com/tbourn/go-video-backend/internal/services"
)

// VideoService defines the video lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type VideoService interface {
	// Publish stores the media pair and creates a draft video. The created
	// flag is false when an idempotency key replay returned an earlier video.
	Publish(ctx context.Context, ownerID string, in services.PublishInput) (*domain.Video, bool, error)
	// Get returns one video, counting a view for non-owner viewers.
	Get(ctx context.Context, id, viewerID, viewerKey string) (*domain.Video, error)
	// Update patches metadata and optionally swaps the thumbnail.
	Update(ctx context.Context, ownerID, id string, in services.VideoUpdate) (*domain.Video, error)
	// TogglePublish flips the published flag and reports the new state.
	TogglePublish(ctx context.Context, ownerID, id string) (bool, error)
	// Delete removes the video, its engagement rows, and its stored media.
	Delete(ctx context.Context, ownerID, id string) error
	// List returns a filtered, ordered page of published videos.
	List(ctx context.Context, in services.VideoListInput) ([]domain.Video, int64, error)
}

// ToggleStateResponse reports the resulting state of a publish toggle.
type ToggleStateResponse struct {
	Published bool `json:"published"`
}

// videoSort parses sortBy/sortDir query params. Unknown columns fall back to
// createdAt desc inside the repo allow-list.
func videoSort(c *gin.Context) (sortBy string, desc bool) {
	sortBy = strings.TrimSpace(c.Query("sortBy"))
	desc = !strings.EqualFold(c.Query("sortDir"), "asc")
	return
}

// PublishVideo godoc
// @ID          publishVideo
// @Summary     Publish a video
// @Description Uploads the video file and thumbnail, then creates the video as an unpublished draft. Retries carrying the same Idempotency-Key return the original video instead of storing a duplicate.
// @Tags        Videos
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       Idempotency-Key  header    string  false  "Safe-retry key"
// @Param       title            formData  string  true   "Title (1-255 chars)"
// @Param       description      formData  string  false  "Description"
// @Param       duration         formData  number  false  "Duration in seconds (client-declared)"
// @Param       video            formData  file    true   "Video file"
// @Param       thumbnail        formData  file    true   "Thumbnail image"
//
// @Success     201  {object}  handlers.Response{data=domain.Video}
// @Success     200  {object}  handlers.Response{data=domain.Video}  "Idempotent replay"
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /videos [post]
func (h *Handlers) PublishVideo(c *gin.Context) {
	video, closeVideo, err := formUpload(c, "video")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable video upload")
		return
	}
	defer closeVideo()

	thumb, closeThumb, err := formUpload(c, "thumbnail")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable thumbnail upload")
		return
	}
	defer closeThumb()

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)
	if duration < 0 {
		duration = 0
	}
	key, _ := middleware.GetIdempotencyKey(c)

	in := services.PublishInput{
		Title:          c.PostForm("title"),
		Description:    strings.TrimSpace(c.PostForm("description")),
		Duration:       duration,
		Video:          video,
		Thumbnail:      thumb,
		IdempotencyKey: key,
	}

	v, created, err := h.videos.Publish(c.Request.Context(), userID(c), in)
	if err != nil {
		failService(c, err, ErrCodeUploadFailed)
		return
	}
	if created {
		ok(c, http.StatusCreated, v, "video published")
		return
	}
	ok(c, http.StatusOK, v, "video already published")
}

// ListVideos godoc
// @ID          listVideos
// @Summary     List published videos
// @Description Returns a page of the public catalog. Supports free-text search over title and description, owner filtering, and sorting.
// @Tags        Videos
// @Produce     json
//
// @Param       query    query  string  false  "Match against title/description"
// @Param       ownerId  query  string  false  "Only videos of this channel"
// @Param       sortBy   query  string  false  "createdAt | views | duration | title"  default(createdAt)
// @Param       sortDir  query  string  false  "asc | desc"                            default(desc)
// @Param       page     query  int     false  "Page number"     minimum(1) default(1)
// @Param       limit    query  int     false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.Response{data=handlers.ListResponse}
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /videos [get]
func (h *Handlers) ListVideos(c *gin.Context) {
	page, limit := clampPagination(c)
	sortBy, desc := videoSort(c)

	items, total, err := h.videos.List(c.Request.Context(), services.VideoListInput{
		Query:   strings.TrimSpace(c.Query("query")),
		OwnerID: strings.TrimSpace(c.Query("ownerId")),
		SortBy:  sortBy,
		Desc:    desc,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, listPayload(items, page, limit, total), "ok")
}

// GetVideo godoc
// @ID          getVideo
// @Summary     Watch a video
// @Description Returns one video with its owner. Drafts are only visible to their owner. For other viewers a view is counted at most once per viewer per window.
// @Tags        Videos
// @Produce     json
//
// @Param       id  path  string  true  "Video ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.Response{data=domain.Video}
// @Failure     404  {object}  handlers.Response  "Video not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /videos/{id} [get]
func (h *Handlers) GetVideo(c *gin.Context) {
	v, err := h.videos.Get(c.Request.Context(), c.Param("id"), userID(c), viewerKey(c))
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, v, "ok")
}

// UpdateVideo godoc
// @ID          updateVideo
// @Summary     Update a video
// @Description Patches title and/or description; a multipart request may also replace the thumbnail. Only the owner can update; omitted fields are left untouched.
// @Tags        Videos
// @Accept      json
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       id           path      string  true   "Video ID (UUID)"  format(uuid)
// @Param       title        formData  string  false  "New title"
// @Param       description  formData  string  false  "New description"
// @Param       thumbnail    formData  file    false  "Replacement thumbnail"
//
// @Success     200  {object}  handlers.Response{data=domain.Video}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Video not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /videos/{id} [patch]
func (h *Handlers) UpdateVideo(c *gin.Context) {
	var in services.VideoUpdate

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		thumb, closeThumb, err := formUpload(c, "thumbnail")
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable thumbnail upload")
			return
		}
		defer closeThumb()
		in.Thumbnail = thumb
		in.Title = optString(c, "title")
		in.Description = optString(c, "description")
	} else {
		var req struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
			return
		}
		in.Title = req.Title
		in.Description = req.Description
	}

	if in.Title == nil && in.Description == nil && in.Thumbnail == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "nothing to update")
		return
	}

	v, err := h.videos.Update(c.Request.Context(), userID(c), c.Param("id"), in)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, v, "video updated")
}

// DeleteVideo godoc
// @ID          deleteVideo
// @Summary     Delete a video
// @Description Removes the video, its likes, comments (with their likes), playlist memberships, and view markers, then deletes the stored media (best effort). Owner only.
// @Tags        Videos
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Video ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Video not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /videos/{id} [delete]
func (h *Handlers) DeleteVideo(c *gin.Context) {
	if err := h.videos.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}

// TogglePublish godoc
// @ID          toggleVideoPublish
// @Summary     Toggle the published flag
// @Description Flips a video between draft and published, returning the new state. Owner only.
// @Tags        Videos
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Video ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.Response{data=handlers.ToggleStateResponse}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Video not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /videos/{id}/toggle-publish [patch]
func (h *Handlers) TogglePublish(c *gin.Context) {
	published, err := h.videos.TogglePublish(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, ToggleStateResponse{Published: published}, "publish state toggled")
}
