// Channel dashboard HTTP handlers.
//
//   - GET /dashboard/stats   (channel aggregates)
//   - GET /dashboard/videos  (caller's own videos, drafts included)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/repo"
)

// DashboardService defines the channel-owner operations consumed by HTTP
// handlers.
type DashboardService interface {
	// Stats aggregates totals over the owner's channel.
	Stats(ctx context.Context, ownerID string) (*repo.ChannelStats, error)
	// VideosPage returns a page of the owner's videos, drafts included.
	VideosPage(ctx context.Context, ownerID, sortBy string, desc bool, page, limit int) ([]domain.Video, int64, error)
}

// DashboardStats godoc
// @ID          dashboardStats
// @Summary     Channel statistics
// @Description Returns total videos, accumulated views, subscribers, and likes across the current user's videos.
// @Tags        Dashboard
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.Response{data=repo.ChannelStats}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /dashboard/stats [get]
func (h *Handlers) DashboardStats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, stats, "ok")
}

// DashboardVideos godoc
// @ID          dashboardVideos
// @Summary     Channel videos
// @Description Returns a page of the current user's own videos, unpublished drafts included.
// @Tags        Dashboard
// @Produce     json
// @Security    BearerAuth
//
// @Param       sortBy   query  string  false  "createdAt | views | duration | title"  default(createdAt)
// @Param       sortDir  query  string  false  "asc | desc"                            default(desc)
// @Param       page     query  int     false  "Page number"     minimum(1) default(1)
// @Param       limit    query  int     false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.Response{data=handlers.ListResponse}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /dashboard/videos [get]
func (h *Handlers) DashboardVideos(c *gin.Context) {
	page, limit := clampPagination(c)
	sortBy, desc := videoSort(c)

	items, total, err := h.dashboard.VideosPage(c.Request.Context(), userID(c), sortBy, desc, page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, listPayload(items, page, limit, total), "ok")
}
