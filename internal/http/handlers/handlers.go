// Handler wiring and cross-cutting helpers shared by all endpoint files.
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses wrapped in the standard envelope.
package handlers

import (
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/services"
	"github.com/tbourn/go-video-backend/internal/utils"
)

// Handlers groups the HTTP endpoints for accounts, videos, comments, tweets,
// playlists, likes, subscriptions, and the channel dashboard. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	accounts  AccountService
	sessions  SessionManager
	videos    VideoService
	comments  CommentService
	tweets    TweetService
	playlists PlaylistService
	social    EngagementService
	dashboard DashboardService
}

// New constructs a Handlers instance bound to the given services.
func New(
	accounts AccountService,
	sessions SessionManager,
	videos VideoService,
	comments CommentService,
	tweets TweetService,
	playlists PlaylistService,
	social EngagementService,
	dashboard DashboardService,
) *Handlers {
	return &Handlers{
		accounts:  accounts,
		sessions:  sessions,
		videos:    videos,
		comments:  comments,
		tweets:    tweets,
		playlists: playlists,
		social:    social,
		dashboard: dashboard,
	}
}

// userID extracts the authenticated user id from Gin context (set by the auth
// middleware). Empty means anonymous; protected routes never reach handlers
// without it.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// viewerKey identifies the caller for view deduplication: the user id when
// authenticated, otherwise the client IP.
func viewerKey(c *gin.Context) string {
	if uid := userID(c); uid != "" {
		return uid
	}
	return c.ClientIP()
}

//
// Pagination
//

// ListResponse wraps a page of items with its pagination metadata. Every
// paginated endpoint returns this shape inside the standard envelope.
type ListResponse struct {
	Items      any   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
}

// clampPagination parses and bounds the page and limit query params to sane
// defaults and limits. Non-numeric values fall back to the defaults.
func clampPagination(c *gin.Context) (page, limit int) {
	const (
		defaultPage  = 1
		defaultLimit = 10
		maxLimit     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	limit = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return
}

// listPayload assembles the pagination metadata around a page of items.
func listPayload(items any, page, limit int, total int64) ListResponse {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return ListResponse{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

//
// Multipart uploads
//

// formUpload opens the named multipart file and adapts it to a service
// Upload. The returned closer must be called once the service has consumed
// the reader. A missing file yields (nil, no-op, nil) so optional files can
// share this helper.
func formUpload(c *gin.Context, field string) (*services.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &services.Upload{
		Reader:      f,
		ContentType: uploadContentType(fh),
	}, func() { _ = f.Close() }, nil
}

// uploadContentType picks the declared part content type, defaulting to
// application/octet-stream when the client sent none.
func uploadContentType(fh *multipart.FileHeader) string {
	if ct := strings.TrimSpace(fh.Header.Get("Content-Type")); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// optString returns a pointer to the form value when the field was present,
// nil when it was omitted. Distinguishes "clear this field" from "leave it".
func optString(c *gin.Context, field string) *string {
	if v, ok := c.GetPostForm(field); ok {
		v = strings.TrimSpace(v)
		return &v
	}
	return nil
}
