// Comment HTTP handlers.
//
//   - GET    /videos/{id}/comments  (paginated, newest first)
//   - POST   /videos/{id}/comments
//   - PATCH  /comments/{id}         (owner-scoped)
//   - DELETE /comments/{id}         (owner-scoped, cascades likes)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// CommentService defines comment operations consumed by HTTP handlers.
type CommentService interface {
	// Create appends a comment to a video visible to ownerID.
	Create(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error)
	// ListPage returns a page of a video's comments, newest first.
	ListPage(ctx context.Context, videoID string, page, limit int) ([]domain.Comment, int64, error)
	// Update rewrites the content of a comment owned by ownerID.
	Update(ctx context.Context, ownerID, id, content string) (*domain.Comment, error)
	// Delete removes a comment owned by ownerID together with its likes.
	Delete(ctx context.Context, ownerID, id string) error
}

// CommentRequest is the JSON payload for creating or updating a comment.
type CommentRequest struct {
	Content string `json:"content" binding:"required" example:"Great explanation around 02:30!"`
}

// ListComments godoc
// @ID          listComments
// @Summary     List comments on a video
// @Description Returns a page of comments, newest first, each with its author.
// @Tags        Comments
// @Produce     json
//
// @Param       id     path   string  true   "Video ID (UUID)"  format(uuid)
// @Param       page   query  int     false  "Page number"      minimum(1) default(1)
// @Param       limit  query  int     false  "Items per page"   minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.Response{data=handlers.ListResponse}
// @Failure     404  {object}  handlers.Response  "Video not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /videos/{id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	page, limit := clampPagination(c)
	items, total, err := h.comments.ListPage(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		failService(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, listPayload(items, page, limit, total), "ok")
}

// CreateComment godoc
// @ID          createComment
// @Summary     Comment on a video
// @Description Adds a comment by the current user. Drafts only accept comments from their owner.
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                   true  "Video ID (UUID)"  format(uuid)
// @Param       body  body  handlers.CommentRequest  true  "Comment content"
//
// @Success     201  {object}  handlers.Response{data=domain.Comment}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Video not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /videos/{id}/comments [post]
func (h *Handlers) CreateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	cm, err := h.comments.Create(c.Request.Context(), userID(c), c.Param("id"), req.Content)
	if err != nil {
		failService(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, cm, "comment added")
}

// UpdateComment godoc
// @ID          updateComment
// @Summary     Edit a comment
// @Description Rewrites the content of a comment owned by the current user.
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                   true  "Comment ID (UUID)"  format(uuid)
// @Param       body  body  handlers.CommentRequest  true  "New content"
//
// @Success     200  {object}  handlers.Response{data=domain.Comment}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Comment not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /comments/{id} [patch]
func (h *Handlers) UpdateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	cm, err := h.comments.Update(c.Request.Context(), userID(c), c.Param("id"), req.Content)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, cm, "comment updated")
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Description Removes a comment owned by the current user, together with its likes.
// @Tags        Comments
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Comment ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Comment not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /comments/{id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	if err := h.comments.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}
