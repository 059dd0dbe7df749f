// Tweet HTTP handlers.
//
//   - POST   /tweets
//   - GET    /users/{id}/tweets  (paginated, newest first)
//   - PATCH  /tweets/{id}        (owner-scoped)
//   - DELETE /tweets/{id}        (owner-scoped, cascades likes)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// TweetService defines tweet operations consumed by HTTP handlers.
type TweetService interface {
	// Create posts a tweet for ownerID.
	Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error)
	// ListPage returns a page of a user's tweets, newest first.
	ListPage(ctx context.Context, userID string, page, limit int) ([]domain.Tweet, int64, error)
	// Update rewrites the content of a tweet owned by ownerID.
	Update(ctx context.Context, ownerID, id, content string) (*domain.Tweet, error)
	// Delete removes a tweet owned by ownerID together with its likes.
	Delete(ctx context.Context, ownerID, id string) error
}

// TweetRequest is the JSON payload for creating or updating a tweet.
type TweetRequest struct {
	Content string `json:"content" binding:"required" example:"New upload drops tomorrow"`
}

// CreateTweet godoc
// @ID          createTweet
// @Summary     Post a tweet
// @Description Publishes a short text post on the current user's channel.
// @Tags        Tweets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.TweetRequest  true  "Tweet content"
//
// @Success     201  {object}  handlers.Response{data=domain.Tweet}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /tweets [post]
func (h *Handlers) CreateTweet(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	tw, err := h.tweets.Create(c.Request.Context(), userID(c), req.Content)
	if err != nil {
		failService(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, tw, "tweet posted")
}

// ListUserTweets godoc
// @ID          listUserTweets
// @Summary     List a user's tweets
// @Description Returns a page of the user's tweets, newest first.
// @Tags        Tweets
// @Produce     json
//
// @Param       id     path   string  true   "User ID (UUID)"  format(uuid)
// @Param       page   query  int     false  "Page number"     minimum(1) default(1)
// @Param       limit  query  int     false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.Response{data=handlers.ListResponse}
// @Failure     404  {object}  handlers.Response  "User not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/{id}/tweets [get]
func (h *Handlers) ListUserTweets(c *gin.Context) {
	page, limit := clampPagination(c)
	items, total, err := h.tweets.ListPage(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		failService(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, listPayload(items, page, limit, total), "ok")
}

// UpdateTweet godoc
// @ID          updateTweet
// @Summary     Edit a tweet
// @Description Rewrites the content of a tweet owned by the current user.
// @Tags        Tweets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                 true  "Tweet ID (UUID)"  format(uuid)
// @Param       body  body  handlers.TweetRequest  true  "New content"
//
// @Success     200  {object}  handlers.Response{data=domain.Tweet}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Tweet not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /tweets/{id} [patch]
func (h *Handlers) UpdateTweet(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	tw, err := h.tweets.Update(c.Request.Context(), userID(c), c.Param("id"), req.Content)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, tw, "tweet updated")
}

// DeleteTweet godoc
// @ID          deleteTweet
// @Summary     Delete a tweet
// @Description Removes a tweet owned by the current user, together with its likes.
// @Tags        Tweets
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Tweet ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Tweet not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /tweets/{id} [delete]
func (h *Handlers) DeleteTweet(c *gin.Context) {
	if err := h.tweets.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}
