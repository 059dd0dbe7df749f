// Like and subscription HTTP handlers.
//
//   - POST /likes/toggle/v/{id}                      (toggle like on a video)
//   - POST /likes/toggle/c/{id}                      (toggle like on a comment)
//   - POST /likes/toggle/t/{id}                      (toggle like on a tweet)
//   - GET  /likes/videos                             (caller's liked videos)
//   - POST /subscriptions/c/{channelId}              (toggle subscription)
//   - GET  /subscriptions/c/{channelId}/subscribers  (channel's subscribers)
//   - GET  /subscriptions/u/me                       (channels the caller follows)
//
// Toggles never fail on state: they flip membership and report the resulting
// state, so retries converge instead of erroring.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// EngagementService defines like and subscription operations consumed by
// HTTP handlers.
type EngagementService interface {
	// ToggleLike flips userID's like on the target and reports the new state.
	ToggleLike(ctx context.Context, userID string, target domain.LikeTarget) (bool, error)
	// LikedVideosPage returns a page of videos userID has liked, most
	// recently liked first.
	LikedVideosPage(ctx context.Context, userID string, page, limit int) ([]domain.Video, int64, error)
	// ToggleSubscription flips subscriberID's subscription to channelID.
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error)
	// SubscribersPage returns a page of a channel's subscribers.
	SubscribersPage(ctx context.Context, channelID string, page, limit int) ([]domain.User, int64, error)
	// SubscribedChannelsPage returns a page of channels the user follows.
	SubscribedChannelsPage(ctx context.Context, subscriberID string, page, limit int) ([]domain.User, int64, error)
}

// LikeStateResponse reports the resulting state of a like toggle.
type LikeStateResponse struct {
	IsLiked bool `json:"isLiked"`
}

// SubscriptionStateResponse reports the resulting state of a subscription
// toggle.
type SubscriptionStateResponse struct {
	IsSubscribed bool `json:"isSubscribed"`
}

// toggleLike factors the shared shape of the three like endpoints.
func (h *Handlers) toggleLike(c *gin.Context, kind domain.LikeTargetKind) {
	liked, err := h.social.ToggleLike(c.Request.Context(), userID(c), domain.LikeTarget{
		Kind: kind,
		ID:   c.Param("id"),
	})
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, LikeStateResponse{IsLiked: liked}, "like toggled")
}

// ToggleVideoLike godoc
// @ID          toggleVideoLike
// @Summary     Toggle a like on a video
// @Description Likes the video, or removes the like when one exists, and reports the resulting state.
// @Tags        Likes
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Video ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.Response{data=handlers.LikeStateResponse}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Video not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /likes/toggle/v/{id} [post]
func (h *Handlers) ToggleVideoLike(c *gin.Context) {
	h.toggleLike(c, domain.LikeTargetVideo)
}

// ToggleCommentLike godoc
// @ID          toggleCommentLike
// @Summary     Toggle a like on a comment
// @Description Likes the comment, or removes the like when one exists, and reports the resulting state.
// @Tags        Likes
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Comment ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.Response{data=handlers.LikeStateResponse}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Comment not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /likes/toggle/c/{id} [post]
func (h *Handlers) ToggleCommentLike(c *gin.Context) {
	h.toggleLike(c, domain.LikeTargetComment)
}

// ToggleTweetLike godoc
// @ID          toggleTweetLike
// @Summary     Toggle a like on a tweet
// @Description Likes the tweet, or removes the like when one exists, and reports the resulting state.
// @Tags        Likes
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Tweet ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.Response{data=handlers.LikeStateResponse}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Tweet not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /likes/toggle/t/{id} [post]
func (h *Handlers) ToggleTweetLike(c *gin.Context) {
	h.toggleLike(c, domain.LikeTargetTweet)
}

// ListLikedVideos godoc
// @ID          listLikedVideos
// @Summary     List liked videos
// @Description Returns a page of the current user's liked videos, most recently liked first.
// @Tags        Likes
// @Produce     json
// @Security    BearerAuth
//
// @Param       page   query  int  false  "Page number"     minimum(1) default(1)
// @Param       limit  query  int  false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.Response{data=handlers.ListResponse}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /likes/videos [get]
func (h *Handlers) ListLikedVideos(c *gin.Context) {
	page, limit := clampPagination(c)
	items, total, err := h.social.LikedVideosPage(c.Request.Context(), userID(c), page, limit)
	if err != nil {
		failService(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, listPayload(items, page, limit, total), "ok")
}

// ToggleSubscription godoc
// @ID          toggleSubscription
// @Summary     Toggle a channel subscription
// @Description Subscribes the current user to the channel, or unsubscribes when already subscribed, and reports the resulting state. Self-subscription is rejected.
// @Tags        Subscriptions
// @Produce     json
// @Security    BearerAuth
//
// @Param       channelId  path  string  true  "Channel (user) ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.Response{data=handlers.SubscriptionStateResponse}
// @Failure     400  {object}  handlers.Response  "Self-subscription"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     404  {object}  handlers.Response  "Channel not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /subscriptions/c/{channelId} [post]
func (h *Handlers) ToggleSubscription(c *gin.Context) {
	subscribed, err := h.social.ToggleSubscription(c.Request.Context(), userID(c), c.Param("channelId"))
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, SubscriptionStateResponse{IsSubscribed: subscribed}, "subscription toggled")
}

// ListSubscribers godoc
// @ID          listSubscribers
// @Summary     List a channel's subscribers
// @Description Returns a page of users subscribed to the channel, newest first.
// @Tags        Subscriptions
// @Produce     json
//
// @Param       channelId  path   string  true   "Channel (user) ID (UUID)"  format(uuid)
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       limit      query  int     false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.Response{data=handlers.ListResponse}
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /subscriptions/c/{channelId}/subscribers [get]
func (h *Handlers) ListSubscribers(c *gin.Context) {
	page, limit := clampPagination(c)
	items, total, err := h.social.SubscribersPage(c.Request.Context(), c.Param("channelId"), page, limit)
	if err != nil {
		failService(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, listPayload(items, page, limit, total), "ok")
}

// ListSubscribedChannels godoc
// @ID          listSubscribedChannels
// @Summary     List followed channels
// @Description Returns a page of channels the current user subscribes to, newest first.
// @Tags        Subscriptions
// @Produce     json
// @Security    BearerAuth
//
// @Param       page   query  int  false  "Page number"     minimum(1) default(1)
// @Param       limit  query  int  false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.Response{data=handlers.ListResponse}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /subscriptions/u/me [get]
func (h *Handlers) ListSubscribedChannels(c *gin.Context) {
	page, limit := clampPagination(c)
	items, total, err := h.social.SubscribedChannelsPage(c.Request.Context(), userID(c), page, limit)
	if err != nil {
		failService(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, listPayload(items, page, limit, total), "ok")
}
