package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/services"
)

func TestToggleLike_AllTargets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got domain.LikeTarget
	soc := stubSocial{toggleLike: func(_ context.Context, _ string, target domain.LikeTarget) (bool, error) {
		got = target
		return true, nil
	}}
	h := build(deps{social: soc})
	r := gin.New()
	r.POST("/likes/toggle/v/:id", asUser("u1"), h.ToggleVideoLike)
	r.POST("/likes/toggle/c/:id", asUser("u1"), h.ToggleCommentLike)
	r.POST("/likes/toggle/t/:id", asUser("u1"), h.ToggleTweetLike)

	cases := []struct {
		path string
		kind domain.LikeTargetKind
	}{
		{"/likes/toggle/v/v1", domain.LikeTargetVideo},
		{"/likes/toggle/c/c1", domain.LikeTargetComment},
		{"/likes/toggle/t/t1", domain.LikeTargetTweet},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tc.path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s -> %d", tc.path, w.Code)
		}
		if got.Kind != tc.kind {
			t.Fatalf("%s kind = %q", tc.path, got.Kind)
		}
		var body struct {
			Data LikeStateResponse `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if !body.Data.IsLiked {
			t.Fatalf("%s isLiked = false", tc.path)
		}
	}
}

func TestToggleLike_UnlikeAndMissingTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// second toggle reports the removed state
	{
		soc := stubSocial{toggleLike: func(context.Context, string, domain.LikeTarget) (bool, error) {
			return false, nil
		}}
		h := build(deps{social: soc})
		r := gin.New()
		r.POST("/likes/toggle/v/:id", asUser("u1"), h.ToggleVideoLike)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/likes/toggle/v/v1", nil))
		var body struct {
			Data LikeStateResponse `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if body.Data.IsLiked {
			t.Fatal("expected isLiked=false after unlike")
		}
	}

	// missing target -> 404
	{
		soc := stubSocial{toggleLike: func(context.Context, string, domain.LikeTarget) (bool, error) {
			return false, services.ErrVideoNotFound
		}}
		h := build(deps{social: soc})
		r := gin.New()
		r.POST("/likes/toggle/v/:id", asUser("u1"), h.ToggleVideoLike)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/likes/toggle/v/ghost", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("missing target -> %d", w.Code)
		}
	}
}

func TestListLikedVideos(t *testing.T) {
	gin.SetMode(gin.TestMode)

	soc := stubSocial{likedPage: func(_ context.Context, uid string, page, limit int) ([]domain.Video, int64, error) {
		if uid != "u1" {
			t.Fatalf("uid = %q", uid)
		}
		return []domain.Video{{ID: "v1"}}, 1, nil
	}}
	h := build(deps{social: soc})
	r := gin.New()
	r.GET("/likes/videos", asUser("u1"), h.ListLikedVideos)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/likes/videos", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("liked -> %d", w.Code)
	}
	var body struct {
		Data ListResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Data.Total != 1 {
		t.Fatalf("total = %d", body.Data.Total)
	}
}

func TestToggleSubscription_SelfRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// subscribing -> 200 with state
	{
		var got struct{ sub, ch string }
		soc := stubSocial{toggleSub: func(_ context.Context, sub, ch string) (bool, error) {
			got.sub, got.ch = sub, ch
			return true, nil
		}}
		h := build(deps{social: soc})
		r := gin.New()
		r.POST("/subscriptions/c/:channelId", asUser("u1"), h.ToggleSubscription)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/subscriptions/c/u2", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("subscribe -> %d", w.Code)
		}
		if got.sub != "u1" || got.ch != "u2" {
			t.Fatalf("args: %+v", got)
		}
		var body struct {
			Data SubscriptionStateResponse `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if !body.Data.IsSubscribed {
			t.Fatal("expected isSubscribed=true")
		}
	}

	// own channel -> 400
	{
		soc := stubSocial{toggleSub: func(context.Context, string, string) (bool, error) {
			return false, services.ErrSelfSubscription
		}}
		h := build(deps{social: soc})
		r := gin.New()
		r.POST("/subscriptions/c/:channelId", asUser("u1"), h.ToggleSubscription)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/subscriptions/c/u1", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("self -> %d", w.Code)
		}
	}

	// unknown channel -> 404
	{
		soc := stubSocial{toggleSub: func(context.Context, string, string) (bool, error) {
			return false, services.ErrUserNotFound
		}}
		h := build(deps{social: soc})
		r := gin.New()
		r.POST("/subscriptions/c/:channelId", asUser("u1"), h.ToggleSubscription)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/subscriptions/c/ghost", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("unknown channel -> %d", w.Code)
		}
	}
}

func TestSubscriptionLists(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// subscribers of a channel (public)
	{
		soc := stubSocial{subsPage: func(_ context.Context, ch string, page, limit int) ([]domain.User, int64, error) {
			if ch != "u9" {
				t.Fatalf("channel = %q", ch)
			}
			return []domain.User{{ID: "f1"}, {ID: "f2"}}, 2, nil
		}}
		h := build(deps{social: soc})
		r := gin.New()
		r.GET("/subscriptions/c/:channelId/subscribers", h.ListSubscribers)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscriptions/c/u9/subscribers", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("subscribers -> %d", w.Code)
		}
	}

	// channels the caller follows
	{
		soc := stubSocial{chansPage: func(_ context.Context, sub string, page, limit int) ([]domain.User, int64, error) {
			if sub != "u1" {
				t.Fatalf("subscriber = %q", sub)
			}
			return []domain.User{{ID: "u2"}}, 1, nil
		}}
		h := build(deps{social: soc})
		r := gin.New()
		r.GET("/subscriptions/u/me", asUser("u1"), h.ListSubscribedChannels)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscriptions/u/me", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("followed -> %d", w.Code)
		}
	}
}
