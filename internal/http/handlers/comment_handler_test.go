package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/services"
)

func TestCreateComment_BadJSON_Success_DraftHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// missing content -> 400
	{
		h := build(deps{})
		r := gin.New()
		r.POST("/videos/:id/comments", asUser("u1"), h.CreateComment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/videos/v1/comments",
			bytes.NewBufferString(`{}`)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("missing content -> %d", w.Code)
		}
	}

	// success -> 201, args threaded
	{
		var got struct{ owner, video, content string }
		cms := stubComments{create: func(_ context.Context, owner, videoID, content string) (*domain.Comment, error) {
			got.owner, got.video, got.content = owner, videoID, content
			return &domain.Comment{ID: "c1", VideoID: videoID, OwnerID: owner, Content: content}, nil
		}}
		h := build(deps{comments: cms})
		r := gin.New()
		r.POST("/videos/:id/comments", asUser("u1"), h.CreateComment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/videos/v1/comments",
			bytes.NewBufferString(`{"content":"nice"}`)))
		if w.Code != http.StatusCreated {
			t.Fatalf("create -> %d body=%s", w.Code, w.Body.String())
		}
		if got.owner != "u1" || got.video != "v1" || got.content != "nice" {
			t.Fatalf("args: %+v", got)
		}
	}

	// someone else's draft -> 404
	{
		cms := stubComments{create: func(context.Context, string, string, string) (*domain.Comment, error) {
			return nil, services.ErrVideoNotFound
		}}
		h := build(deps{comments: cms})
		r := gin.New()
		r.POST("/videos/:id/comments", asUser("u2"), h.CreateComment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/videos/draft/comments",
			bytes.NewBufferString(`{"content":"hi"}`)))
		if w.Code != http.StatusNotFound {
			t.Fatalf("draft -> %d", w.Code)
		}
	}
}

func TestListComments_Paginated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cms := stubComments{listPage: func(_ context.Context, videoID string, page, limit int) ([]domain.Comment, int64, error) {
		if videoID != "v1" || page != 2 || limit != 5 {
			t.Fatalf("list args: %s %d %d", videoID, page, limit)
		}
		return []domain.Comment{{ID: "c1"}}, 11, nil
	}}
	h := build(deps{comments: cms})
	r := gin.New()
	r.GET("/videos/:id/comments", h.ListComments)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/v1/comments?page=2&limit=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	var body struct {
		Data ListResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Data.Total != 11 || body.Data.TotalPages != 3 || !body.Data.HasNext {
		t.Fatalf("paging: %+v", body.Data)
	}
}

func TestUpdateDeleteComment_OwnerScoped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// edit by owner -> 200
	{
		h := build(deps{})
		r := gin.New()
		r.PATCH("/comments/:id", asUser("u1"), h.UpdateComment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/comments/c1",
			bytes.NewBufferString(`{"content":"edited"}`)))
		if w.Code != http.StatusOK {
			t.Fatalf("edit -> %d", w.Code)
		}
	}

	// edit by stranger -> 404
	{
		cms := stubComments{update: func(context.Context, string, string, string) (*domain.Comment, error) {
			return nil, services.ErrCommentNotFound
		}}
		h := build(deps{comments: cms})
		r := gin.New()
		r.PATCH("/comments/:id", asUser("u2"), h.UpdateComment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/comments/c1",
			bytes.NewBufferString(`{"content":"hijack"}`)))
		if w.Code != http.StatusNotFound {
			t.Fatalf("stranger edit -> %d", w.Code)
		}
	}

	// delete -> 204
	{
		h := build(deps{})
		r := gin.New()
		r.DELETE("/comments/:id", asUser("u1"), h.DeleteComment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/comments/c1", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("delete -> %d", w.Code)
		}
	}

	// oversized edit -> 400
	{
		cms := stubComments{update: func(context.Context, string, string, string) (*domain.Comment, error) {
			return nil, services.ErrTooLong
		}}
		h := build(deps{comments: cms})
		r := gin.New()
		r.PATCH("/comments/:id", asUser("u1"), h.UpdateComment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/comments/c1",
			bytes.NewBufferString(`{"content":"way too long"}`)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("too long -> %d", w.Code)
		}
	}
}
