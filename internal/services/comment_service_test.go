package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tbourn/go-video-backend/internal/domain"
)

func newCommentService(t *testing.T) *CommentService {
	t.Helper()
	return &CommentService{DB: newServiceDB(t, &domain.User{}, &domain.Video{}, &domain.Comment{}, &domain.Like{})}
}

func seedCommentVideo(t *testing.T, svc *CommentService, id string, published bool) {
	t.Helper()
	v := domain.Video{
		ID: id, OwnerID: "owner", Title: "t", Description: "d",
		VideoURL: "vu", VideoKey: "vk", ThumbnailURL: "tu", ThumbnailKey: "tk",
		Published: published,
	}
	if err := svc.DB.Create(&v).Error; err != nil {
		t.Fatalf("seed video %s: %v", id, err)
	}
}

func TestCommentCreate_RulesAndDraftVisibility(t *testing.T) {
	svc := newCommentService(t)
	ctx := context.Background()
	seedCommentVideo(t, svc, "v1", true)
	seedCommentVideo(t, svc, "draft", false)

	if _, err := svc.Create(ctx, "u1", "v1", "   "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", "v1", strings.Repeat("x", CommentMaxLen+1)); !errors.Is(err, ErrTooLong) {
		t.Fatalf("expected ErrTooLong, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", "ghost", "hello"); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}

	// Drafts accept comments from their owner only.
	if _, err := svc.Create(ctx, "u1", "draft", "hello"); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected draft hidden from strangers, got %v", err)
	}
	if _, err := svc.Create(ctx, "owner", "draft", "note to self"); err != nil {
		t.Fatalf("owner commenting own draft: %v", err)
	}

	c, err := svc.Create(ctx, "u1", "v1", "  nice  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Content != "nice" {
		t.Fatalf("expected trimmed content, got %q", c.Content)
	}
}

func TestCommentListUpdateDelete(t *testing.T) {
	svc := newCommentService(t)
	ctx := context.Background()
	seedCommentVideo(t, svc, "v1", true)

	c, err := svc.Create(ctx, "u1", "v1", "first")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "u2", "v1", "second"); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, total, err := svc.ListPage(ctx, "v1", 1, 10)
	if err != nil || total != 2 || len(list) != 2 {
		t.Fatalf("ListPage: total=%d len=%d err=%v", total, len(list), err)
	}
	if _, _, err := svc.ListPage(ctx, "ghost", 1, 10); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound for missing video, got %v", err)
	}

	if _, err := svc.Update(ctx, "intruder", c.ID, "hacked"); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound for non-owner, got %v", err)
	}
	updated, err := svc.Update(ctx, "u1", c.ID, "edited")
	if err != nil || updated.Content != "edited" {
		t.Fatalf("Update: got=%+v err=%v", updated, err)
	}

	if err := svc.Delete(ctx, "intruder", c.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound for non-owner delete, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestTweetLifecycle(t *testing.T) {
	svc := &TweetService{DB: newServiceDB(t, &domain.User{}, &domain.Tweet{}, &domain.Like{})}
	ctx := context.Background()

	author := domain.User{ID: "u1", Handle: "a", Email: "a@example.com", FullName: "A", PasswordHash: "x", AvatarURL: "u", AvatarKey: "k"}
	if err := svc.DB.Create(&author).Error; err != nil {
		t.Fatalf("seed author: %v", err)
	}

	if _, err := svc.Create(ctx, "u1", strings.Repeat("x", TweetMaxLen+1)); !errors.Is(err, ErrTooLong) {
		t.Fatalf("expected ErrTooLong, got %v", err)
	}
	tw, err := svc.Create(ctx, "u1", "hello world")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, total, err := svc.ListPage(ctx, "u1", 1, 10)
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("ListPage: total=%d len=%d err=%v", total, len(list), err)
	}
	if _, _, err := svc.ListPage(ctx, "ghost", 1, 10); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := svc.Update(ctx, "intruder", tw.ID, "hacked"); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound for non-owner, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", tw.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "u1", tw.ID); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound after delete, got %v", err)
	}
}
