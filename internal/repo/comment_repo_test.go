package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-video-backend/internal/domain"
)

func newCommentRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("comment_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateComment_SetsIDAndPersists(t *testing.T) {
	db := newCommentRepoDB(t, &domain.Comment{})

	c, err := CreateComment(context.Background(), db, &domain.Comment{
		VideoID: "v1", OwnerID: "u1", Content: "nice video",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected generated ID, got %+v", c)
	}

	var got domain.Comment
	if err := db.First(&got, "id = ?", c.ID).Error; err != nil {
		t.Fatalf("load created comment: %v", err)
	}
	if got.Content != "nice video" || got.VideoID != "v1" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestListCommentsPage_NewestFirstWithOwner(t *testing.T) {
	db := newCommentRepoDB(t, &domain.User{}, &domain.Comment{})

	author := domain.User{ID: "u1", Handle: "alice", Email: "a@example.com", FullName: "A", PasswordHash: "x", AvatarURL: "u", AvatarKey: "k"}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("seed author: %v", err)
	}

	base := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	for i, c := range []domain.Comment{
		{ID: "c1", VideoID: "v1", OwnerID: "u1", Content: "a", CreatedAt: base},
		{ID: "c2", VideoID: "v1", OwnerID: "u1", Content: "b", CreatedAt: base.Add(time.Second)},
		{ID: "cx", VideoID: "v2", OwnerID: "u1", Content: "other video", CreatedAt: base},
	} {
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	list, total, err := ListCommentsPage(context.Background(), db, "v1", 0, 10)
	if err != nil {
		t.Fatalf("ListCommentsPage: %v", err)
	}
	if total != 2 || len(list) != 2 || list[0].ID != "c2" || list[1].ID != "c1" {
		t.Fatalf("unexpected page: total=%d list=%+v", total, list)
	}
	if list[0].Owner == nil || list[0].Owner.Handle != "alice" {
		t.Fatalf("expected Owner preloaded, got %+v", list[0].Owner)
	}
}

func TestUpdateCommentOwned_OwnershipGate(t *testing.T) {
	db := newCommentRepoDB(t, &domain.Comment{})

	if err := db.Create(&domain.Comment{ID: "c1", VideoID: "v1", OwnerID: "u1", Content: "old"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := UpdateCommentOwned(context.Background(), db, "c1", "u1", "new")
	if err != nil {
		t.Fatalf("UpdateCommentOwned: %v", err)
	}
	if got.Content != "new" {
		t.Fatalf("expected updated content, got %+v", got)
	}

	if _, err := UpdateCommentOwned(context.Background(), db, "c1", "intruder", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
	if _, err := UpdateCommentOwned(context.Background(), db, "missing", "u1", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestDeleteCommentOwned_CleansLikes(t *testing.T) {
	db := newCommentRepoDB(t, &domain.Comment{}, &domain.Like{})

	if err := db.Create(&domain.Comment{ID: "c1", VideoID: "v1", OwnerID: "u1", Content: "x"}).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	cid := "c1"
	if err := db.Create(&domain.Like{ID: "l1", UserID: "u2", CommentID: &cid}).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}

	if err := DeleteCommentOwned(context.Background(), db, "c1", "intruder"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
	if err := DeleteCommentOwned(context.Background(), db, "c1", "u1"); err != nil {
		t.Fatalf("DeleteCommentOwned: %v", err)
	}

	var comments, likes int64
	if err := db.Model(&domain.Comment{}).Count(&comments).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if err := db.Model(&domain.Like{}).Count(&likes).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if comments != 0 || likes != 0 {
		t.Fatalf("expected comment and its likes gone, got comments=%d likes=%d", comments, likes)
	}
}
