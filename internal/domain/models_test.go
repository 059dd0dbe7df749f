package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Enforce FKs so cascades actually execute.
	db.Exec("PRAGMA foreign_keys=ON;")
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(User{}).TableName():          "users",
		(Video{}).TableName():         "videos",
		(Comment{}).TableName():       "comments",
		(Tweet{}).TableName():         "tweets",
		(Playlist{}).TableName():      "playlists",
		(PlaylistVideo{}).TableName(): "playlist_videos",
		(Like{}).TableName():          "likes",
		(Subscription{}).TableName():  "subscriptions",
		(VideoView{}).TableName():     "video_views",
		(Session{}).TableName():       "sessions",
		(Idempotency{}).TableName():   "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestNewLike_ExactlyOneTarget(t *testing.T) {
	l, err := NewLike("u1", LikeTarget{Kind: LikeTargetVideo, ID: "v1"})
	if err != nil {
		t.Fatalf("NewLike video: %v", err)
	}
	if l.VideoID == nil || *l.VideoID != "v1" || l.CommentID != nil || l.TweetID != nil {
		t.Fatalf("expected only VideoID populated: %+v", l)
	}
	if tgt := l.Target(); tgt.Kind != LikeTargetVideo || tgt.ID != "v1" {
		t.Fatalf("Target() round-trip mismatch: %+v", tgt)
	}

	if _, err := NewLike("u1", LikeTarget{Kind: "channel", ID: "x"}); err != ErrInvalidLikeTarget {
		t.Fatalf("unknown kind: want ErrInvalidLikeTarget, got %v", err)
	}
	if _, err := NewLike("u1", LikeTarget{Kind: LikeTargetTweet, ID: ""}); err != ErrInvalidLikeTarget {
		t.Fatalf("empty id: want ErrInvalidLikeTarget, got %v", err)
	}
}

func TestMigrations_UniqueIndexes(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(
		&User{}, &Video{}, &Comment{}, &Tweet{},
		&Playlist{}, &PlaylistVideo{}, &Like{}, &Subscription{},
		&VideoView{}, &Session{}, &Idempotency{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tbl := range []any{&User{}, &Video{}, &Like{}, &Subscription{}, &PlaylistVideo{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&Like{}, "ux_likes_user_video") {
		t.Fatalf("expected unique index ux_likes_user_video")
	}
	if !m.HasIndex(&Subscription{}, "ux_subscriptions_pair") {
		t.Fatalf("expected unique index ux_subscriptions_pair")
	}

	// Duplicate like on the same (user, video) must violate the unique index.
	vid := "v1"
	first := Like{ID: "l1", UserID: "u1", VideoID: &vid, CreatedAt: time.Now().UTC()}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}
	dup := Like{ID: "l2", UserID: "u1", VideoID: &vid, CreatedAt: time.Now().UTC()}
	if err := db.Create(&dup).Error; err == nil {
		t.Fatalf("expected unique violation on duplicate (user, video) like")
	}

	// A like by the same user on a different kind of target is unaffected.
	tw := "t1"
	other := Like{ID: "l3", UserID: "u1", TweetID: &tw, CreatedAt: time.Now().UTC()}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("tweet like by same user should not conflict: %v", err)
	}
}
