package domain

import (
	"errors"
	"time"
)

// LikeTargetKind discriminates the entity a like points at.
type LikeTargetKind string

// Supported like targets.
const (
	LikeTargetVideo   LikeTargetKind = "video"
	LikeTargetComment LikeTargetKind = "comment"
	LikeTargetTweet   LikeTargetKind = "tweet"
)

// ErrInvalidLikeTarget is returned by NewLike when the target kind is unknown
// or the target id is empty.
var ErrInvalidLikeTarget = errors.New("like target must name exactly one of video, comment, or tweet")

// LikeTarget is the tagged union identifying what a like applies to.
type LikeTarget struct {
	Kind LikeTargetKind
	ID   string
}

// Like records that a user liked exactly one of a video, a comment, or a
// tweet. Exactly one of VideoID/CommentID/TweetID is non-NULL, enforced at
// construction by NewLike. Per-target unique indexes over (user_id, target)
// guarantee at most one like per user per target; under SQLite and Postgres
// NULL values are distinct, so each index only constrains rows of its kind.
type Like struct {
	ID        string    `json:"id"                  gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"userId"              gorm:"type:char(36);not null;index:idx_likes_user;uniqueIndex:ux_likes_user_video,priority:1;uniqueIndex:ux_likes_user_comment,priority:1;uniqueIndex:ux_likes_user_tweet,priority:1"`
	VideoID   *string   `json:"videoId,omitempty"   gorm:"type:char(36);index:idx_likes_video;uniqueIndex:ux_likes_user_video,priority:2"`
	CommentID *string   `json:"commentId,omitempty" gorm:"type:char(36);index:idx_likes_comment;uniqueIndex:ux_likes_user_comment,priority:2"`
	TweetID   *string   `json:"tweetId,omitempty"   gorm:"type:char(36);index:idx_likes_tweet;uniqueIndex:ux_likes_user_tweet,priority:2"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the database table name for Like.
func (Like) TableName() string { return "likes" }

// NewLike builds a Like for userID pointing at target, populating exactly one
// target column. It returns ErrInvalidLikeTarget for an unknown kind or empty
// target id.
func NewLike(userID string, target LikeTarget) (*Like, error) {
	if target.ID == "" {
		return nil, ErrInvalidLikeTarget
	}
	l := &Like{UserID: userID}
	id := target.ID
	switch target.Kind {
	case LikeTargetVideo:
		l.VideoID = &id
	case LikeTargetComment:
		l.CommentID = &id
	case LikeTargetTweet:
		l.TweetID = &id
	default:
		return nil, ErrInvalidLikeTarget
	}
	return l, nil
}

// Target reconstructs the tagged union from the populated column.
func (l *Like) Target() LikeTarget {
	switch {
	case l.VideoID != nil:
		return LikeTarget{Kind: LikeTargetVideo, ID: *l.VideoID}
	case l.CommentID != nil:
		return LikeTarget{Kind: LikeTargetComment, ID: *l.CommentID}
	case l.TweetID != nil:
		return LikeTarget{Kind: LikeTargetTweet, ID: *l.TweetID}
	}
	return LikeTarget{}
}

// Subscription records that SubscriberID follows ChannelID. The pair is
// unique; self-subscription is rejected at the service layer.
type Subscription struct {
	ID           string    `json:"id"           gorm:"type:char(36);primaryKey"`
	SubscriberID string    `json:"subscriberId" gorm:"type:char(36);not null;uniqueIndex:ux_subscriptions_pair,priority:1;index:idx_subscriptions_subscriber"`
	ChannelID    string    `json:"channelId"    gorm:"type:char(36);not null;uniqueIndex:ux_subscriptions_pair,priority:2;index:idx_subscriptions_channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName returns the database table name for Subscription.
func (Subscription) TableName() string { return "subscriptions" }

// VideoView is the dedup marker behind the view counter: one row per
// (video, viewer, time window). The unique index makes the insert the
// arbiter of whether a fetch counts as a new view.
type VideoView struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	VideoID     string    `gorm:"type:char(36);not null;uniqueIndex:ux_video_views,priority:1"`
	ViewerKey   string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_video_views,priority:2"`
	WindowStart time.Time `gorm:"not null;uniqueIndex:ux_video_views,priority:3;index:idx_video_views_window"`
	CreatedAt   time.Time
}

// TableName returns the database table name for VideoView.
func (VideoView) TableName() string { return "video_views" }
