// Package domain defines the persistence models for users, videos, comments,
// tweets, playlists, likes, and subscriptions. These types are mapped with
// GORM and form the core data layer of the video platform backend.
package domain

import "time"

// User represents a registered account. A user is also a "channel" when other
// users subscribe to it. The password hash and media object keys are never
// serialized outward.
//
// Handle is stored case-folded and is globally unique; Email is stored
// lowercased and is globally unique.
type User struct {
	ID           string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Handle       string    `json:"handle"    gorm:"type:varchar(64);not null;uniqueIndex:ux_users_handle"`
	Email        string    `json:"email"     gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	FullName     string    `json:"fullName"  gorm:"type:varchar(255);not null"`
	PasswordHash string    `json:"-"         gorm:"type:varchar(255);not null"`
	AvatarURL    string    `json:"avatarUrl" gorm:"type:varchar(512);not null"`
	AvatarKey    string    `json:"-"         gorm:"type:varchar(512);not null"`
	CoverURL     string    `json:"coverUrl,omitempty" gorm:"type:varchar(512)"`
	CoverKey     string    `json:"-"         gorm:"type:varchar(512)"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Video represents a published (or draft) video owned by a user. The media
// and thumbnail live in the external object store; only their public URLs and
// object keys are persisted here.
//
// Views counts fetches by non-owners, deduplicated per viewer within a time
// window (see repo.CountView).
type Video struct {
	ID           string    `json:"id"           gorm:"type:char(36);primaryKey"`
	OwnerID      string    `json:"ownerId"      gorm:"type:char(36);not null;index:idx_videos_owner"`
	Title        string    `json:"title"        gorm:"type:varchar(255);not null"`
	Description  string    `json:"description"  gorm:"type:text;not null"`
	VideoURL     string    `json:"videoUrl"     gorm:"type:varchar(512);not null"`
	VideoKey     string    `json:"-"            gorm:"type:varchar(512);not null"`
	ThumbnailURL string    `json:"thumbnailUrl" gorm:"type:varchar(512);not null"`
	ThumbnailKey string    `json:"-"            gorm:"type:varchar(512);not null"`
	Duration     float64   `json:"duration"     gorm:"not null;default:0"`
	Views        int64     `json:"views"        gorm:"not null;default:0"`
	Published    bool      `json:"published"    gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Owner is the publishing user, preloaded for list projections.
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Video.
func (Video) TableName() string { return "videos" }

// Comment is a user-authored comment on a video.
type Comment struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	VideoID   string    `json:"videoId"   gorm:"type:char(36);not null;index:idx_comments_video"`
	OwnerID   string    `json:"ownerId"   gorm:"type:char(36);not null;index:idx_comments_owner"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Tweet is a short-form text post owned by a user, independent of any video.
type Tweet struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	OwnerID   string    `json:"ownerId"   gorm:"type:char(36);not null;index:idx_tweets_owner"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Tweet.
func (Tweet) TableName() string { return "tweets" }

// Playlist is a named, ordered collection of videos owned by a user.
// Membership rows live in PlaylistVideo.
type Playlist struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	OwnerID     string    `json:"ownerId"     gorm:"type:char(36);not null;index:idx_playlists_owner"`
	Name        string    `json:"name"        gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Playlist.
func (Playlist) TableName() string { return "playlists" }

// PlaylistVideo is a membership row linking a playlist to a video. The
// (playlist_id, video_id) pair is unique: a video appears in a playlist at
// most once. Position preserves insertion order.
type PlaylistVideo struct {
	ID         string    `json:"id"         gorm:"type:char(36);primaryKey"`
	PlaylistID string    `json:"playlistId" gorm:"type:char(36);not null;uniqueIndex:ux_playlist_video,priority:1"`
	VideoID    string    `json:"videoId"    gorm:"type:char(36);not null;uniqueIndex:ux_playlist_video,priority:2;index:idx_playlist_videos_video"`
	Position   int       `json:"position"   gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`

	Playlist Playlist `json:"-" gorm:"foreignKey:PlaylistID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Video    *Video   `json:"video,omitempty" gorm:"foreignKey:VideoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for PlaylistVideo.
func (PlaylistVideo) TableName() string { return "playlist_videos" }
