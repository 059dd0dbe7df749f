package domain

import "time"

// Session is an issued credential pair for one login. Both tokens are opaque
// random values; the access token is short-lived and checked on every
// protected request, the refresh token is long-lived and rotates the pair.
// Logout deletes the row. Expired rows are purged by the maintenance job.
type Session struct {
	ID               string    `gorm:"type:char(36);primaryKey"`
	UserID           string    `gorm:"type:char(36);not null;index:idx_sessions_user"`
	AccessToken      string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_sessions_access"`
	RefreshToken     string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_sessions_refresh"`
	AccessExpiresAt  time.Time `gorm:"not null"`
	RefreshExpiresAt time.Time `gorm:"not null;index:idx_sessions_refresh_expiry"`
	CreatedAt        time.Time
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "sessions" }
