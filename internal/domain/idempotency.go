package domain

import "time"

// Idempotency records the result of a previously processed publish request,
// keyed by (user_id, key). It enables safe retries for expensive POST
// operations (video publishing uploads media before the row exists) by
// returning the originally created resource without re-executing side
// effects.
type Idempotency struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	UserID     string    `gorm:"type:char(36);not null;uniqueIndex:ux_idempotency_user_key,priority:1"`
	Key        string    `gorm:"type:varchar(200);not null;uniqueIndex:ux_idempotency_user_key,priority:2"`
	Resource   string    `gorm:"type:varchar(32);not null"`
	ResourceID string    `gorm:"type:char(36);not null"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName returns the database table name for Idempotency.
func (Idempotency) TableName() string { return "idempotency" }
