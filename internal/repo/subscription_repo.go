// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Subscription model: the many-to-many join between users and channels.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
)

// ToggleSubscription flips whether subscriberID follows channelID and returns
// the resulting state. Same discipline as ToggleLike: delete-then-insert in a
// transaction with the (subscriber_id, channel_id) unique index as the
// concurrency arbiter.
func ToggleSubscription(ctx context.Context, db *gorm.DB, subscriberID, channelID string) (bool, error) {
	subscribed := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&domain.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			subscribed = false
			return nil
		}

		rec := &domain.Subscription{
			ID:           uuid.NewString(),
			SubscriberID: subscriberID,
			ChannelID:    channelID,
			CreatedAt:    time.Now().UTC(),
		}
		if err := tx.Create(rec).Error; err != nil {
			if isUniqueViolation(err) {
				subscribed = true
				return nil
			}
			return err
		}
		subscribed = true
		return nil
	})
	return subscribed, err
}

// IsSubscribed reports whether subscriberID currently follows channelID.
func IsSubscribed(ctx context.Context, db *gorm.DB, subscriberID, channelID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// CountSubscribers returns how many users follow channelID.
func CountSubscribers(ctx context.Context, db *gorm.DB, channelID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&total).Error
	return total, err
}

// CountSubscriptions returns how many channels subscriberID follows.
func CountSubscriptions(ctx context.Context, db *gorm.DB, subscriberID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&total).Error
	return total, err
}

// ListSubscribersPage returns one page of the users following channelID,
// most recent subscription first, joined through the subscriptions table.
func ListSubscribersPage(ctx context.Context, db *gorm.DB, channelID string, offset, limit int) ([]domain.User, int64, error) {
	base := db.Model(&domain.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID)
	return FindPage[domain.User](ctx, base, "subscriptions.created_at desc, users.id desc", offset, limit)
}

// ListSubscribedChannelsPage returns one page of the channels subscriberID
// follows, most recent subscription first.
func ListSubscribedChannelsPage(ctx context.Context, db *gorm.DB, subscriberID string, offset, limit int) ([]domain.User, int64, error) {
	base := db.Model(&domain.User{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID)
	return FindPage[domain.User](ctx, base, "subscriptions.created_at desc, users.id desc", offset, limit)
}
