package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studyseat-dashboard/internal/model"
)

// Store defines the interface for all database operations. The database holds
// only the dashboard's own operational data; the room/table model is rebuilt
// from the backend on every refresh and never persisted.
type Store interface {
	RecordAction(ctx context.Context, action, target, detail string, ok bool) error
	RecentActions(ctx context.Context, limit int) ([]model.ActionRecord, error)
	SaveSubscription(ctx context.Context, sub model.PushSubscription) error
	SubscriptionByEndpoint(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForRoom(ctx context.Context, room string) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// RecordAction appends one entry to the admin activity trail.
func (s *gormStore) RecordAction(ctx context.Context, action, target, detail string, ok bool) error {
	record := model.ActionRecord{
		Action:    action,
		Target:    target,
		Detail:    detail,
		OK:        ok,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record %s action: %w", action, err)
	}
	return nil
}

// RecentActions returns the newest activity entries, most recent first.
func (s *gormStore) RecentActions(ctx context.Context, limit int) ([]model.ActionRecord, error) {
	var records []model.ActionRecord
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent actions: %w", err)
	}
	return records, nil
}

// SaveSubscription creates or replaces a push subscription by endpoint.
func (s *gormStore) SaveSubscription(ctx context.Context, sub model.PushSubscription) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "room"}),
	}).Create(&sub).Error; err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

// SubscriptionByEndpoint fetches one subscription.
func (s *gormStore) SubscriptionByEndpoint(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	if err := s.db.WithContext(ctx).First(&sub, "endpoint = ?", endpoint).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeleteSubscription removes a subscription by endpoint.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

// SubscriptionsForRoom returns the subscriptions scoped to the given room plus
// the unscoped ones that listen to every room.
func (s *gormStore) SubscriptionsForRoom(ctx context.Context, room string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).
		Where("room = ? OR room = ''", room).
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions for room %s: %w", room, err)
	}
	return subs, nil
}
