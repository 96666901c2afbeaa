package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Room scopes the subscription to one room's expiry alerts; an empty room
// subscribes to every room.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	Room      string    `gorm:"size:32;index"`
	CreatedAt time.Time `gorm:"not null"`
}
