package model

import "time"

// ActionRecord is one entry in the admin activity trail. Every command the
// dashboard issues against the backend is recorded here, success or failure.
type ActionRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	Target    string    `gorm:"size:128" json:"target"`
	Detail    string    `gorm:"size:512" json:"detail"`
	OK        bool      `gorm:"not null" json:"ok"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
