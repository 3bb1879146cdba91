package models

import "time"

// UserLog is an append-only audit row written by the services on mutations.
type UserLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index;column:user_id" json:"user_id,omitempty"`
	Action    string    `gorm:"size:100" json:"action"`
	Details   string    `gorm:"size:200" json:"details,omitempty"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
