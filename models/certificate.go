package models

import (
	"time"

	"gorm.io/gorm"
)

type Certificate struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BookingID   *uint          `gorm:"index;column:booking_id" json:"booking_id,omitempty"`
	ClientName  string         `gorm:"column:client_name;size:100" json:"client_name"`
	Achievement string         `gorm:"column:achievement;size:200" json:"achievement"`
	Date        *time.Time     `gorm:"column:date" json:"date,omitempty"`
	UserID      *uint          `gorm:"index;column:user_id" json:"user_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
