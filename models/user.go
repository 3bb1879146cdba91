package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:120" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"` // bcrypt, never returned in JSON
	IsAdmin      bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Bookings []Booking `gorm:"foreignKey:UserID" json:"-"`
	Posts    []Post    `gorm:"foreignKey:AuthorID" json:"-"`
}
