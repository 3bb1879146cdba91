package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. A new booking always starts as pending; the sweep only
// ever moves pending/approved forward to completed.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID *uint `gorm:"index;column:user_id" json:"user_id,omitempty"`

	// ReferenceNumber is YYYYMMDD-NNNN, unique even across soft-deleted
	// rows, assigned once at creation.
	ReferenceNumber string `gorm:"column:reference_number;uniqueIndex;size:16" json:"reference_number"`

	ClientName       string `gorm:"column:client_name;size:100" json:"client_name"`
	Email            string `gorm:"column:email;size:120" json:"email"`
	MobileNumber     string `gorm:"column:mobile_number;size:20" json:"mobile_number"`
	OrganizationName string `gorm:"column:organization_name;size:100" json:"organization_name,omitempty"`
	Address          string `gorm:"column:address;size:255" json:"address,omitempty"`

	BookingDate  *time.Time `gorm:"column:booking_date" json:"booking_date,omitempty"`
	TrainingDate *time.Time `gorm:"column:training_date;index" json:"training_date,omitempty"`

	Status string `gorm:"column:status;size:20;default:pending;index" json:"status"`

	AttachmentFilename string `gorm:"column:attachment_filename;size:255" json:"attachment_filename,omitempty"`

	// Extra carries client-supplied contact details the core does not
	// interpret. Stored as-is.
	Extra datatypes.JSON `gorm:"column:extra" json:"extra,omitempty"`

	User         User          `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Certificates []Certificate `gorm:"foreignKey:BookingID" json:"-"`
}

// IsValidStatus reports whether s is one of the four booking statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
