// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"training-backend/models"
	"training-backend/utils"
)

// Training is assumed to happen 30 days after the booking date unless the
// client supplies an explicit training date.
const defaultTrainingLeadDays = 30

var (
	ErrBookingNotFound = errors.New("booking_not_found")
	ErrInvalidStatus   = errors.New("invalid_status")
)

// BookingService wraps *gorm.DB with the booking business logic. Now is the
// injected clock; it defaults to time.Now and exists so reference fallback
// dates are testable.
type BookingService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, Now: time.Now}
}

func (s *BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BookingInput is the create payload. Dates come in as tagged values so
// malformed historical data degrades to a null date instead of failing the
// whole booking.
type BookingInput struct {
	UserID             *uint           `json:"user_id"`
	ClientName         string          `json:"client_name" binding:"required"`
	Email              string          `json:"email" binding:"required,email"`
	MobileNumber       string          `json:"mobile_number" binding:"required"`
	OrganizationName   string          `json:"organization_name"`
	Address            string          `json:"address"`
	BookingDate        utils.DateValue `json:"booking_date"`
	TrainingDate       utils.DateValue `json:"training_date"`
	Status             string          `json:"status"`
	AttachmentFilename string          `json:"attachment_filename"`
	Extra              datatypes.JSON  `json:"extra"`
}

// normalizeDate resolves a DateValue to a nullable date, logging a warning
// for values that could not be interpreted. Never an error.
func normalizeDate(v utils.DateValue, field string) *time.Time {
	if !v.IsSet() {
		return nil
	}
	t, ok := v.Normalize()
	if !ok {
		log.Printf("warning: unable to parse %s value: %v", field, v.Raw())
		return nil
	}
	return &t
}

// Create mints a reference number and persists the booking. Allocation and
// insert race against concurrent creates for the same date; the unique index
// on reference_number arbitrates, and losers recompute and retry a bounded
// number of times.
func (s *BookingService) Create(in BookingInput) (*models.Booking, error) {
	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	bookingDate := normalizeDate(in.BookingDate, "booking_date")
	trainingDate := normalizeDate(in.TrainingDate, "training_date")
	if trainingDate == nil && bookingDate != nil {
		t := bookingDate.AddDate(0, 0, defaultTrainingLeadDays)
		trainingDate = &t
	}

	// No usable booking date: allocate against today's date instead of
	// failing the creation.
	allocDate := utils.TruncateToDay(s.now())
	if bookingDate != nil {
		allocDate = *bookingDate
	}

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		refs, err := referencesForDate(s.DB, allocDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan existing references: %w", err)
		}
		ref, err := NextReferenceNumber(allocDate, refs)
		if err != nil {
			return nil, err
		}

		booking := models.Booking{
			UserID:             in.UserID,
			ReferenceNumber:    ref,
			ClientName:         in.ClientName,
			Email:              in.Email,
			MobileNumber:       in.MobileNumber,
			OrganizationName:   in.OrganizationName,
			Address:            in.Address,
			BookingDate:        bookingDate,
			TrainingDate:       trainingDate,
			Status:             status,
			AttachmentFilename: in.AttachmentFilename,
			Extra:              in.Extra,
		}

		createErr := s.DB.Create(&booking).Error
		if createErr == nil {
			s.logAction(in.UserID, "booking.create", booking.ReferenceNumber)
			return &booking, nil
		}
		if isDuplicateKey(createErr) {
			log.Printf("reference %s lost insert race (attempt %d) - recomputing", ref, attempt)
			continue
		}
		return nil, fmt.Errorf("failed to create booking: %w", createErr)
	}

	log.Printf("reference allocation exhausted for %s after %d attempts",
		allocDate.Format(referenceDateLayout), maxAllocationAttempts)
	return nil, ErrAllocationExhausted
}

// BookingUpdate patches a booking. Nil fields are untouched. Status edits
// are unconstrained between the four states; only the automatic sweep is
// restricted.
type BookingUpdate struct {
	ClientName         *string          `json:"client_name"`
	Email              *string          `json:"email"`
	MobileNumber       *string          `json:"mobile_number"`
	OrganizationName   *string          `json:"organization_name"`
	Address            *string          `json:"address"`
	BookingDate        *utils.DateValue `json:"booking_date"`
	TrainingDate       *utils.DateValue `json:"training_date"`
	Status             *string          `json:"status"`
	AttachmentFilename *string          `json:"attachment_filename"`
	Extra              datatypes.JSON   `json:"extra"`
}

func (s *BookingService) Update(id uint, in BookingUpdate) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	updates := map[string]interface{}{}
	if in.ClientName != nil {
		updates["client_name"] = *in.ClientName
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.MobileNumber != nil {
		updates["mobile_number"] = *in.MobileNumber
	}
	if in.OrganizationName != nil {
		updates["organization_name"] = *in.OrganizationName
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.BookingDate != nil {
		updates["booking_date"] = normalizeDate(*in.BookingDate, "booking_date")
	}
	if in.TrainingDate != nil {
		updates["training_date"] = normalizeDate(*in.TrainingDate, "training_date")
	}
	if in.Status != nil {
		if !models.IsValidStatus(*in.Status) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.AttachmentFilename != nil {
		updates["attachment_filename"] = *in.AttachmentFilename
	}
	if len(in.Extra) > 0 {
		updates["extra"] = in.Extra
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&booking).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update booking: %w", err)
		}
	}

	if err := s.DB.First(&booking, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) Get(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) List() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// Search matches id, client name, email, mobile number, or status.
func (s *BookingService) Search(query string) ([]models.Booking, error) {
	like := "%" + query + "%"
	var list []models.Booking
	err := s.DB.
		Where("CAST(id AS CHAR) LIKE ? OR client_name LIKE ? OR email LIKE ? OR mobile_number LIKE ? OR status LIKE ?",
			like, like, like, like, like).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) Delete(id uint) error {
	res := s.DB.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	s.logAction(nil, "booking.delete", fmt.Sprintf("id=%d", id))
	return nil
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ClientCount struct {
	ClientName string `json:"client_name"`
	Count      int64  `json:"count"`
}

type BookingStatistics struct {
	TotalBookings      int64         `json:"total_bookings"`
	RecentBookings     int64         `json:"recent_bookings"`
	PendingBookings    int64         `json:"pending_bookings"`
	CompletionRate     float64       `json:"completion_rate"`
	StatusDistribution []StatusCount `json:"status_distribution"`
	TopClients         []ClientCount `json:"top_clients"`
}

func (s *BookingService) Statistics() (*BookingStatistics, error) {
	stats := &BookingStatistics{}

	if err := s.DB.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	thirtyDaysAgo := s.now().AddDate(0, 0, -30)
	if err := s.DB.Model(&models.Booking{}).
		Where("booking_date >= ?", thirtyDaysAgo).
		Count(&stats.RecentBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count recent bookings: %w", err)
	}

	if err := s.DB.Model(&models.Booking{}).
		Where("status = ?", models.StatusPending).
		Count(&stats.PendingBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending bookings: %w", err)
	}

	var completed int64
	if err := s.DB.Model(&models.Booking{}).
		Where("status = ?", models.StatusCompleted).
		Count(&completed).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed bookings: %w", err)
	}
	if stats.TotalBookings > 0 {
		stats.CompletionRate = float64(completed) / float64(stats.TotalBookings) * 100
	}

	if err := s.DB.Model(&models.Booking{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Scan(&stats.StatusDistribution).Error; err != nil {
		return nil, fmt.Errorf("failed to load status distribution: %w", err)
	}

	if err := s.DB.Model(&models.Booking{}).
		Select("client_name, COUNT(id) AS count").
		Group("client_name").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopClients).Error; err != nil {
		return nil, fmt.Errorf("failed to load top clients: %w", err)
	}

	return stats, nil
}

// logAction records an audit row. Best-effort: audit must never fail the
// primary write.
func (s *BookingService) logAction(userID *uint, action, details string) {
	entry := models.UserLog{UserID: userID, Action: action, Details: details}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("warning: failed to write audit log for %s: %v", action, err)
	}
}
