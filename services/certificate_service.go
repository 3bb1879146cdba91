// services/certificate_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"training-backend/models"
	"training-backend/utils"
)

var (
	ErrCertificateNotFound = errors.New("certificate_not_found")
	ErrNoTrainingDate      = errors.New("booking_has_no_training_date")
)

type CertificateService struct {
	DB *gorm.DB
}

func NewCertificateService(db *gorm.DB) *CertificateService {
	return &CertificateService{DB: db}
}

type CertificateInput struct {
	ClientName  string          `json:"client_name" binding:"required"`
	Achievement string          `json:"achievement" binding:"required"`
	Date        utils.DateValue `json:"date"`
	BookingID   *uint           `json:"booking_id"`
	UserID      *uint           `json:"user_id"`
}

func (s *CertificateService) Create(in CertificateInput) (*models.Certificate, error) {
	cert := models.Certificate{
		ClientName:  in.ClientName,
		Achievement: in.Achievement,
		Date:        normalizeDate(in.Date, "certificate date"),
		BookingID:   in.BookingID,
		UserID:      in.UserID,
	}
	if err := s.DB.Create(&cert).Error; err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}
	return &cert, nil
}

// CreateForBooking issues a completion certificate from a booking's client
// name and training date. The rendering of the certificate itself happens
// elsewhere; this only records the entity.
func (s *CertificateService) CreateForBooking(bookingID uint, achievement string) (*models.Certificate, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.TrainingDate == nil {
		return nil, ErrNoTrainingDate
	}

	cert := models.Certificate{
		BookingID:   &booking.ID,
		ClientName:  booking.ClientName,
		Achievement: achievement,
		Date:        booking.TrainingDate,
		UserID:      booking.UserID,
	}
	if err := s.DB.Create(&cert).Error; err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}
	return &cert, nil
}

func (s *CertificateService) Get(id uint) (*models.Certificate, error) {
	var cert models.Certificate
	if err := s.DB.First(&cert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("failed to retrieve certificate: %w", err)
	}
	return &cert, nil
}

func (s *CertificateService) List() ([]models.Certificate, error) {
	var certs []models.Certificate
	if err := s.DB.Order("created_at DESC").Find(&certs).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve certificates: %w", err)
	}
	return certs, nil
}

func (s *CertificateService) Delete(id uint) error {
	res := s.DB.Delete(&models.Certificate{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete certificate: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCertificateNotFound
	}
	return nil
}
