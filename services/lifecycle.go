// services/lifecycle.go
package services

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"training-backend/models"
	"training-backend/utils"
)

// LifecycleService advances bookings whose training date has passed.
// Now is the injected clock, defaulting to time.Now.
type LifecycleService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{DB: db, Now: time.Now}
}

func (s *LifecycleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AdvanceExpired moves every pending or approved booking whose training date
// is strictly before today to completed, and returns how many rows changed.
//
// A single UPDATE keeps the sweep idempotent and safe against concurrent
// CRUD traffic: re-running with nothing newly expired is a no-op, and the
// result is the same whether it runs hourly or once a day. A training date
// equal to today is not yet expired.
func (s *LifecycleService) AdvanceExpired() (int64, error) {
	today := utils.TruncateToDay(s.now())

	res := s.DB.Model(&models.Booking{}).
		Where("training_date IS NOT NULL AND training_date < ?", today).
		Where("status IN ?", []string{models.StatusPending, models.StatusApproved}).
		Update("status", models.StatusCompleted)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("lifecycle sweep advanced %d bookings to completed", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

// Run invokes the sweep on a fixed interval until ctx is cancelled. Errors
// are logged and the loop keeps going; the next tick retries the remainder.
func (s *LifecycleService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("lifecycle sweep running every %s", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("lifecycle sweep stopped")
			return
		case <-ticker.C:
			if _, err := s.AdvanceExpired(); err != nil {
				log.Printf("lifecycle sweep failed: %v", err)
			}
		}
	}
}
