// services/backup.go
package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"training-backend/utils"
)

// Snapshot kinds. Weekly and monthly are fired by the scheduler; full and
// incremental come from the manual backup endpoint.
const (
	BackupWeekly      = "weekly"
	BackupMonthly     = "monthly"
	BackupFull        = "full"
	BackupIncremental = "incremental"
)

const backupTimestampLayout = "20060102_150405"

// BackupService copies the sqlite backing file to dated snapshot artifacts
// and runs the calendar schedule. The loop wakes once a minute and keeps
// explicit last-fired state per schedule, so an occurrence fires at most
// once no matter how often the loop wakes inside its window.
type BackupService struct {
	DB         *gorm.DB
	SourcePath string // sqlite database file; empty when running on mysql
	BackupDir  string
	Now        func() time.Time

	Interval  time.Duration // tick period, default one minute
	WeeklyDay time.Weekday  // default Sunday
	WeeklyAt  time.Duration // time of day, default 01:00
	MonthlyAt time.Duration // time of day on the 1st, default 02:00

	lastWeekly  time.Time // day the weekly occurrence last fired
	lastMonthly time.Time
}

func NewBackupService(db *gorm.DB, sourcePath, backupDir string) *BackupService {
	return &BackupService{
		DB:         db,
		SourcePath: sourcePath,
		BackupDir:  backupDir,
		Now:        time.Now,
		Interval:   time.Minute,
		WeeklyDay:  time.Sunday,
		WeeklyAt:   1 * time.Hour,
		MonthlyAt:  2 * time.Hour,
	}
}

func (s *BackupService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Available reports whether the store has a backing artifact to snapshot.
func (s *BackupService) Available() bool {
	return s.SourcePath != ""
}

func validBackupKind(kind string) bool {
	switch kind {
	case BackupWeekly, BackupMonthly, BackupFull, BackupIncremental:
		return true
	}
	return false
}

// Snapshot writes a consistent point-in-time copy of the backing file to
// {kind}_backup_{YYYYMMDD_HHMMSS}.db under BackupDir and returns its path.
//
// sqlite's VACUUM INTO produces the image without holding the write lock
// for the duration of the copy; if it fails (older sqlite, locked sidecar
// files) a plain file copy of the artifact is attempted instead.
func (s *BackupService) Snapshot(kind string) (string, error) {
	if !validBackupKind(kind) {
		return "", fmt.Errorf("unknown backup kind %q", kind)
	}
	if !s.Available() {
		return "", fmt.Errorf("no backing database file to snapshot")
	}

	if err := os.MkdirAll(s.BackupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	name := fmt.Sprintf("%s_backup_%s.db", kind, s.now().Format(backupTimestampLayout))
	dest := filepath.Join(s.BackupDir, name)

	if s.DB != nil && s.DB.Dialector.Name() == "sqlite" {
		if err := s.DB.Exec("VACUUM INTO ?", dest).Error; err == nil {
			log.Printf("%s backup created: %s", kind, name)
			return dest, nil
		} else {
			log.Printf("warning: VACUUM INTO failed, falling back to file copy: %v", err)
			_ = os.Remove(dest)
		}
	}

	if err := copyFile(s.SourcePath, dest); err != nil {
		return "", fmt.Errorf("failed to copy database file: %w", err)
	}
	log.Printf("%s backup created: %s", kind, name)
	return dest, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Run drives the schedule until ctx is cancelled. An in-flight snapshot
// finishes before the loop exits. Snapshot failures are logged and never
// stop the loop.
func (s *BackupService) Run(ctx context.Context) {
	if !s.Available() {
		log.Println("backup scheduler disabled: store has no file backing artifact")
		return
	}

	interval := s.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("backup scheduler running (weekly %s %s, monthly day 1 %s)",
		s.WeeklyDay, clockString(s.WeeklyAt), clockString(s.MonthlyAt))
	for {
		select {
		case <-ctx.Done():
			log.Println("backup scheduler stopped")
			return
		case <-ticker.C:
			s.tick(s.now())
		}
	}
}

// tick evaluates both schedules at the given wall-clock instant. The
// last-fired day is recorded before the snapshot attempt: a failed
// occurrence is reported, not retried, and the next occurrence proceeds.
func (s *BackupService) tick(now time.Time) {
	day := utils.TruncateToDay(now)

	if now.Weekday() == s.WeeklyDay && !now.Before(day.Add(s.WeeklyAt)) && !s.lastWeekly.Equal(day) {
		s.lastWeekly = day
		if _, err := s.Snapshot(BackupWeekly); err != nil {
			log.Printf("weekly backup failed: %v", err)
		}
	}

	if now.Day() == 1 && !now.Before(day.Add(s.MonthlyAt)) && !s.lastMonthly.Equal(day) {
		s.lastMonthly = day
		if _, err := s.Snapshot(BackupMonthly); err != nil {
			log.Printf("monthly backup failed: %v", err)
		}
	}
}

func clockString(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
