package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"training-backend/utils"
)

func newTestBackupService(t *testing.T) *BackupService {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "app.db")
	db := openTestDB(t, dbPath)
	return NewBackupService(db, dbPath, filepath.Join(dir, "backups"))
}

func backupFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSnapshot_NamingAndContent(t *testing.T) {
	svc := newTestBackupService(t)
	svc.Now = fixedClock(time.Date(2024, time.September, 9, 1, 2, 3, 0, time.Local))

	path, err := svc.Snapshot(BackupWeekly)
	require.NoError(t, err)
	assert.Equal(t, "weekly_backup_20240909_010203.db", filepath.Base(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSnapshot_AllKinds(t *testing.T) {
	svc := newTestBackupService(t)

	for _, kind := range []string{BackupWeekly, BackupMonthly, BackupFull, BackupIncremental} {
		path, err := svc.Snapshot(kind)
		require.NoError(t, err)
		assert.Contains(t, filepath.Base(path), kind+"_backup_")
	}
}

func TestSnapshot_RejectsUnknownKind(t *testing.T) {
	svc := newTestBackupService(t)
	_, err := svc.Snapshot("hourly")
	assert.Error(t, err)
}

func TestSnapshot_UnavailableWithoutBackingFile(t *testing.T) {
	svc := NewBackupService(nil, "", t.TempDir())
	assert.False(t, svc.Available())
	_, err := svc.Snapshot(BackupFull)
	assert.Error(t, err)
}

func TestTick_WeeklyFiresOncePerDesignatedDay(t *testing.T) {
	svc := newTestBackupService(t)

	now := time.Date(2024, time.September, 8, 0, 0, 0, 0, time.Local) // a Sunday
	require.Equal(t, time.Sunday, now.Weekday())
	svc.Now = func() time.Time { return now }

	// minute ticks through the whole day
	for i := 0; i < 24*60; i++ {
		svc.tick(now)
		now = now.Add(time.Minute)
	}

	files := backupFiles(t, svc.BackupDir)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "weekly_backup_")
}

func TestTick_WeeklySkipsOtherDays(t *testing.T) {
	svc := newTestBackupService(t)

	monday := time.Date(2024, time.September, 9, 1, 30, 0, 0, time.Local)
	require.Equal(t, time.Monday, monday.Weekday())
	svc.Now = fixedClock(monday)

	svc.tick(monday)
	assert.Empty(t, backupFiles(t, svc.BackupDir))
}

func TestTick_WeeklyNotBeforeScheduledTime(t *testing.T) {
	svc := newTestBackupService(t)

	early := time.Date(2024, time.September, 8, 0, 30, 0, 0, time.Local) // Sunday 00:30
	svc.Now = fixedClock(early)
	svc.tick(early)
	assert.Empty(t, backupFiles(t, svc.BackupDir))

	due := early.Add(time.Hour) // 01:30
	svc.Now = fixedClock(due)
	svc.tick(due)
	assert.Len(t, backupFiles(t, svc.BackupDir), 1)
}

func TestTick_MonthlyOnlyOnFirstDay(t *testing.T) {
	svc := newTestBackupService(t)

	first := time.Date(2024, time.October, 1, 2, 5, 0, 0, time.Local)
	svc.Now = fixedClock(first)
	svc.tick(first)

	files := backupFiles(t, svc.BackupDir)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "monthly_backup_")

	second := time.Date(2024, time.October, 2, 2, 5, 0, 0, time.Local)
	svc.Now = fixedClock(second)
	svc.tick(second)
	assert.Len(t, backupFiles(t, svc.BackupDir), 1)
}

func TestTick_FailedOccurrenceNotRetriedInWindow(t *testing.T) {
	dir := t.TempDir()
	// no DB and a missing source file: every snapshot fails
	svc := NewBackupService(nil, filepath.Join(dir, "missing.db"), filepath.Join(dir, "backups"))

	sunday := time.Date(2024, time.September, 8, 1, 0, 0, 0, time.Local)
	svc.Now = fixedClock(sunday)
	svc.tick(sunday)

	// the occurrence is consumed despite the failure
	assert.Equal(t, utils.TruncateToDay(sunday), svc.lastWeekly)
	assert.Empty(t, backupFiles(t, svc.BackupDir))

	// next week's occurrence is still attempted
	nextSunday := sunday.AddDate(0, 0, 7)
	svc.Now = fixedClock(nextSunday)
	svc.tick(nextSunday)
	assert.Equal(t, utils.TruncateToDay(nextSunday), svc.lastWeekly)
}

func TestRun_StopsOnCancel(t *testing.T) {
	svc := newTestBackupService(t)
	svc.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
