package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"training-backend/models"
)

const (
	referenceDateLayout = "20060102"

	// Four digits per calendar date. Allocation rejects past this rather
	// than widening, so issued numbers always match ^\d{8}-\d{4}$.
	maxDailySequence = 9999

	maxAllocationAttempts = 5
)

var (
	// ErrSequenceExhausted means all 9999 sequence numbers for the target
	// date are taken.
	ErrSequenceExhausted = errors.New("reference sequence exhausted for date")

	// ErrAllocationExhausted means concurrent writers kept winning the
	// insert race for every retry attempt.
	ErrAllocationExhausted = errors.New("reference allocation retries exhausted")
)

// NextReferenceNumber computes the next YYYYMMDD-NNNN reference for target,
// given the references already issued for that date. Sequence suffixes are
// compared as integers, not strings, so "0999" < "1000" behaves.
//
// The scan-based approach is deliberate: no counter to desynchronize from
// the store on restart. Uniqueness under concurrent writers is enforced by
// the unique index plus the caller's retry loop.
func NextReferenceNumber(target time.Time, existing []string) (string, error) {
	prefix := target.Format(referenceDateLayout)

	maxSeq := 0
	for _, ref := range existing {
		suffix, ok := strings.CutPrefix(ref, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > maxSeq {
			maxSeq = n
		}
	}

	if maxSeq >= maxDailySequence {
		return "", fmt.Errorf("%w: %s", ErrSequenceExhausted, prefix)
	}
	return fmt.Sprintf("%s-%04d", prefix, maxSeq+1), nil
}

// referencesForDate loads every reference number ever issued for the target
// date, including soft-deleted bookings — issued numbers are never reused.
func referencesForDate(tx *gorm.DB, target time.Time) ([]string, error) {
	prefix := target.Format(referenceDateLayout)
	var refs []string
	err := tx.Unscoped().
		Model(&models.Booking{}).
		Where("reference_number LIKE ?", prefix+"-%").
		Pluck("reference_number", &refs).Error
	return refs, err
}

// isDuplicateKey classifies a store-level uniqueness violation so the
// allocation retry loop can distinguish it from a fatal error.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) && sqErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}
