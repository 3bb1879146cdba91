package services

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var referenceFormat = regexp.MustCompile(`^\d{8}-\d{4}$`)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNextReferenceNumber_EmptySet(t *testing.T) {
	ref, err := NextReferenceNumber(date(2024, time.September, 9), nil)
	require.NoError(t, err)
	assert.Equal(t, "20240909-0001", ref)
}

func TestNextReferenceNumber_Increments(t *testing.T) {
	existing := []string{"20240909-0001", "20240909-0002"}
	ref, err := NextReferenceNumber(date(2024, time.September, 9), existing)
	require.NoError(t, err)
	assert.Equal(t, "20240909-0003", ref)
}

func TestNextReferenceNumber_IntegerSuffixOrdering(t *testing.T) {
	// "0999" < "1000" as strings too, but "1000" > "999" only when the
	// suffix is compared numerically; make sure four digits don't trick
	// a lexicographic max.
	existing := []string{"20240909-0999", "20240909-1000"}
	ref, err := NextReferenceNumber(date(2024, time.September, 9), existing)
	require.NoError(t, err)
	assert.Equal(t, "20240909-1001", ref)
}

func TestNextReferenceNumber_IgnoresOtherDates(t *testing.T) {
	existing := []string{"20240908-0007", "20240910-0004", "garbage", "20240909-xyz"}
	ref, err := NextReferenceNumber(date(2024, time.September, 9), existing)
	require.NoError(t, err)
	assert.Equal(t, "20240909-0001", ref)
}

func TestNextReferenceNumber_Format(t *testing.T) {
	for _, seq := range []int{1, 42, 999, 1000, 9998} {
		existing := []string{fmt.Sprintf("20241231-%04d", seq)}
		ref, err := NextReferenceNumber(date(2024, time.December, 31), existing)
		require.NoError(t, err)
		assert.Regexp(t, referenceFormat, ref)
	}
}

func TestNextReferenceNumber_SequenceExhausted(t *testing.T) {
	existing := []string{"20240909-9999"}
	_, err := NextReferenceNumber(date(2024, time.September, 9), existing)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSequenceExhausted)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, isDuplicateKey(nil))
	assert.False(t, isDuplicateKey(errors.New("connection reset")))
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(errors.New("UNIQUE constraint failed: bookings.reference_number")))
	assert.True(t, isDuplicateKey(errors.New("Error 1062: Duplicate entry '20240909-0001'")))
}
