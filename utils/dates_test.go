package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNormalize_BothStringFormatsRoundTrip(t *testing.T) {
	cases := []struct {
		iso string
		dmy string
	}{
		{"2024-09-09", "09-09-2024"},
		{"2023-12-31", "31-12-2023"},
		{"2024-02-29", "29-02-2024"},
	}
	for _, tc := range cases {
		fromISO, ok := DateFromString(tc.iso).Normalize()
		require.True(t, ok, "iso %s", tc.iso)
		fromDMY, ok := DateFromString(tc.dmy).Normalize()
		require.True(t, ok, "dmy %s", tc.dmy)
		assert.Equal(t, fromISO, fromDMY)
	}
}

func TestNormalize_UnparseableString(t *testing.T) {
	for _, s := range []string{"", "  ", "next tuesday", "2024/09/09", "09.09.2024"} {
		_, ok := DateFromString(s).Normalize()
		assert.False(t, ok, "expected %q to be unparseable", s)
	}
}

func TestNormalize_BareYear(t *testing.T) {
	got, ok := DateFromInt(1995).Normalize()
	require.True(t, ok)
	assert.Equal(t, day(1995, time.January, 1), got)

	// range boundaries
	got, ok = DateFromInt(1900).Normalize()
	require.True(t, ok)
	assert.Equal(t, 1900, got.Year())

	got, ok = DateFromInt(9999).Normalize()
	require.True(t, ok)
	assert.Equal(t, 9999, got.Year())
}

func TestNormalize_EpochTimestamp(t *testing.T) {
	// noon on 2024-09-09, far outside the bare-year range
	ts := time.Date(2024, time.September, 9, 12, 0, 0, 0, time.Local).Unix()
	got, ok := DateFromInt(ts).Normalize()
	require.True(t, ok)
	assert.Equal(t, day(2024, time.September, 9), got)

	// small integers below 1900 are epoch seconds near 1970, not years
	got, ok = DateFromInt(0).Normalize()
	require.True(t, ok)
	assert.Equal(t, TruncateToDay(time.Unix(0, 0)), got)
}

func TestNormalize_CanonicalTimeTruncated(t *testing.T) {
	in := time.Date(2024, time.September, 9, 23, 59, 58, 0, time.Local)
	got, ok := DateFromTime(in).Normalize()
	require.True(t, ok)
	assert.Equal(t, day(2024, time.September, 9), got)
}

func TestNormalize_EmptyValue(t *testing.T) {
	var v DateValue
	assert.False(t, v.IsSet())
	_, ok := v.Normalize()
	assert.False(t, ok)
	assert.Nil(t, v.Raw())
}

func TestDateValue_UnmarshalJSON(t *testing.T) {
	type payload struct {
		D DateValue `json:"d"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-09-09"}`), &p))
	got, ok := p.D.Normalize()
	require.True(t, ok)
	assert.Equal(t, day(2024, time.September, 9), got)

	require.NoError(t, json.Unmarshal([]byte(`{"d":1995}`), &p))
	got, ok = p.D.Normalize()
	require.True(t, ok)
	assert.Equal(t, 1995, got.Year())

	require.NoError(t, json.Unmarshal([]byte(`{"d":null}`), &p))
	assert.False(t, p.D.IsSet())

	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
	assert.False(t, p.D.IsSet())

	// non-scalar input is kept for diagnostics but never parses
	require.NoError(t, json.Unmarshal([]byte(`{"d":{"y":2024}}`), &p))
	_, ok = p.D.Normalize()
	assert.False(t, ok)
	assert.NotNil(t, p.D.Raw())
}

func TestDateValue_RawPreservesOriginal(t *testing.T) {
	assert.Equal(t, "garbage", DateFromString("garbage").Raw())
	assert.Equal(t, int64(1234567890), DateFromInt(1234567890).Raw())
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2024, time.September, 9, 17, 45, 12, 999, time.Local)
	got := TruncateToDay(in)
	assert.Equal(t, day(2024, time.September, 9), got)
	assert.Equal(t, in.Location(), got.Location())
}
