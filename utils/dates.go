package utils

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted from clients and historical data.
const (
	DateLayoutISO = "2006-01-02"
	DateLayoutDMY = "02-01-2006"
)

type dateKind int

const (
	dateEmpty dateKind = iota
	dateString
	dateNumber
	dateTime
	dateOther
)

// DateValue is the boundary representation of a date field: a tagged value
// holding whatever the caller supplied (string, integer, canonical time, or
// nothing). Normalize resolves it to a calendar date; inputs that cannot be
// resolved are not an error, they normalize to ok=false and keep the
// original value for diagnostics.
type DateValue struct {
	kind dateKind
	s    string
	n    int64
	t    time.Time
}

func DateFromString(s string) DateValue { return DateValue{kind: dateString, s: s} }
func DateFromInt(n int64) DateValue     { return DateValue{kind: dateNumber, n: n} }
func DateFromTime(t time.Time) DateValue {
	return DateValue{kind: dateTime, t: t}
}

// UnmarshalJSON captures the raw scalar without guessing: strings stay
// strings, integral numbers stay numbers, null stays empty. Non-scalar JSON
// is kept verbatim so Raw() can surface it in the warning log.
func (v *DateValue) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		*v = DateValue{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = DateValue{kind: dateString, s: s}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		if n, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
			*v = DateValue{kind: dateNumber, n: n}
			return nil
		}
	}

	*v = DateValue{kind: dateOther, s: raw}
	return nil
}

// IsSet reports whether the caller supplied any value at all.
func (v DateValue) IsSet() bool { return v.kind != dateEmpty }

// Raw returns the original value for diagnostics.
func (v DateValue) Raw() any {
	switch v.kind {
	case dateString, dateOther:
		return v.s
	case dateNumber:
		return v.n
	case dateTime:
		return v.t
	}
	return nil
}

// Normalize resolves the value to a calendar date (midnight, local time).
//
// Resolution order:
//  1. canonical time values are truncated to their date
//  2. strings parse as 2006-01-02, then 02-01-2006
//  3. integers in [1900, 9999] are bare years, mapped to January 1st
//  4. any other integer is a Unix epoch timestamp
//
// Everything else is unresolvable: ok is false and the caller decides what
// to log. Malformed input never fails the surrounding operation.
func (v DateValue) Normalize() (time.Time, bool) {
	switch v.kind {
	case dateTime:
		return TruncateToDay(v.t), true
	case dateString:
		s := strings.TrimSpace(v.s)
		if s == "" {
			return time.Time{}, false
		}
		if t, err := time.ParseInLocation(DateLayoutISO, s, time.Local); err == nil {
			return TruncateToDay(t), true
		}
		if t, err := time.ParseInLocation(DateLayoutDMY, s, time.Local); err == nil {
			return TruncateToDay(t), true
		}
		return time.Time{}, false
	case dateNumber:
		if v.n >= 1900 && v.n <= 9999 {
			return time.Date(int(v.n), time.January, 1, 0, 0, 0, 0, time.Local), true
		}
		return TruncateToDay(time.Unix(v.n, 0)), true
	}
	return time.Time{}, false
}

// TruncateToDay strips the time-of-day component, keeping the location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
