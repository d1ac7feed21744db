package validation

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Violations maps field names to machine-readable failure codes.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MaxLen(field, value string, maxChars int, v Violations) {
	if utf8.RuneCountInString(value) > maxChars {
		v[field] = "too_long"
	}
}

func MinFloat(field string, val, minVal float64, v Violations) {
	if val < minVal {
		v[field] = "below_minimum"
	}
}

func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "below_minimum"
	}
}

// NotFuture rejects calendar dates past today. Time-of-day is ignored so a
// date entered "today" always passes regardless of clock skew within the day.
func NotFuture(field string, date, now time.Time, v Violations) {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	dateOnly := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	if dateOnly.After(nowOnly) {
		v[field] = "future_date"
	}
}
