// Package core holds the record store, the aggregation functions over it,
// and the account reconciliation rules.
//
// This file contains the numeric and date coercion helpers. The tracker
// never rejects bad input on these paths: a field that does not parse as
// a number counts as zero, and a date that does not parse is simply
// excluded from calendar aggregation.
package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ToAmount coerces a free-form input string to a number. It accepts both
// dot and comma decimal separators. Anything unparseable, including the
// empty string, coerces to 0 rather than erroring.
func ToAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseDay parses an ISO date, tolerating a trailing time portion.
// The second result is false when the date is missing or unparseable.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns the current date in ISO form.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}
