// Package dateutil treats every date as a UTC calendar day. All day
// arithmetic in the application goes through these helpers so that adding
// days or diffing dates never shifts across a local timezone boundary.
package dateutil

import (
	"fmt"
	"time"
)

// DayFormat is the bare calendar-day form accepted on input.
const DayFormat = "2006-01-02"

// WireFormat is how dates travel over the CRUD API: ISO-8601 at UTC midnight.
const WireFormat = "2006-01-02T15:04:05.000Z07:00"

// Normalize returns the UTC midnight instant for t's UTC calendar day.
// It is idempotent: Normalize(Normalize(t)) == Normalize(t).
func Normalize(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a UTC midnight instant. The
// components are parsed directly so the result is independent of the local
// timezone.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// Parse accepts either a bare YYYY-MM-DD day or a full RFC 3339 timestamp
// and returns the UTC midnight instant of that day.
func Parse(s string) (time.Time, error) {
	if t, err := ParseDay(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Normalize(t), nil
}

// AddDays shifts t by n calendar days, staying at UTC midnight.
func AddDays(t time.Time, n int) time.Time {
	return Normalize(t).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)) / (24 * time.Hour))
}

// FormatDay renders t as YYYY-MM-DD using UTC accessors.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// FormatShort renders t like "Jan 5" for column headers.
func FormatShort(t time.Time) string {
	return t.UTC().Format("Jan 2")
}

// Weekday returns t's day of week in UTC. Rendering must use this rather
// than time.Time.Weekday on a local clock, or weekend highlighting is
// off-by-one near midnight in non-UTC locales.
func Weekday(t time.Time) time.Weekday {
	return t.UTC().Weekday()
}

// IsWeekend reports whether t falls on a Saturday or Sunday in UTC.
func IsWeekend(t time.Time) bool {
	wd := Weekday(t)
	return wd == time.Saturday || wd == time.Sunday
}

// SameDay reports whether a and b are the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}

// MonthBounds returns the first and last day of t's UTC month, both at UTC
// midnight.
func MonthBounds(t time.Time) (first, last time.Time) {
	u := t.UTC()
	first = time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}
