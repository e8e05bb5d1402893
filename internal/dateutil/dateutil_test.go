package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("PST", -8*3600)),
		time.Date(2024, 12, 31, 23, 0, 0, 0, time.FixedZone("JST", 9*3600)),
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %v", in)
		assert.Equal(t, time.UTC, once.Location())
		assert.Zero(t, once.Hour())
		assert.Zero(t, once.Minute())
	}
}

func TestNormalizeUsesUTCDay(t *testing.T) {
	// 23:00 on Mar 1 in UTC+9 is 14:00 on Mar 1 UTC; the UTC day wins.
	in := time.Date(2024, 3, 1, 23, 0, 0, 0, time.FixedZone("JST", 9*3600))
	got := Normalize(in)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)

	// 01:00 on Mar 2 in UTC+9 is 16:00 on Mar 1 UTC.
	in = time.Date(2024, 3, 2, 1, 0, 0, 0, time.FixedZone("JST", 9*3600))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Normalize(in))
}

func TestParseDayIsTimezoneInvariant(t *testing.T) {
	// The string must parse to the same instant regardless of the machine's
	// local zone, so the components are parsed directly in UTC.
	orig := time.Local
	defer func() { time.Local = orig }()

	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, zone := range []*time.Location{
		time.UTC,
		time.FixedZone("NZDT", 13*3600),
		time.FixedZone("HST", -10*3600),
	} {
		time.Local = zone
		got, err := ParseDay("2024-03-01")
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "zone %v: got %v", zone, got)
	}
}

func TestParseAcceptsDayAndRFC3339(t *testing.T) {
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	got, err := Parse("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = Parse("2024-01-10T00:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// A mid-day timestamp collapses to its UTC day.
	got, err = Parse("2024-01-10T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Parse("not a date")
	assert.Error(t, err)
}

func TestAddDaysAndDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), AddDays(start, 3))
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), AddDays(start, -3))
	assert.Equal(t, start, AddDays(start, 0))

	// Month and year boundaries.
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		AddDays(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		AddDays(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 1))

	assert.Equal(t, 3, DaysBetween(start, AddDays(start, 3)))
	assert.Equal(t, -3, DaysBetween(start, AddDays(start, -3)))
	assert.Equal(t, 0, DaysBetween(start, start))

	// Non-midnight inputs are normalized before diffing.
	assert.Equal(t, 1, DaysBetween(
		time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 11, 1, 0, 0, 0, time.UTC),
	))
}

func TestFormatUsesUTCFields(t *testing.T) {
	// 23:30 UTC on Jan 5 is already Jan 6 in UTC+1; the label must say Jan 5.
	in := time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-05", FormatDay(in))
	assert.Equal(t, "Jan 5", FormatShort(in))
	assert.Equal(t, time.Friday, Weekday(in))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)))  // Sat
	assert.True(t, IsWeekend(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)))  // Sun
	assert.False(t, IsWeekend(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))) // Mon
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), last) // leap year

	first, last = MonthBounds(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), last)
}
