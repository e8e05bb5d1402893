// Package timeline computes the contiguous sequence of calendar days the
// chart renders as columns.
package timeline

import (
	"time"

	"gantty/internal/dateutil"
	"gantty/internal/models"
)

// Padding is the number of days added on each side of the task span so
// bars never touch the chart edge.
const Padding = 3

// Range is an inclusive, contiguous run of UTC-midnight days.
type Range struct {
	Days []time.Time
}

// Compute derives the visible range from the tasks in view. With no tasks
// the range is the full current UTC month of today; otherwise it spans
// from the earliest start minus Padding to the latest end plus Padding.
func Compute(tasks []models.Task, today time.Time) Range {
	if len(tasks) == 0 {
		first, last := dateutil.MonthBounds(today)
		return spanDays(first, last)
	}

	minStart := dateutil.Normalize(tasks[0].StartDate.Time)
	maxEnd := dateutil.Normalize(tasks[0].EndDate.Time)
	for _, t := range tasks[1:] {
		if s := dateutil.Normalize(t.StartDate.Time); s.Before(minStart) {
			minStart = s
		}
		if e := dateutil.Normalize(t.EndDate.Time); e.After(maxEnd) {
			maxEnd = e
		}
	}

	return spanDays(dateutil.AddDays(minStart, -Padding), dateutil.AddDays(maxEnd, Padding))
}

func spanDays(first, last time.Time) Range {
	n := dateutil.DaysBetween(first, last) + 1
	days := make([]time.Time, 0, n)
	for d := first; !d.After(last); d = dateutil.AddDays(d, 1) {
		days = append(days, d)
	}
	return Range{Days: days}
}

// Start returns the first visible day.
func (r Range) Start() time.Time {
	if len(r.Days) == 0 {
		return time.Time{}
	}
	return r.Days[0]
}

// End returns the last visible day.
func (r Range) End() time.Time {
	if len(r.Days) == 0 {
		return time.Time{}
	}
	return r.Days[len(r.Days)-1]
}

// Len returns the number of visible days.
func (r Range) Len() int { return len(r.Days) }

// IndexOf returns the column index of day within the range, or -1 when the
// day falls outside it.
func (r Range) IndexOf(day time.Time) int {
	if len(r.Days) == 0 {
		return -1
	}
	i := dateutil.DaysBetween(r.Days[0], day)
	if i < 0 || i >= len(r.Days) {
		return -1
	}
	return i
}
