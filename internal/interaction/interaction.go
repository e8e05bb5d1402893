// Package interaction converts pointer gestures on task bars into
// calendar-day edits. It is deliberately free of any UI framework so the
// snap math and clamping rules can be tested directly; the chart view
// feeds it mouse coordinates and applies the commits it produces.
package interaction

import (
	"math"
	"time"

	"gantty/internal/models"
)

// Edge identifies which end of a bar a resize gesture grabs.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Mode is the gesture state. A bar is never dragging and resizing at once.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

// SuppressWindow is how long bar clicks are swallowed after a gesture that
// actually moved, so the release ending a drag does not also open the
// editor.
const SuppressWindow = 100 * time.Millisecond

// CellsToDays converts a horizontal cell delta into whole days, rounding
// half away from zero so that crossing the midpoint of a day column snaps
// to the next day.
func CellsToDays(deltaCells, dayWidth int) int {
	if dayWidth <= 0 {
		return 0
	}
	return int(math.Round(float64(deltaCells) / float64(dayWidth)))
}

// CommitKind says what a finished gesture asks for.
type CommitKind int

const (
	// CommitNone: nothing to do (gesture cancelled or zero-movement resize).
	CommitNone CommitKind = iota
	// CommitClick: a press-release with no movement; open the task editor.
	CommitClick
	// CommitMove: shift both dates by Days, preserving duration.
	CommitMove
	// CommitResizeStart, CommitResizeEnd: shift one edge by Days, clamped.
	CommitResizeStart
	CommitResizeEnd
)

// Commit is the outcome of a finished gesture.
type Commit struct {
	Kind   CommitKind
	TaskID int64
	Days   int
}

// Gesture is the per-chart drag/resize state machine. The zero value is
// Idle.
type Gesture struct {
	mode     Mode
	edge     Edge
	taskID   int64
	startX   int
	dayWidth int
	offset   int
	moved    bool
}

// Mode reports the current state.
func (g *Gesture) Mode() Mode { return g.mode }

// Active reports whether a gesture is in progress. Only while active does
// the chart listen for motion and release events; idle bars are inert.
func (g *Gesture) Active() bool { return g.mode != Idle }

// TaskID returns the task the active gesture is editing.
func (g *Gesture) TaskID() int64 { return g.taskID }

// Offset returns the current preview day-offset. The task's stored dates
// are untouched until End; only the rendered position uses this.
func (g *Gesture) Offset() int { return g.offset }

// Edge returns which edge a resize is holding.
func (g *Gesture) Edge() Edge { return g.edge }

// BeginDrag starts a whole-bar move from cell x. Ignored if a gesture is
// already active.
func (g *Gesture) BeginDrag(taskID int64, x, dayWidth int) {
	if g.mode != Idle {
		return
	}
	*g = Gesture{mode: Dragging, taskID: taskID, startX: x, dayWidth: dayWidth}
}

// BeginResize starts an edge resize from cell x.
func (g *Gesture) BeginResize(taskID int64, edge Edge, x, dayWidth int) {
	if g.mode != Idle {
		return
	}
	*g = Gesture{mode: Resizing, edge: edge, taskID: taskID, startX: x, dayWidth: dayWidth}
}

// Move updates the preview with the pointer now at cell x. It returns true
// only when the day-offset actually changed, so callers can coalesce the
// fire-hose of motion events into at most one re-render per day crossed.
func (g *Gesture) Move(x int) bool {
	if g.mode == Idle {
		return false
	}
	days := CellsToDays(x-g.startX, g.dayWidth)
	if days != 0 {
		g.moved = true
	}
	if days == g.offset {
		return false
	}
	g.offset = days
	return true
}

// End finishes the gesture with the pointer at cell x and returns what to
// commit. The state machine returns to Idle.
func (g *Gesture) End(x int) Commit {
	if g.mode == Idle {
		return Commit{Kind: CommitNone}
	}
	g.Move(x)

	c := Commit{TaskID: g.taskID, Days: g.offset}
	switch {
	case g.mode == Dragging && g.offset != 0:
		c.Kind = CommitMove
	case g.mode == Dragging && !g.moved:
		// Never left the starting day: that was a click, not a drag.
		c.Kind = CommitClick
	case g.mode == Resizing && g.offset != 0 && g.edge == EdgeStart:
		c.Kind = CommitResizeStart
	case g.mode == Resizing && g.offset != 0 && g.edge == EdgeEnd:
		c.Kind = CommitResizeEnd
	default:
		c.Kind = CommitNone
	}

	*g = Gesture{}
	return c
}

// Cancel abandons the gesture without committing.
func (g *Gesture) Cancel() {
	*g = Gesture{}
}

// ApplyMove shifts both task dates by days. Duration is preserved exactly.
func ApplyMove(t models.Task, days int) (start, end models.Date) {
	return t.StartDate.AddDays(days), t.EndDate.AddDays(days)
}

// ApplyResize shifts one edge by days and returns the new date for that
// edge only. An offset that would invert the range is clamped to keep a
// minimum one-day duration; that is the designed behavior, not an error.
func ApplyResize(t models.Task, edge Edge, days int) models.Date {
	switch edge {
	case EdgeStart:
		newStart := t.StartDate.AddDays(days)
		if !newStart.Before(t.EndDate.Time) {
			newStart = t.EndDate.AddDays(-1)
		}
		return newStart
	default:
		newEnd := t.EndDate.AddDays(days)
		if !newEnd.After(t.StartDate.Time) {
			newEnd = t.StartDate.AddDays(1)
		}
		return newEnd
	}
}

// ClickGuard swallows clicks for a short window after a moving gesture.
type ClickGuard struct {
	until time.Time
}

// Arm suppresses clicks until now+SuppressWindow.
func (c *ClickGuard) Arm(now time.Time) {
	c.until = now.Add(SuppressWindow)
}

// Suppressed reports whether a click at now should be ignored.
func (c *ClickGuard) Suppressed(now time.Time) bool {
	return now.Before(c.until)
}
