package interaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gantty/internal/models"
)

func TestCellsToDaysRoundsAtHalfColumn(t *testing.T) {
	const width = 100

	cases := []struct {
		delta int
		want  int
	}{
		{0, 0},
		{49, 0}, // 0.49 of a column: stay
		{50, 1}, // exactly half: snap forward
		{51, 1}, // 0.51: next day
		{-49, 0},
		{-51, -1},
		{149, 1},
		{151, 2},
		{-151, -2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CellsToDays(c.delta, width), "delta=%d", c.delta)
	}
}

func TestCellsToDaysNarrowColumns(t *testing.T) {
	// Terminal charts use a handful of cells per day; the snap must still
	// trip at the midpoint.
	assert.Equal(t, 0, CellsToDays(1, 3))
	assert.Equal(t, 1, CellsToDays(2, 3))
	assert.Equal(t, 1, CellsToDays(3, 3))
	assert.Equal(t, -1, CellsToDays(-2, 3))
	assert.Equal(t, 0, CellsToDays(10, 0)) // degenerate width
}

func TestDragCommitsShiftOnRelease(t *testing.T) {
	var g Gesture
	g.BeginDrag(7, 10, 4)
	assert.True(t, g.Active())
	assert.Equal(t, Dragging, g.Mode())

	// Motion previews without committing; only day crossings report change.
	assert.False(t, g.Move(11))
	assert.True(t, g.Move(14)) // +4 cells = +1 day
	assert.Equal(t, 1, g.Offset())
	assert.False(t, g.Move(15))
	assert.True(t, g.Move(22)) // +12 cells = +3 days
	assert.Equal(t, 3, g.Offset())

	c := g.End(22)
	assert.Equal(t, CommitMove, c.Kind)
	assert.Equal(t, int64(7), c.TaskID)
	assert.Equal(t, 3, c.Days)
	assert.False(t, g.Active())
}

func TestDragWithoutMovementIsClick(t *testing.T) {
	var g Gesture
	g.BeginDrag(7, 10, 4)
	g.Move(11) // wiggle inside the starting day

	c := g.End(10)
	assert.Equal(t, CommitClick, c.Kind)
	assert.Equal(t, int64(7), c.TaskID)
}

func TestDragBackToStartAfterMovingIsNotClick(t *testing.T) {
	// Crossed into another day and came back: net-zero shift, but the user
	// was dragging, so neither a move nor an editor-open should fire.
	var g Gesture
	g.BeginDrag(7, 10, 4)
	g.Move(22)
	g.Move(10)

	c := g.End(10)
	assert.Equal(t, CommitNone, c.Kind)
}

func TestResizeCommitsOnlyTheHeldEdge(t *testing.T) {
	var g Gesture
	g.BeginResize(3, EdgeEnd, 30, 4)
	g.Move(38)

	c := g.End(38)
	assert.Equal(t, CommitResizeEnd, c.Kind)
	assert.Equal(t, 2, c.Days)

	g.BeginResize(3, EdgeStart, 30, 4)
	c = g.End(26)
	assert.Equal(t, CommitResizeStart, c.Kind)
	assert.Equal(t, -1, c.Days)
}

func TestGesturesAreMutuallyExclusive(t *testing.T) {
	var g Gesture
	g.BeginDrag(1, 0, 4)
	g.BeginResize(2, EdgeEnd, 0, 4) // ignored while dragging
	assert.Equal(t, Dragging, g.Mode())
	assert.Equal(t, int64(1), g.TaskID())

	g.Cancel()
	assert.False(t, g.Active())
	assert.Equal(t, CommitNone, g.End(0).Kind)
}

func TestApplyMovePreservesDuration(t *testing.T) {
	task := models.Task{
		StartDate: models.Day(2024, 1, 10),
		EndDate:   models.Day(2024, 1, 12),
	}

	start, end := ApplyMove(task, 3)
	assert.Equal(t, models.Day(2024, 1, 13), start)
	assert.Equal(t, models.Day(2024, 1, 15), end)

	start, end = ApplyMove(task, -5)
	assert.Equal(t, models.Day(2024, 1, 5), start)
	assert.Equal(t, models.Day(2024, 1, 7), end)
	assert.Equal(t, 2, int(end.Sub(start.Time).Hours())/24)
}

func TestApplyResizeClampsStartEdge(t *testing.T) {
	task := models.Task{
		StartDate: models.Day(2024, 1, 10),
		EndDate:   models.Day(2024, 1, 15),
	}

	// Ordinary shrink/grow.
	assert.Equal(t, models.Day(2024, 1, 12), ApplyResize(task, EdgeStart, 2))
	assert.Equal(t, models.Day(2024, 1, 8), ApplyResize(task, EdgeStart, -2))

	// Landing exactly on the end, or past it, clamps to end-1.
	assert.Equal(t, models.Day(2024, 1, 14), ApplyResize(task, EdgeStart, 5))
	assert.Equal(t, models.Day(2024, 1, 14), ApplyResize(task, EdgeStart, 40))
}

func TestApplyResizeClampsEndEdge(t *testing.T) {
	task := models.Task{
		StartDate: models.Day(2024, 1, 13),
		EndDate:   models.Day(2024, 1, 15),
	}

	assert.Equal(t, models.Day(2024, 1, 18), ApplyResize(task, EdgeEnd, 3))

	// -5 days would land before the start: clamp to start+1.
	assert.Equal(t, models.Day(2024, 1, 14), ApplyResize(task, EdgeEnd, -5))
	assert.Equal(t, models.Day(2024, 1, 14), ApplyResize(task, EdgeEnd, -2))
}

func TestClickGuard(t *testing.T) {
	var cg ClickGuard
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, cg.Suppressed(now))
	cg.Arm(now)
	assert.True(t, cg.Suppressed(now.Add(50*time.Millisecond)))
	assert.False(t, cg.Suppressed(now.Add(150*time.Millisecond)))
}
