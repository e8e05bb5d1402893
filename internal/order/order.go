// Package order owns the persisted sort keys for tasks and projects and
// plans the batched key updates a drag-reorder needs.
//
// Tasks sort by ascending order key; projects by descending key, so a
// higher key puts a project earlier in the sidebar. Ties break by id.
package order

import (
	"sort"

	"gantty/internal/models"
)

// TaskGap is the slack left between consecutive task order keys so a
// single task can later be slotted between two others without renumbering
// the whole list.
const TaskGap = 10

// Update is one row of a batched order write.
type Update struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

// SortTasks sorts tasks in place by (order asc, id asc).
func SortTasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Order != tasks[j].Order {
			return tasks[i].Order < tasks[j].Order
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// SortProjects sorts projects in place by (order desc, id asc).
func SortProjects(projects []models.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Order != projects[j].Order {
			return projects[i].Order > projects[j].Order
		}
		return projects[i].ID < projects[j].ID
	})
}

// SortFlattened sorts a cross-project task listing: incomplete before
// completed, then by start date, then id.
func SortFlattened(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		if !tasks[i].StartDate.Equal(tasks[j].StartDate.Time) {
			return tasks[i].StartDate.Before(tasks[j].StartDate.Time)
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// PlanTaskReorder maps a new visual sequence of task ids to persisted
// keys: index*TaskGap. Every task in the sequence gets a row; callers may
// filter unchanged ones.
func PlanTaskReorder(ids []int64) []Update {
	updates := make([]Update, len(ids))
	for i, id := range ids {
		updates[i] = Update{ID: id, Order: i * TaskGap}
	}
	return updates
}

// PlanProjectReorder maps a new visual sequence of project ids to keys
// consistent with the descending display convention: the first project
// gets the highest key.
func PlanProjectReorder(ids []int64) []Update {
	n := len(ids)
	updates := make([]Update, n)
	for i, id := range ids {
		updates[i] = Update{ID: id, Order: n - 1 - i}
	}
	return updates
}

// NextTaskOrder is the key for a task appended to a project: one past the
// current maximum, or 1 for the first task.
func NextTaskOrder(tasks []models.Task) int {
	next := 1
	for _, t := range tasks {
		if t.Order+1 > next {
			next = t.Order + 1
		}
	}
	return next
}

// NextProjectOrder is the key for a newly created project: one past the
// current maximum so it sorts first, or 0 for the first project.
func NextProjectOrder(projects []models.Project) int {
	if len(projects) == 0 {
		return 0
	}
	next := 0
	for _, p := range projects {
		if p.Order+1 > next {
			next = p.Order + 1
		}
	}
	return next
}
