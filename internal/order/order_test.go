package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gantty/internal/models"
)

func TestPlanTaskReorderAssignsGappedKeys(t *testing.T) {
	// [A,B,C] rearranged to [C,A,B].
	updates := PlanTaskReorder([]int64{3, 1, 2})

	assert.Equal(t, []Update{
		{ID: 3, Order: 0},
		{ID: 1, Order: 10},
		{ID: 2, Order: 20},
	}, updates)
}

func TestTaskReorderRoundTripsThroughSort(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Order: 0},
		{ID: 2, Order: 10},
		{ID: 3, Order: 20},
	}

	byID := map[int64]*models.Task{}
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}
	for _, u := range PlanTaskReorder([]int64{3, 1, 2}) {
		byID[u.ID].Order = u.Order
	}

	SortTasks(tasks)
	assert.Equal(t, []int64{3, 1, 2}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestPlanProjectReorderDescending(t *testing.T) {
	updates := PlanProjectReorder([]int64{9, 4, 7})

	// Index 0 gets the highest key so it displays first.
	assert.Equal(t, []Update{
		{ID: 9, Order: 2},
		{ID: 4, Order: 1},
		{ID: 7, Order: 0},
	}, updates)

	projects := []models.Project{{ID: 4, Order: 1}, {ID: 7, Order: 0}, {ID: 9, Order: 2}}
	SortProjects(projects)
	assert.Equal(t, int64(9), projects[0].ID)
	assert.Equal(t, int64(4), projects[1].ID)
	assert.Equal(t, int64(7), projects[2].ID)
}

func TestSortTasksBreaksTiesByID(t *testing.T) {
	tasks := []models.Task{
		{ID: 5, Order: 10},
		{ID: 2, Order: 10},
		{ID: 9, Order: 0},
	}
	SortTasks(tasks)
	assert.Equal(t, []int64{9, 2, 5}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestSortProjectsBreaksTiesByID(t *testing.T) {
	projects := []models.Project{
		{ID: 3, Order: 5},
		{ID: 1, Order: 5},
		{ID: 2, Order: 8},
	}
	SortProjects(projects)
	assert.Equal(t, []int64{2, 1, 3}, []int64{projects[0].ID, projects[1].ID, projects[2].ID})
}

func TestSortFlattenedIncompleteFirstThenStartDate(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Completed: true, StartDate: models.Day(2024, 1, 1)},
		{ID: 2, Completed: false, StartDate: models.Day(2024, 1, 5)},
		{ID: 3, Completed: false, StartDate: models.Day(2024, 1, 2)},
		{ID: 4, Completed: true, StartDate: models.Day(2023, 12, 1)},
	}
	SortFlattened(tasks)
	assert.Equal(t, []int64{3, 2, 4, 1}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID, tasks[3].ID})
}

func TestNextTaskOrder(t *testing.T) {
	assert.Equal(t, 1, NextTaskOrder(nil))
	assert.Equal(t, 21, NextTaskOrder([]models.Task{{Order: 0}, {Order: 20}, {Order: 10}}))
}

func TestNextProjectOrder(t *testing.T) {
	assert.Equal(t, 0, NextProjectOrder(nil))
	assert.Equal(t, 3, NextProjectOrder([]models.Project{{Order: 2}, {Order: 0}}))
}
