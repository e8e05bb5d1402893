package db

import (
	"database/sql"

	"gantty/internal/dateutil"
	"gantty/internal/models"
	"gantty/internal/order"
)

const taskColumns = `
	t.id, t.project_id, t.name, t.description, t.start_date, t.end_date,
	t.completed, t.sort_order, t.created_at, t.updated_at`

func scanTask(scan func(...interface{}) error, t *models.Task) error {
	var startDay, endDay string
	if err := scan(&t.ID, &t.ProjectID, &t.Name, &t.Description, &startDay, &endDay,
		&t.Completed, &t.Order, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}

	start, err := dateutil.ParseDay(startDay)
	if err != nil {
		return err
	}
	end, err := dateutil.ParseDay(endDay)
	if err != nil {
		return err
	}
	t.StartDate = models.Date{Time: start}
	t.EndDate = models.Date{Time: end}
	return nil
}

// CreateTask creates a task. When order is nil the task is appended: it
// gets max existing order in the project + 1, or 1 for the first task.
func (db *DB) CreateTask(projectID int64, name, description string, start, end models.Date, completed bool, order *int) (*models.Task, error) {
	key := 0
	if order != nil {
		key = *order
	} else {
		err := db.QueryRow(`
			SELECT COALESCE(MAX(sort_order) + 1, 1) FROM tasks WHERE project_id = ?
		`, projectID).Scan(&key)
		if err != nil {
			return nil, err
		}
	}

	result, err := db.Exec(`
		INSERT INTO tasks (project_id, name, description, start_date, end_date, completed, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, projectID, name, description,
		dateutil.FormatDay(start.Time), dateutil.FormatDay(end.Time), completed, key)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetTask(id)
}

// GetTask retrieves a task by ID, decorated with its project's display
// name and color.
func (db *DB) GetTask(id int64) (*models.Task, error) {
	t := &models.Task{}
	row := db.QueryRow(`
		SELECT `+taskColumns+`, p.name, p.color
		FROM tasks t JOIN projects p ON p.id = t.project_id
		WHERE t.id = ?
	`, id)
	err := scanTask(func(dest ...interface{}) error {
		return row.Scan(append(dest, &t.ProjectName, &t.ProjectColor)...)
	}, t)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns all tasks for a project, sorted by (sort_order asc, id asc).
func (db *DB) ListTasks(projectID int64) ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT `+taskColumns+`
		FROM tasks t
		WHERE t.project_id = ?
		ORDER BY t.sort_order ASC, t.id ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows.Scan, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListAllTasks returns every task across projects with project display
// fields embedded, sorted by (project_id asc, sort_order asc).
func (db *DB) ListAllTasks() ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT ` + taskColumns + `, p.name, p.color
		FROM tasks t JOIN projects p ON p.id = t.project_id
		ORDER BY t.project_id ASC, t.sort_order ASC, t.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		err := scanTask(func(dest ...interface{}) error {
			return rows.Scan(append(dest, &t.ProjectName, &t.ProjectColor)...)
		}, &t)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// TaskPatch carries the optional fields of a task update; nil fields are
// left unchanged. Drag and resize commits send date-only patches.
type TaskPatch struct {
	Name        *string
	Description *string
	StartDate   *models.Date
	EndDate     *models.Date
	Completed   *bool
	ProjectID   *int64
	Order       *int
}

// UpdateTask applies the non-nil patch fields.
func (db *DB) UpdateTask(id int64, patch TaskPatch) (*models.Task, error) {
	sets := "updated_at = CURRENT_TIMESTAMP"
	args := []interface{}{}

	if patch.Name != nil {
		sets += ", name = ?"
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets += ", description = ?"
		args = append(args, *patch.Description)
	}
	if patch.StartDate != nil {
		sets += ", start_date = ?"
		args = append(args, dateutil.FormatDay(patch.StartDate.Time))
	}
	if patch.EndDate != nil {
		sets += ", end_date = ?"
		args = append(args, dateutil.FormatDay(patch.EndDate.Time))
	}
	if patch.Completed != nil {
		sets += ", completed = ?"
		args = append(args, *patch.Completed)
	}
	if patch.ProjectID != nil {
		sets += ", project_id = ?"
		args = append(args, *patch.ProjectID)
	}
	if patch.Order != nil {
		sets += ", sort_order = ?"
		args = append(args, *patch.Order)
	}
	args = append(args, id)

	result, err := db.Exec("UPDATE tasks SET "+sets+" WHERE id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, sql.ErrNoRows
	}

	return db.GetTask(id)
}

// UpdateTaskOrders batch-updates order keys inside one transaction.
func (db *DB) UpdateTaskOrders(updates []order.Update) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE tasks SET sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range updates {
		if _, err := stmt.Exec(u.Order, u.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteTask deletes a task.
func (db *DB) DeleteTask(id int64) error {
	result, err := db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
