package db

import (
	"database/sql"

	"gantty/internal/models"
	"gantty/internal/order"
)

// CreateProject creates a new project. The order key is max existing + 1
// (or 0 when the table is empty) so new projects sort first under the
// descending display convention.
func (db *DB) CreateProject(name, description, color string) (*models.Project, error) {
	if color == "" {
		color = models.DefaultColor
	}

	var nextOrder int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(sort_order) + 1, 0) FROM projects
	`).Scan(&nextOrder)
	if err != nil {
		return nil, err
	}

	result, err := db.Exec(`
		INSERT INTO projects (name, description, color, sort_order) VALUES (?, ?, ?, ?)
	`, name, description, color, nextOrder)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetProject(id)
}

// GetProject retrieves a project by ID with its tasks sorted by
// (sort_order asc, id asc).
func (db *DB) GetProject(id int64) (*models.Project, error) {
	p := &models.Project{}
	err := db.QueryRow(`
		SELECT id, name, description, color, sort_order, created_at, updated_at
		FROM projects WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.Order, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	tasks, err := db.ListTasks(id)
	if err != nil {
		return nil, err
	}
	p.Tasks = tasks

	return p, nil
}

// ListProjects returns all projects with their tasks embedded, sorted by
// (sort_order desc, id asc).
func (db *DB) ListProjects() ([]models.Project, error) {
	rows, err := db.Query(`
		SELECT id, name, description, color, sort_order, created_at, updated_at
		FROM projects ORDER BY sort_order DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.Order, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		tasks, err := db.ListTasks(projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Tasks = tasks
	}

	return projects, nil
}

// ProjectPatch carries the optional fields of a project update; nil
// fields are left unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// UpdateProject applies the non-nil patch fields.
func (db *DB) UpdateProject(id int64, patch ProjectPatch) (*models.Project, error) {
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
	if patch.Color != nil {
		sets += ", color = ?"
		args = append(args, *patch.Color)
	}
	args = append(args, id)

	result, err := db.Exec("UPDATE projects SET "+sets+" WHERE id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, sql.ErrNoRows
	}

	return db.GetProject(id)
}

// UpdateProjectOrders batch-updates order keys inside one transaction, so
// a reorder either lands completely or not at all.
func (db *DB) UpdateProjectOrders(updates []order.Update) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE projects SET sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
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

// DeleteProject deletes a project; its tasks go with it via the cascade.
func (db *DB) DeleteProject(id int64) error {
	result, err := db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
