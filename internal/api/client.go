// Package api is the client for the gantty CRUD server. It is a thin
// wrapper over net/http: JSON in, JSON out, non-2xx responses surfaced as
// errors carrying the server's message.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gantty/internal/models"
	"gantty/internal/order"
)

// Error is a non-2xx response from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == http.StatusNotFound
}

// Client talks to one gantty server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			msg = payload.Error
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ProjectCreate is the POST /projects payload.
type ProjectCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ProjectUpdate is the PUT /projects/{id} payload; nil fields are not sent.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// TaskCreate is the POST /tasks payload.
type TaskCreate struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	StartDate   models.Date `json:"startDate"`
	EndDate     models.Date `json:"endDate"`
	Completed   bool        `json:"completed,omitempty"`
	ProjectID   int64       `json:"projectId"`
	Order       *int        `json:"order,omitempty"`
}

// TaskUpdate is the PUT /tasks/{id} payload; nil fields are not sent, so a
// drag commit carries only dates and a resize commit only the moved edge.
type TaskUpdate struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	StartDate   *models.Date `json:"startDate,omitempty"`
	EndDate     *models.Date `json:"endDate,omitempty"`
	Completed   *bool        `json:"completed,omitempty"`
	ProjectID   *int64       `json:"projectId,omitempty"`
	Order       *int         `json:"order,omitempty"`
}

// ListProjects fetches all projects with tasks embedded, server-sorted.
func (c *Client) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project; the server assigns id and order.
func (c *Client) CreateProject(req ProjectCreate) (*models.Project, error) {
	var p models.Project
	if err := c.do(http.MethodPost, "/projects", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReorderProjects persists a batch of project order keys.
func (c *Client) ReorderProjects(updates []order.Update) error {
	body := struct {
		Projects []order.Update `json:"projects"`
	}{Projects: updates}
	return c.do(http.MethodPatch, "/projects", body, nil)
}

// GetProject fetches one project with tasks.
func (c *Client) GetProject(id int64) (*models.Project, error) {
	var p models.Project
	if err := c.do(http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject applies a partial update.
func (c *Client) UpdateProject(id int64, req ProjectUpdate) (*models.Project, error) {
	var p models.Project
	if err := c.do(http.MethodPut, fmt.Sprintf("/projects/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject deletes a project and, through the server, its tasks.
func (c *Client) DeleteProject(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

// ListTasks fetches every task across projects.
func (c *Client) ListTasks() ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task; order defaults server-side to append.
func (c *Client) CreateTask(req TaskCreate) (*models.Task, error) {
	var t models.Task
	if err := c.do(http.MethodPost, "/tasks", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ReorderTasks persists a batch of task order keys.
func (c *Client) ReorderTasks(updates []order.Update) error {
	body := struct {
		Tasks []order.Update `json:"tasks"`
	}{Tasks: updates}
	return c.do(http.MethodPatch, "/tasks", body, nil)
}

// GetTask fetches one task.
func (c *Client) GetTask(id int64) (*models.Task, error) {
	var t models.Task
	if err := c.do(http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask applies a partial update.
func (c *Client) UpdateTask(id int64, req TaskUpdate) (*models.Task, error) {
	var t models.Task
	if err := c.do(http.MethodPut, fmt.Sprintf("/tasks/%d", id), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}
