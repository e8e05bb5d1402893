package server

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gantty/internal/db"
	"gantty/internal/models"
	"gantty/internal/order"
)

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) databaseError(c *gin.Context, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.db.ListProjects()
	if err != nil {
		s.databaseError(c, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	project, err := s.db.CreateProject(strings.TrimSpace(req.Name), req.Description, req.Color)
	if err != nil {
		s.databaseError(c, err)
		return
	}
	if project.Tasks == nil {
		project.Tasks = []models.Task{}
	}
	c.JSON(http.StatusCreated, project)
}

type reorderProjectsRequest struct {
	Projects []order.Update `json:"projects"`
}

func (s *Server) handleReorderProjects(c *gin.Context) {
	var req reorderProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Projects) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projects is required"})
		return
	}

	if err := s.db.UpdateProjectOrders(req.Projects); err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(req.Projects)})
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := s.db.GetProject(id)
	if err != nil {
		s.databaseError(c, err)
		return
	}
	if project.Tasks == nil {
		project.Tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, project)
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
		return
	}

	project, err := s.db.UpdateProject(id, db.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.db.DeleteProject(id); err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.db.ListAllTasks()
	if err != nil {
		s.databaseError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

type createTaskRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDate   *models.Date `json:"startDate"`
	EndDate     *models.Date `json:"endDate"`
	Completed   bool         `json:"completed"`
	ProjectID   int64        `json:"projectId"`
	Order       *int         `json:"order"`
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch {
	case strings.TrimSpace(req.Name) == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	case req.ProjectID == 0:
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId is required"})
		return
	case req.StartDate == nil || req.EndDate == nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required"})
		return
	case req.EndDate.Before(req.StartDate.Time):
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must not be before startDate"})
		return
	}

	// Creating against a missing project must 404, not violate the FK.
	if _, err := s.db.GetProject(req.ProjectID); err != nil {
		s.databaseError(c, err)
		return
	}

	task, err := s.db.CreateTask(req.ProjectID, strings.TrimSpace(req.Name), req.Description,
		*req.StartDate, *req.EndDate, req.Completed, req.Order)
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

type reorderTasksRequest struct {
	Tasks []order.Update `json:"tasks"`
}

func (s *Server) handleReorderTasks(c *gin.Context) {
	var req reorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Tasks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tasks is required"})
		return
	}

	if err := s.db.UpdateTaskOrders(req.Tasks); err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(req.Tasks)})
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	task, err := s.db.GetTask(id)
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type updateTaskRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	StartDate   *models.Date `json:"startDate"`
	EndDate     *models.Date `json:"endDate"`
	Completed   *bool        `json:"completed"`
	ProjectID   *int64       `json:"projectId"`
	Order       *int         `json:"order"`
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
		return
	}

	task, err := s.db.UpdateTask(id, db.TaskPatch{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Completed:   req.Completed,
		ProjectID:   req.ProjectID,
		Order:       req.Order,
	})
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.db.DeleteTask(id); err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
