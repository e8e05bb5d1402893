// Package server exposes the CRUD API the gantty client speaks: projects
// and tasks as JSON resources, with batch order updates for reordering.
package server

import (
	"github.com/gin-gonic/gin"

	"gantty/internal/db"
)

// Server is the gantty API server
type Server struct {
	db     *db.DB
	router *gin.Engine
}

// NewServer creates a new API server on top of an opened database.
func NewServer(database *db.DB) *Server {
	router := gin.Default()

	s := &Server{
		db:     database,
		router: router,
	}

	router.GET("/projects", s.handleListProjects)
	router.POST("/projects", s.handleCreateProject)
	router.PATCH("/projects", s.handleReorderProjects)
	router.GET("/projects/:id", s.handleGetProject)
	router.PUT("/projects/:id", s.handleUpdateProject)
	router.DELETE("/projects/:id", s.handleDeleteProject)

	router.GET("/tasks", s.handleListTasks)
	router.POST("/tasks", s.handleCreateTask)
	router.PATCH("/tasks", s.handleReorderTasks)
	router.GET("/tasks/:id", s.handleGetTask)
	router.PUT("/tasks/:id", s.handleUpdateTask)
	router.DELETE("/tasks/:id", s.handleDeleteTask)

	return s
}

// Run starts the server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine {
	return s.router
}
