// Package store is the client's in-memory source of truth for projects
// and tasks. Every write goes through an optimistic protocol: apply to
// the cache, notify subscribers, then talk to the server and either
// reconcile with its authoritative response or roll back.
package store

import (
	"sync"

	"gantty/internal/api"
	"gantty/internal/models"
	"gantty/internal/order"
)

// Event tells subscribers what changed so views can refresh without a
// full reload.
type Event int

const (
	// EventTasksChanged: task data changed in some project.
	EventTasksChanged Event = iota
	// EventProjectsChanged: the project list or a project's fields changed.
	EventProjectsChanged
)

// Scope says which tasks are in view: one project, or all of them. It
// replaces the magic all-projects pseudo-project some trackers use.
type Scope struct {
	all       bool
	projectID int64
}

// ScopeAll views every project's tasks flattened together.
func ScopeAll() Scope { return Scope{all: true} }

// ScopeProject views a single project.
func ScopeProject(id int64) Scope { return Scope{projectID: id} }

// IsAll reports whether this is the flattened view.
func (s Scope) IsAll() bool { return s.all }

// ProjectID returns the viewed project id; ok is false for the
// all-projects scope.
func (s Scope) ProjectID() (int64, bool) {
	if s.all {
		return 0, false
	}
	return s.projectID, true
}

// Store caches projects with their tasks and mediates all server access.
type Store struct {
	client *api.Client

	mu       sync.Mutex
	projects []models.Project
	loading  bool
	lastErr  string
	tempID   int64
	taskSeq  map[int64]uint64
	subs     []chan Event

	// background silent updates, awaited by Flush
	wg sync.WaitGroup
}

// New creates a store backed by the given API client.
func New(client *api.Client) *Store {
	return &Store{
		client:  client,
		taskSeq: make(map[int64]uint64),
	}
}

// Subscribe returns a channel that receives change events. The channel is
// buffered and never blocks the store; a slow subscriber misses nothing
// in practice because events are only refresh hints.
func (s *Store) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 16)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) notify(e Event) {
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Load replaces the cache with the server's project list.
func (s *Store) Load() error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	projects, err := s.client.ListProjects()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.projects = projects
	s.lastErr = ""
	s.notify(EventProjectsChanged)
	s.notify(EventTasksChanged)
	return nil
}

// Loading reports whether a Load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last operation error message, empty when healthy.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearErr resets the error message.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// Flush waits for outstanding silent updates. Tests use it; the TUI never
// needs to.
func (s *Store) Flush() {
	s.wg.Wait()
}

// Projects returns the cached projects in display order.
func (s *Store) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	order.SortProjects(out)
	return out
}

// GetProjectByID returns a copy of the cached project.
func (s *Store) GetProjectByID(id int64) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// GetTaskByID returns a copy of the cached task.
func (s *Store) GetTaskByID(id int64) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.findTask(id); t != nil {
		return *t, true
	}
	return models.Task{}, false
}

// TasksForScope returns the tasks in view. A single project's tasks come
// back in (order, id) sequence; the all-projects view is flattened,
// decorated with each project's name and color, and sorted with
// incomplete tasks first, then by start date.
func (s *Store) TasksForScope(scope Scope) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := scope.ProjectID(); ok {
		for _, p := range s.projects {
			if p.ID == id {
				tasks := make([]models.Task, len(p.Tasks))
				copy(tasks, p.Tasks)
				order.SortTasks(tasks)
				return tasks
			}
		}
		return nil
	}

	var tasks []models.Task
	for _, p := range s.projects {
		for _, t := range p.Tasks {
			t.ProjectName = p.Name
			t.ProjectColor = p.Color
			tasks = append(tasks, t)
		}
	}
	order.SortFlattened(tasks)
	return tasks
}

// findTask returns a pointer into the cache; callers hold s.mu.
func (s *Store) findTask(id int64) *models.Task {
	for pi := range s.projects {
		for ti := range s.projects[pi].Tasks {
			if s.projects[pi].Tasks[ti].ID == id {
				return &s.projects[pi].Tasks[ti]
			}
		}
	}
	return nil
}

func (s *Store) findProject(id int64) *models.Project {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return &s.projects[i]
		}
	}
	return nil
}

// snapshot deep-copies the cache for rollback.
func (s *Store) snapshot() []models.Project {
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	for i := range out {
		tasks := make([]models.Task, len(out[i].Tasks))
		copy(tasks, out[i].Tasks)
		out[i].Tasks = tasks
	}
	return out
}

// mutate runs the uniform optimistic protocol: snapshot, apply locally,
// notify, call the server, then reconcile or roll back. Every write path
// for both entity types funnels through here.
func (s *Store) mutate(event Event, apply func(), remote func() error, reconcile func()) error {
	s.mu.Lock()
	snap := s.snapshot()
	apply()
	s.notify(event)
	s.mu.Unlock()

	err := remote()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.projects = snap
		s.lastErr = err.Error()
		s.notify(event)
		return err
	}
	if reconcile != nil {
		reconcile()
	}
	s.lastErr = ""
	s.notify(event)
	return nil
}
