package store

import (
	"fmt"
	"log"

	"gantty/internal/api"
	"gantty/internal/models"
	"gantty/internal/order"
)

// AddProject optimistically inserts the project under a temporary negative
// id, then swaps in the server's copy once it has assigned the real id
// and order key.
func (s *Store) AddProject(req api.ProjectCreate) error {
	var tempID int64
	apply := func() {
		s.tempID--
		tempID = s.tempID
		color := req.Color
		if color == "" {
			color = models.DefaultColor
		}
		s.projects = append(s.projects, models.Project{
			ID:          tempID,
			Name:        req.Name,
			Description: req.Description,
			Color:       color,
			Order:       order.NextProjectOrder(s.projects),
			Tasks:       []models.Task{},
		})
	}

	var created *models.Project
	remote := func() (err error) {
		created, err = s.client.CreateProject(req)
		return err
	}

	reconcile := func() {
		for i := range s.projects {
			if s.projects[i].ID == tempID {
				if created.Tasks == nil {
					created.Tasks = []models.Task{}
				}
				s.projects[i] = *created
				return
			}
		}
	}

	return s.mutate(EventProjectsChanged, apply, remote, reconcile)
}

// UpdateProject applies a partial edit.
func (s *Store) UpdateProject(id int64, req api.ProjectUpdate) error {
	apply := func() {
		p := s.findProject(id)
		if p == nil {
			return
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Color != nil {
			p.Color = *req.Color
		}
	}

	var updated *models.Project
	remote := func() (err error) {
		updated, err = s.client.UpdateProject(id, req)
		return err
	}

	reconcile := func() {
		if p := s.findProject(id); p != nil && updated != nil {
			tasks := p.Tasks
			*p = *updated
			if p.Tasks == nil {
				p.Tasks = tasks
			}
		}
	}

	return s.mutate(EventProjectsChanged, apply, remote, reconcile)
}

// DeleteProject removes the project and its tasks from the cache, then
// the server; the snapshot comes back if the server refuses.
func (s *Store) DeleteProject(id int64) error {
	apply := func() {
		for i := range s.projects {
			if s.projects[i].ID == id {
				s.projects = append(s.projects[:i], s.projects[i+1:]...)
				return
			}
		}
	}
	remote := func() error { return s.client.DeleteProject(id) }
	return s.mutate(EventProjectsChanged, apply, remote, nil)
}

// ReorderProjects commits a new sidebar sequence in one batched update.
// The cache gets the new keys immediately so the dragged project does not
// snap back while the request is in flight.
func (s *Store) ReorderProjects(ids []int64) error {
	plan := order.PlanProjectReorder(ids)

	apply := func() {
		for _, u := range plan {
			if p := s.findProject(u.ID); p != nil {
				p.Order = u.Order
			}
		}
	}
	remote := func() error { return s.client.ReorderProjects(plan) }
	return s.mutate(EventProjectsChanged, apply, remote, nil)
}

// AddTask appends a task to its project, optimistically under a temporary
// id.
func (s *Store) AddTask(req api.TaskCreate) error {
	var tempID int64
	apply := func() {
		p := s.findProject(req.ProjectID)
		if p == nil {
			return
		}
		s.tempID--
		tempID = s.tempID
		key := order.NextTaskOrder(p.Tasks)
		if req.Order != nil {
			key = *req.Order
		}
		p.Tasks = append(p.Tasks, models.Task{
			ID:          tempID,
			ProjectID:   req.ProjectID,
			Name:        req.Name,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Completed:   req.Completed,
			Order:       key,
		})
	}

	var created *models.Task
	remote := func() (err error) {
		created, err = s.client.CreateTask(req)
		return err
	}

	reconcile := func() {
		p := s.findProject(req.ProjectID)
		if p == nil || created == nil {
			return
		}
		for i := range p.Tasks {
			if p.Tasks[i].ID == tempID {
				p.Tasks[i] = *created
				return
			}
		}
	}

	return s.mutate(EventTasksChanged, apply, remote, reconcile)
}

// UpdateTask applies a partial edit with the store's stale-response guard:
// the reconciliation payload is dropped if another mutation touched the
// task while this one was in flight. On failure the owning project is
// re-fetched rather than patched back together locally, since the server
// is the only reliable source of the prior dates.
func (s *Store) UpdateTask(id int64, req api.TaskUpdate) error {
	s.mu.Lock()
	t := s.findTask(id)
	if t == nil {
		s.mu.Unlock()
		return fmt.Errorf("task %d not in cache", id)
	}
	projectID := t.ProjectID
	s.taskSeq[id]++
	seq := s.taskSeq[id]
	applyTaskUpdate(t, req)
	s.notify(EventTasksChanged)
	s.mu.Unlock()

	updated, err := s.client.UpdateTask(id, req)
	if err != nil {
		s.refetchProject(projectID)
		s.mu.Lock()
		s.lastErr = err.Error()
		s.notify(EventTasksChanged)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taskSeq[id] == seq {
		if t := s.findTask(id); t != nil {
			reconcileTask(t, updated)
		}
	}
	s.lastErr = ""
	s.notify(EventTasksChanged)
	return nil
}

// UpdateTaskDates is the drag/resize commit path. In silent mode the
// cache is updated and the request fired without waiting for the
// response, so a gesture commit never stalls the chart; failures are
// logged and the next full load straightens things out.
func (s *Store) UpdateTaskDates(id int64, start, end *models.Date, silent bool) error {
	req := api.TaskUpdate{StartDate: start, EndDate: end}
	if !silent {
		return s.UpdateTask(id, req)
	}

	s.mu.Lock()
	t := s.findTask(id)
	if t == nil {
		s.mu.Unlock()
		return fmt.Errorf("task %d not in cache", id)
	}
	s.taskSeq[id]++
	applyTaskUpdate(t, req)
	s.notify(EventTasksChanged)
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.client.UpdateTask(id, req); err != nil {
			log.Printf("silent task update %d: %v", id, err)
		}
	}()
	return nil
}

// DeleteTask removes the task locally, then remotely.
func (s *Store) DeleteTask(id int64) error {
	apply := func() {
		for pi := range s.projects {
			tasks := s.projects[pi].Tasks
			for ti := range tasks {
				if tasks[ti].ID == id {
					s.projects[pi].Tasks = append(tasks[:ti], tasks[ti+1:]...)
					return
				}
			}
		}
	}
	remote := func() error { return s.client.DeleteTask(id) }
	return s.mutate(EventTasksChanged, apply, remote, nil)
}

// ReorderTasks commits a new task sequence for one project.
func (s *Store) ReorderTasks(projectID int64, ids []int64) error {
	plan := order.PlanTaskReorder(ids)

	apply := func() {
		p := s.findProject(projectID)
		if p == nil {
			return
		}
		for _, u := range plan {
			for i := range p.Tasks {
				if p.Tasks[i].ID == u.ID {
					p.Tasks[i].Order = u.Order
					break
				}
			}
		}
	}
	remote := func() error { return s.client.ReorderTasks(plan) }
	return s.mutate(EventTasksChanged, apply, remote, nil)
}

// refetchProject replaces one cache entry with the server's copy.
func (s *Store) refetchProject(id int64) {
	p, err := s.client.GetProject(id)
	if err != nil {
		log.Printf("refetch project %d: %v", id, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = *p
			return
		}
	}
}

func applyTaskUpdate(t *models.Task, req api.TaskUpdate) {
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.StartDate != nil {
		t.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = *req.EndDate
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}
	if req.Order != nil {
		t.Order = *req.Order
	}
}

// reconcileTask copies the server's fields over the cached task while
// keeping the display decorations the flattened view may have filled in.
func reconcileTask(t *models.Task, updated *models.Task) {
	name, color := t.ProjectName, t.ProjectColor
	*t = *updated
	if t.ProjectName == "" {
		t.ProjectName = name
	}
	if t.ProjectColor == "" {
		t.ProjectColor = color
	}
}
