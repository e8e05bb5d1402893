package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantty/internal/api"
	"gantty/internal/db"
	"gantty/internal/models"
	"gantty/internal/server"
)

// faultHandler wraps the real API so tests can inject write failures or
// hold a response in flight without touching the store's internals.
type faultHandler struct {
	inner http.Handler

	mu         sync.Mutex
	failWrites bool
	holdNext   chan struct{}
	holdSeen   chan struct{}
}

func (f *faultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	fail := f.failWrites
	var hold, seen chan struct{}
	if f.holdNext != nil && r.Method == http.MethodPut {
		hold = f.holdNext
		seen = f.holdSeen
		f.holdNext = nil
		f.holdSeen = nil
	}
	f.mu.Unlock()

	if fail && r.Method != http.MethodGet {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(gin.H{"error": "injected failure"})
		return
	}

	if hold != nil {
		close(seen)
		rec := httptest.NewRecorder()
		f.inner.ServeHTTP(rec, r)
		<-hold
		for k, vs := range rec.Header() {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(rec.Code)
		w.Write(rec.Body.Bytes())
		return
	}

	f.inner.ServeHTTP(w, r)
}

func (f *faultHandler) setFailWrites(fail bool) {
	f.mu.Lock()
	f.failWrites = fail
	f.mu.Unlock()
}

// holdNextPut delays the next PUT response until release is closed. The
// server still processes the request immediately; seen is closed once the
// held request has arrived at the proxy.
func (f *faultHandler) holdNextPut() (release, seen chan struct{}) {
	release = make(chan struct{})
	seen = make(chan struct{})
	f.mu.Lock()
	f.holdNext = release
	f.holdSeen = seen
	f.mu.Unlock()
	return release, seen
}

func newTestStore(t *testing.T) (*Store, *api.Client, *faultHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.New(filepath.Join(t.TempDir(), "gantty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	fh := &faultHandler{inner: server.NewServer(database).Handler()}
	ts := httptest.NewServer(fh)
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL)
	return New(client), client, fh
}

func seedProject(t *testing.T, s *Store, name string, tasks ...string) models.Project {
	t.Helper()
	require.NoError(t, s.AddProject(api.ProjectCreate{Name: name}))
	var project models.Project
	for _, p := range s.Projects() {
		if p.Name == name {
			project = p
		}
	}
	require.NotZero(t, project.ID)
	for i, taskName := range tasks {
		require.NoError(t, s.AddTask(api.TaskCreate{
			Name:      taskName,
			ProjectID: project.ID,
			StartDate: models.Day(2024, 1, 10+i),
			EndDate:   models.Day(2024, 1, 12+i),
		}))
	}
	p, ok := s.GetProjectByID(project.ID)
	require.True(t, ok)
	return p
}

func TestLoadAndScopes(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Load())

	alpha := seedProject(t, s, "Alpha", "a1", "a2")
	seedProject(t, s, "Beta", "b1")

	// Sidebar order: newest project first.
	projects := s.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, "Beta", projects[0].Name)
	assert.Equal(t, "Alpha", projects[1].Name)

	// Single-project scope keeps the project's own task order.
	scoped := s.TasksForScope(ScopeProject(alpha.ID))
	require.Len(t, scoped, 2)
	assert.Equal(t, "a1", scoped[0].Name)
	assert.Equal(t, "a2", scoped[1].Name)
	assert.Less(t, scoped[0].Order, scoped[1].Order)

	// The all-projects scope flattens and decorates with project display
	// fields so the chart can color bars per project.
	all := s.TasksForScope(ScopeAll())
	require.Len(t, all, 3)
	for _, task := range all {
		assert.NotEmpty(t, task.ProjectName)
		assert.NotEmpty(t, task.ProjectColor)
	}
}

func TestAddTaskReplacesTemporaryID(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Load())

	p := seedProject(t, s, "Alpha", "a1")
	for _, task := range s.TasksForScope(ScopeProject(p.ID)) {
		assert.Positive(t, task.ID, "temporary id must be reconciled away")
	}
}

func TestMutationRollsBackOnFailure(t *testing.T) {
	s, _, fh := newTestStore(t)
	require.NoError(t, s.Load())

	p := seedProject(t, s, "Alpha", "a1", "a2")
	before := s.TasksForScope(ScopeProject(p.ID))

	fh.setFailWrites(true)
	err := s.DeleteTask(before[0].ID)
	require.Error(t, err)

	after := s.TasksForScope(ScopeProject(p.ID))
	assert.Equal(t, before, after, "failed delete must restore the cache")
	assert.NotEmpty(t, s.Err())

	s.ClearErr()
	assert.Empty(t, s.Err())
}

func TestAddProjectRollbackRemovesTempEntry(t *testing.T) {
	s, _, fh := newTestStore(t)
	require.NoError(t, s.Load())

	seedProject(t, s, "Alpha")
	fh.setFailWrites(true)

	require.Error(t, s.AddProject(api.ProjectCreate{Name: "Doomed"}))
	projects := s.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Alpha", projects[0].Name)
}

func TestUpdateTaskRefetchesOnFailure(t *testing.T) {
	s, _, fh := newTestStore(t)
	require.NoError(t, s.Load())

	p := seedProject(t, s, "Alpha", "a1")
	id := p.Tasks[0].ID

	fh.setFailWrites(true)
	name := "edited"
	require.Error(t, s.UpdateTask(id, api.TaskUpdate{Name: &name}))

	// GETs still work, so the failed edit is replaced by the server copy.
	task, ok := s.GetTaskByID(id)
	require.True(t, ok)
	assert.Equal(t, "a1", task.Name)
	assert.NotEmpty(t, s.Err())
}

func TestSilentDateUpdate(t *testing.T) {
	s, client, _ := newTestStore(t)
	require.NoError(t, s.Load())

	p := seedProject(t, s, "Alpha", "a1")
	id := p.Tasks[0].ID

	start := models.Day(2024, 2, 1)
	end := models.Day(2024, 2, 5)
	require.NoError(t, s.UpdateTaskDates(id, &start, &end, true))

	// The cache reflects the move before the request completes.
	task, ok := s.GetTaskByID(id)
	require.True(t, ok)
	assert.True(t, task.StartDate.Equal(start.Time))
	assert.True(t, task.EndDate.Equal(end.Time))

	s.Flush()
	remote, err := client.GetTask(id)
	require.NoError(t, err)
	assert.True(t, remote.StartDate.Equal(start.Time))
	assert.True(t, remote.EndDate.Equal(end.Time))
}

func TestStaleResponseIsDropped(t *testing.T) {
	s, _, fh := newTestStore(t)
	require.NoError(t, s.Load())

	p := seedProject(t, s, "Alpha", "a1")
	id := p.Tasks[0].ID

	release, seen := fh.holdNextPut()

	// A slow name edit: the server processes it but the response hangs.
	name := "slow-edit"
	done := make(chan error, 1)
	go func() { done <- s.UpdateTask(id, api.TaskUpdate{Name: &name}) }()

	// Wait until the edit's request is the one being held.
	select {
	case <-seen:
	case <-time.After(2 * time.Second):
		t.Fatal("held request never arrived")
	}

	// A later drag commit moves the dates while the edit is in flight.
	start := models.Day(2024, 3, 1)
	end := models.Day(2024, 3, 4)
	require.NoError(t, s.UpdateTaskDates(id, &start, &end, true))
	s.Flush()

	close(release)
	require.NoError(t, <-done)

	// The held response carried the pre-drag dates; it must not win.
	task, ok := s.GetTaskByID(id)
	require.True(t, ok)
	assert.True(t, task.StartDate.Equal(start.Time), "stale response overwrote newer dates")
	assert.True(t, task.EndDate.Equal(end.Time))
}

func TestReorderTasksPersists(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Load())

	p := seedProject(t, s, "Alpha", "a1", "a2", "a3")
	tasks := s.TasksForScope(ScopeProject(p.ID))
	require.Len(t, tasks, 3)

	reversed := []int64{tasks[2].ID, tasks[1].ID, tasks[0].ID}
	require.NoError(t, s.ReorderTasks(p.ID, reversed))

	got := s.TasksForScope(ScopeProject(p.ID))
	assert.Equal(t, "a3", got[0].Name)
	assert.Equal(t, "a1", got[2].Name)
	assert.Equal(t, 0, got[0].Order)
	assert.Equal(t, 20, got[2].Order)

	// A fresh load agrees, so the ranking survived the round trip.
	require.NoError(t, s.Load())
	got = s.TasksForScope(ScopeProject(p.ID))
	assert.Equal(t, "a3", got[0].Name)
}

func TestReorderProjectsPersists(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Load())

	seedProject(t, s, "Alpha")
	seedProject(t, s, "Beta")
	seedProject(t, s, "Gamma")

	projects := s.Projects()
	require.Len(t, projects, 3)
	assert.Equal(t, "Gamma", projects[0].Name)

	// Move Alpha to the top of the sidebar.
	ids := []int64{projects[2].ID, projects[0].ID, projects[1].ID}
	require.NoError(t, s.ReorderProjects(ids))

	require.NoError(t, s.Load())
	projects = s.Projects()
	assert.Equal(t, "Alpha", projects[0].Name)
}

func TestSubscribeReceivesChangeEvents(t *testing.T) {
	s, _, _ := newTestStore(t)
	ch := s.Subscribe()
	require.NoError(t, s.Load())

	select {
	case e := <-ch:
		assert.Equal(t, EventProjectsChanged, e)
	default:
		t.Fatal("expected a change event after Load")
	}
}
