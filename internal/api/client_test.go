package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantty/internal/models"
	"gantty/internal/order"
)

func TestUpdateTaskSendsOnlyPresentFields(t *testing.T) {
	var captured map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/tasks/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(models.Task{ID: 7})
	}))
	defer srv.Close()

	start := models.Day(2024, 1, 13)
	end := models.Day(2024, 1, 15)
	_, err := NewClient(srv.URL).UpdateTask(7, TaskUpdate{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	// A drag commit must not touch name/completed/order.
	assert.Len(t, captured, 2)
	assert.Contains(t, captured, "startDate")
	assert.Contains(t, captured, "endDate")
	assert.JSONEq(t, `"2024-01-13T00:00:00.000Z"`, string(captured["startDate"]))
}

func TestDatesTravelAtUTCMidnight(t *testing.T) {
	var captured struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Task{ID: 1})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateTask(TaskCreate{
		Name:      "Design",
		ProjectID: 1,
		StartDate: models.Day(2024, 1, 10),
		EndDate:   models.Day(2024, 1, 12),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10T00:00:00.000Z", captured.StartDate)
	assert.Equal(t, "2024-01-12T00:00:00.000Z", captured.EndDate)
}

func TestNonOKStatusBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetTask(42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not found", apiErr.Message)
}

func TestNetworkFailureBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewClient(srv.URL).ListProjects()
	assert.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestReorderBodies(t *testing.T) {
	var path string
	var body map[string][]order.Update
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]int{"updated": 2})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	require.NoError(t, c.ReorderTasks([]order.Update{{ID: 3, Order: 0}, {ID: 1, Order: 10}}))
	assert.Equal(t, "/tasks", path)
	assert.Equal(t, []order.Update{{ID: 3, Order: 0}, {ID: 1, Order: 10}}, body["tasks"])

	require.NoError(t, c.ReorderProjects([]order.Update{{ID: 5, Order: 1}}))
	assert.Equal(t, "/projects", path)
	assert.Equal(t, []order.Update{{ID: 5, Order: 1}}, body["projects"])
}
