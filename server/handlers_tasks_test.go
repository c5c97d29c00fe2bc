package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-server/tasks"
)

func TestTaskLifecycleAsAdmin(t *testing.T) {
	f := setupServerFixture(t)
	f.createUser(t, testAdminEmail, true)
	cookie := f.login(t, testAdminEmail, testUserPassword)

	// Create
	req := jsonRequest(http.MethodPost, "/api/task", `{"title":"Ship the release","priority":"high"}`)
	req.AddCookie(cookie)
	rec := f.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created tasks.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, tasks.StageTodo, created.Stage)
	require.Equal(t, tasks.PriorityHigh, created.Priority)

	// Update
	req = jsonRequest(http.MethodPut, "/api/task/"+created.ID, `{"stage":"completed"}`)
	req.AddCookie(cookie)
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.taskRepo.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, tasks.StageCompleted, stored.Stage)

	// Trash hides the task from the default listing
	req = jsonRequest(http.MethodPut, "/api/task/"+created.ID+"/trash", "")
	req.AddCookie(cookie)
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/api/task", nil)
	listReq.AddCookie(cookie)
	rec = f.do(listReq)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	// Restore brings it back
	req = jsonRequest(http.MethodPut, "/api/task/"+created.ID+"/restore", "")
	req.AddCookie(cookie)
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []*tasks.Task
	rec = f.do(listReq)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/task/"+created.ID, nil)
	req.AddCookie(cookie)
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = f.taskRepo.GetByID(created.ID)
	require.Error(t, err)
}

func TestTaskWritesRejectedForNonAdmin(t *testing.T) {
	f := setupServerFixture(t)
	f.createUser(t, testUserEmail, false)
	cookie := f.login(t, testUserEmail, testUserPassword)

	req := jsonRequest(http.MethodPost, "/api/task", `{"title":"Sneaky task"}`)
	req.AddCookie(cookie)
	rec := f.do(req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, notAdminBody, rec.Body.String())

	// Reads remain available to any authenticated user
	listReq := httptest.NewRequest(http.MethodGet, "/api/task", nil)
	listReq.AddCookie(cookie)
	rec = f.do(listReq)
	require.Equal(t, http.StatusOK, rec.Code)
}
