package server

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
	"github.com/taskhive/taskhive-server/tasks"
)

type taskRequest struct {
	Title    string             `json:"title"`
	Stage    tasks.StageType    `json:"stage"`
	Priority tasks.PriorityType `json:"priority"`
	Date     time.Time          `json:"date"`
	TeamIDs  []string           `json:"team"`
}

// CreateTaskHandler creates a task (POST /api/task, admin)
func (s *Server) CreateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req taskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
			s.writeStatus(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}

		task := &tasks.Task{
			Title:    req.Title,
			Stage:    req.Stage,
			Priority: req.Priority,
			Date:     req.Date,
			TeamIDs:  req.TeamIDs,
		}
		if task.Stage == "" {
			task.Stage = tasks.StageTodo
		}
		if task.Priority == "" {
			task.Priority = tasks.PriorityNormal
		}

		if err := s.tasks.Upsert(task); err != nil {
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to create task")
			return
		}
		s.writeJSON(w, http.StatusCreated, task)
	}
}

// ListTasksHandler lists tasks (GET /api/task). Trashed tasks are included
// only when ?isTrashed=true.
func (s *Server) ListTasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeTrashed := r.URL.Query().Get("isTrashed") == "true"

		list, err := s.tasks.List(includeTrashed)
		if err != nil {
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to list tasks")
			return
		}
		s.writeJSON(w, http.StatusOK, list)
	}
}

// GetTaskHandler fetches a single task (GET /api/task/{id})
func (s *Server) GetTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task, err := s.tasks.GetByID(r.PathValue("id"))
		if err != nil {
			s.writeStatus(w, http.StatusNotFound, false, "Task not found")
			return
		}
		s.writeJSON(w, http.StatusOK, task)
	}
}

// UpdateTaskHandler updates a task (PUT /api/task/{id}, admin)
func (s *Server) UpdateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req taskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeStatus(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}

		task, err := s.tasks.GetByID(r.PathValue("id"))
		if err != nil {
			s.writeStatus(w, http.StatusNotFound, false, "Task not found")
			return
		}

		if req.Title != "" {
			task.Title = req.Title
		}
		if req.Stage != "" {
			task.Stage = req.Stage
		}
		if req.Priority != "" {
			task.Priority = req.Priority
		}
		if !req.Date.IsZero() {
			task.Date = req.Date
		}
		if req.TeamIDs != nil {
			task.TeamIDs = req.TeamIDs
		}

		if err := s.tasks.Upsert(task); err != nil {
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to update task")
			return
		}
		s.writeJSON(w, http.StatusOK, task)
	}
}

// TrashTaskHandler moves a task to the trash (PUT /api/task/{id}/trash, admin)
func (s *Server) TrashTaskHandler() http.HandlerFunc {
	return s.setTrashedHandler(true, "Task trashed successfully")
}

// RestoreTaskHandler restores a trashed task (PUT /api/task/{id}/restore, admin)
func (s *Server) RestoreTaskHandler() http.HandlerFunc {
	return s.setTrashedHandler(false, "Task restored successfully")
}

func (s *Server) setTrashedHandler(trashed bool, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.tasks.SetTrashed(r.PathValue("id"), trashed); err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				s.writeStatus(w, http.StatusNotFound, false, "Task not found")
				return
			}
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to update task")
			return
		}
		s.writeStatus(w, http.StatusOK, true, message)
	}
}

// DeleteTaskHandler permanently deletes a task (DELETE /api/task/{id}, admin)
func (s *Server) DeleteTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.tasks.Delete(r.PathValue("id")); err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				s.writeStatus(w, http.StatusNotFound, false, "Task not found")
				return
			}
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to delete task")
			return
		}
		s.writeStatus(w, http.StatusOK, true, "Task deleted successfully")
	}
}
