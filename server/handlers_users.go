package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
)

// TeamListHandler lists all registered users (GET /api/user/team, admin)
func (s *Server) TeamListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := s.users.List(0, 0)
		if err != nil {
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to list users")
			return
		}
		s.writeJSON(w, http.StatusOK, team)
	}
}

// UpdateProfileHandler updates non-password profile fields
// (PUT /api/user/profile). Admins may update any user by passing an id;
// everyone else updates their own record. The stored password hash is never
// touched here - password changes go through the change-password route.
func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	type updateRequest struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Title string `json:"title"`
		Role  string `json:"role"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		authCtx, ok := AuthContextFrom(r.Context())
		if !ok {
			s.writeStatus(w, http.StatusUnauthorized, false, msgNotAuthorized)
			return
		}

		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeStatus(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}

		targetID := authCtx.UserID
		if req.ID != "" && req.ID != authCtx.UserID {
			if !authCtx.IsAdmin {
				s.writeStatus(w, http.StatusUnauthorized, false, msgNotAdmin)
				return
			}
			targetID = req.ID
		}

		user, err := s.users.GetByID(targetID)
		if err != nil {
			s.writeStatus(w, http.StatusNotFound, false, "User not found")
			return
		}

		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Title != "" {
			user.Title = req.Title
		}
		if req.Role != "" {
			user.Role = req.Role
		}

		if err := s.users.Upsert(user); err != nil {
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to update profile")
			return
		}
		s.writeJSON(w, http.StatusOK, user)
	}
}

// ActivateUserHandler toggles the active flag - the soft-delete path
// (PUT /api/user/{id}/activate, admin)
func (s *Server) ActivateUserHandler() http.HandlerFunc {
	type activateRequest struct {
		IsActive bool `json:"isActive"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var req activateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeStatus(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}

		if err := s.users.SetActive(id, req.IsActive); err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				s.writeStatus(w, http.StatusNotFound, false, "User not found")
				return
			}
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to update user")
			return
		}

		if req.IsActive {
			s.writeStatus(w, http.StatusOK, true, "User account has been activated")
		} else {
			s.writeStatus(w, http.StatusOK, true, "User account has been disabled")
		}
	}
}

// DeleteUserHandler removes a user record (DELETE /api/user/{id}, admin)
func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		if err := s.users.Delete(id); err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				s.writeStatus(w, http.StatusNotFound, false, "User not found")
				return
			}
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to delete user")
			return
		}
		s.writeStatus(w, http.StatusOK, true, "User deleted successfully")
	}
}
