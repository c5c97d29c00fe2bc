package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
	"github.com/taskhive/taskhive-server/token"
	"github.com/taskhive/taskhive-server/users"
)

// RegisterHandler creates a new user account (POST /api/user/register)
func (s *Server) RegisterHandler() http.HandlerFunc {
	type registerRequest struct {
		Name     string `json:"name"`
		Title    string `json:"title"`
		Role     string `json:"role"`
		Email    string `json:"email"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"isAdmin"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeStatus(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" || req.Name == "" {
			s.writeStatus(w, http.StatusBadRequest, false, "Name, email and password are required")
			return
		}

		if _, err := s.users.GetByEmail(req.Email); err == nil {
			s.writeStatus(w, http.StatusBadRequest, false, "Email address already in use")
			return
		}

		user := &users.User{
			Name:    req.Name,
			Title:   req.Title,
			Role:    req.Role,
			Email:   req.Email,
			IsAdmin: req.IsAdmin,
		}
		if err := s.auth.Register(user, req.Password); err != nil {
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to create account")
			return
		}

		s.writeJSON(w, http.StatusCreated, user)
	}
}

// LoginHandler checks credentials and attaches the session cookie
// (POST /api/user/login)
func (s *Server) LoginHandler() http.HandlerFunc {
	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeStatus(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}

		user, signedToken, err := s.auth.Login(req.Email, req.Password)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUserInactive) {
				s.writeStatus(w, http.StatusUnauthorized, false, "User account has been deactivated, contact the administrator")
				return
			}
			s.writeStatus(w, http.StatusUnauthorized, false, "Invalid email or password.")
			return
		}

		token.Attach(w, signedToken, !s.config.IsDevelopment())
		s.writeJSON(w, http.StatusOK, user)
	}
}

// LogoutHandler expires the session cookie (POST /api/user/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token.Clear(w)
		s.writeStatus(w, http.StatusOK, true, "Logout successful")
	}
}

// ChangePasswordHandler updates the caller's password
// (PUT /api/user/change-password)
func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	type changePasswordRequest struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		authCtx, ok := AuthContextFrom(r.Context())
		if !ok {
			s.writeStatus(w, http.StatusUnauthorized, false, msgNotAuthorized)
			return
		}

		var req changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewPassword == "" {
			s.writeStatus(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}

		if err := s.auth.ChangePassword(authCtx.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			if apperrors.Is(err, apperrors.ErrInvalidLogin) {
				s.writeStatus(w, http.StatusUnauthorized, false, "Current password is incorrect")
				return
			}
			s.writeStatus(w, http.StatusInternalServerError, false, "Failed to change password")
			return
		}

		s.writeStatus(w, http.StatusOK, true, "Password changed successfully.")
	}
}
