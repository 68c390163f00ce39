package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/moviweb/moviweb/internal/domain"
	"github.com/moviweb/moviweb/internal/repository"
)

type userCreateRequest struct {
	Username string `json:"username"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{ID: user.ID, Username: user.Username}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.Users.List(r.Context())
	if err != nil {
		s.logger.Printf("list users error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	items := make([]userResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "Username cannot be empty.")
		return
	}
	if len(username) > domain.MaxUsernameLen {
		s.respondError(w, http.StatusUnprocessableEntity, "Username is too long (max 80 characters).")
		return
	}

	user, err := s.repo.Users.Create(r.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			s.respondError(w, http.StatusConflict, "User already exists.")
			return
		}
		s.logger.Printf("create user error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	s.respondJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.Users.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "User not found.")
			return
		}
		s.logger.Printf("delete user error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
