// Package http provides the JSON API handlers the task manager UI talks to:
// authentication, session, task and profile endpoints.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/taskmaster/internal/middleware"
	"github.com/atinyakov/taskmaster/internal/models"
	"github.com/atinyakov/taskmaster/internal/service"
)

// AuthService defines the authentication operations required by the HTTP
// handlers.
type AuthService interface {
	// Login verifies credentials and returns the stored profile.
	Login(email, password string) (*models.Profile, error)
	// Signup creates a new profile under a fresh email.
	Signup(name, email, password, question, answer string) (*models.Profile, error)
	// SecurityQuestion returns the account's security question.
	SecurityQuestion(email string) (string, error)
	// ResetPassword overwrites the password after checking the answer.
	ResetPassword(email, answer, newPassword string) error
	// DeleteAccount removes the account and its task list.
	DeleteAccount(email string) error
}

// SessionManager defines the session operations required by the HTTP
// handlers.
type SessionManager interface {
	// Activate signs the profile in and returns its task list.
	Activate(profile models.Profile) ([]models.Task, error)
	// Clear signs out.
	Clear() error
	// Current returns the signed-in profile, nil when signed out.
	Current() *models.Profile
}

// AuthHandler handles HTTP requests for login, signup, password reset and
// session management.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Sessions tracks the single active session.
	Sessions SessionManager
}

// credentialsRequest represents the JSON payload shared by the auth
// endpoints; each endpoint reads the fields it needs.
type credentialsRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
}

// sessionResponse is returned by login and signup: the signed-in profile
// and its freshly loaded task list.
type sessionResponse struct {
	Profile models.Profile `json:"profile"`
	Tasks   []models.Task  `json:"tasks"`
}

// writeError writes a JSON error body whose text is shown to the user
// verbatim.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// authStatus maps an auth flow error to an HTTP status code.
func authStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrNoSuchAccount),
		errors.Is(err, service.ErrResetAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrIncorrectPassword):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrIncorrectAnswer):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAccountExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Login handles login requests. It expects a JSON body with "email" and
// "password". On success the session is activated and the profile plus its
// task list are returned.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	profile, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}

	tasks, err := h.Sessions.Activate(*profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to activate session")
		return
	}
	writeJSON(w, sessionResponse{Profile: *profile, Tasks: tasks})
}

// Signup handles registration requests. It expects a JSON body with "name",
// "email", "password" and optionally the security question and answer. The
// new account is signed in immediately.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	profile, err := h.AuthService.Signup(req.Name, req.Email, req.Password, req.SecurityQuestion, req.SecurityAnswer)
	if err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}

	tasks, err := h.Sessions.Activate(*profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to activate session")
		return
	}
	writeJSON(w, sessionResponse{Profile: *profile, Tasks: tasks})
}

// Question handles the first step of password recovery: it returns the
// account's security question.
func (h *AuthHandler) Question(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	question, err := h.AuthService.SecurityQuestion(req.Email)
	if err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeJSON(w, map[string]string{"question": question})
}

// Reset handles the second step of password recovery: given the security
// answer and a new password it overwrites the stored credential.
func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.AuthService.ResetPassword(req.Email, req.SecurityAnswer, req.Password); err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// Session returns the signed-in profile. The route is guarded, so reaching
// the handler implies a session exists.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	profile := h.Sessions.Current()
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "no active session")
		return
	}
	writeJSON(w, profile)
}

// SignOut clears the active session.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// DeleteAccount removes the signed-in account: its task list, its directory
// entry, and the session.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())
	if email == "" {
		writeError(w, http.StatusUnauthorized, "no active session")
		return
	}

	if err := h.AuthService.DeleteAccount(email); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}
	if err := h.Sessions.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
