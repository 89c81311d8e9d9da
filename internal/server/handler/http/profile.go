package http

import (
	"encoding/json"
	"net/http"

	"github.com/atinyakov/taskmaster/internal/models"
)

// ThemeStore persists the UI color scheme.
type ThemeStore interface {
	Load() models.Theme
	Save(t models.Theme) error
}

// ProfileHandler handles profile reads and edits plus the theme preference.
type ProfileHandler struct {
	// Sessions tracks the single active session. Profile edits re-activate
	// the session so the persisted denormalized copy stays consistent.
	Sessions SessionManager
	// Themes persists the light/dark preference.
	Themes ThemeStore
}

// profileUpdateRequest represents the editable profile fields. Identity and
// credentials are not editable here: the email is the account key and the
// password only changes through the reset flow.
type profileUpdateRequest struct {
	Name             string `json:"name"`
	DOB              string `json:"dob"`
	Bio              string `json:"bio"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
	DailyQuote       string `json:"dailyQuote"`
}

// Get returns the signed-in profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := h.Sessions.Current()
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "no active session")
		return
	}
	writeJSON(w, profile)
}

// Update merges the editable fields into the signed-in profile and
// re-activates the session, which also upserts the directory entry.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	profile := h.Sessions.Current()
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "no active session")
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	profile.DOB = req.DOB
	profile.Bio = req.Bio
	profile.DailyQuote = req.DailyQuote
	if req.SecurityQuestion != "" {
		profile.SecurityQuestion = req.SecurityQuestion
	}
	if req.SecurityAnswer != "" {
		profile.SecurityAnswer = req.SecurityAnswer
	}

	if _, err := h.Sessions.Activate(*profile); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	writeJSON(w, profile)
}

// Theme returns the stored color scheme.
func (h *ProfileHandler) Theme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"theme": string(h.Themes.Load())})
}

// SetTheme stores the color scheme. Only "light" and "dark" are accepted.
func (h *ProfileHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	theme := models.Theme(req.Theme)
	if !theme.Valid() {
		writeError(w, http.StatusBadRequest, "invalid theme")
		return
	}
	if err := h.Themes.Save(theme); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save theme")
		return
	}
	writeJSON(w, map[string]string{"theme": string(theme)})
}
