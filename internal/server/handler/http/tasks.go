package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/atinyakov/taskmaster/internal/middleware"
	"github.com/atinyakov/taskmaster/internal/models"
	"github.com/atinyakov/taskmaster/internal/service"
	"github.com/go-chi/chi/v5"
)

// TaskService defines the task operations required by the HTTP handlers.
type TaskService interface {
	List(email string) []models.Task
	Add(email, title string, view models.View, selected time.Time) (*models.Task, error)
	Toggle(email, id string) error
	ToggleImportant(email, id string) error
	Rename(email, id, title string) error
	Delete(email, id string) error
	AddSubtask(email, taskID, title string) (*models.SubTask, error)
	ToggleSubtask(email, taskID, subID string) error
	RemoveSubtask(email, taskID, subID string) error
}

// TaskHandler handles HTTP requests for the signed-in account's tasks. All
// routes are session-guarded; the owner email comes from the request context.
type TaskHandler struct {
	// TaskService performs the underlying task operations.
	TaskService TaskService
}

// taskRequest represents the JSON payload for task creation and edits.
type taskRequest struct {
	Title string `json:"title"`
	View  string `json:"view"`
	Date  string `json:"date"`
}

// viewParams reads the view selector and selected calendar day from query
// parameters. Absent view defaults to the all-tasks view; the date uses the
// 2006-01-02 layout in local time.
func viewParams(r *http.Request) (models.View, time.Time, bool) {
	view := models.ViewAll
	if v := r.URL.Query().Get("view"); v != "" {
		view = models.View(v)
		if !view.Valid() {
			return view, time.Time{}, false
		}
	}
	selected := time.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			return view, time.Time{}, false
		}
		selected = parsed
	}
	return view, selected, true
}

// List returns the tasks visible in the requested view
// (?view=today|important|tasks|calendar&date=2006-01-02).
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())

	view, selected, ok := viewParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid view or date")
		return
	}

	tasks := service.Filter(h.TaskService.List(email), view, selected, time.Now())
	writeJSON(w, map[string][]models.Task{"tasks": tasks})
}

// Create adds a task. The view in the body determines the defaults: tasks
// created from the calendar view carry the selected date, tasks created from
// the important view start flagged. An empty title is a silent no-op and
// yields 204.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	view := models.View(req.View)
	selected := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		selected = parsed
	}

	task, err := h.TaskService.Add(email, req.Title, view, selected)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	if task == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(task)
}

// Toggle flips a task's completed flag.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())
	if err := h.TaskService.Toggle(email, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// ToggleImportant flips a task's important flag.
func (h *TaskHandler) ToggleImportant(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())
	if err := h.TaskService.ToggleImportant(email, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// Rename sets a task's title.
func (h *TaskHandler) Rename(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.TaskService.Rename(email, chi.URLParam(r, "id"), req.Title); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// Delete removes a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())
	if err := h.TaskService.Delete(email, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// CreateSubtask appends a checklist item to a task. An empty title yields
// 204.
func (h *TaskHandler) CreateSubtask(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	sub, err := h.TaskService.AddSubtask(email, chi.URLParam(r, "id"), req.Title)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	if sub == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(sub)
}

// ToggleSubtask flips a sub-task's completed flag.
func (h *TaskHandler) ToggleSubtask(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())
	if err := h.TaskService.ToggleSubtask(email, chi.URLParam(r, "id"), chi.URLParam(r, "subID")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// DeleteSubtask removes a sub-task from its parent task.
func (h *TaskHandler) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())
	if err := h.TaskService.RemoveSubtask(email, chi.URLParam(r, "id"), chi.URLParam(r, "subID")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// Stats returns the overview numbers for the requested view: completed
// count, total count and the completion percentage.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmailFromContext(r.Context())

	view, selected, ok := viewParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid view or date")
		return
	}

	completed, total := service.OverviewStats(h.TaskService.List(email), view, selected, time.Now())
	writeJSON(w, map[string]any{
		"completed": completed,
		"total":     total,
		"progress":  service.Progress(completed, total),
	})
}
