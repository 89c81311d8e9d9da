package service

import (
	"strings"
	"time"

	"github.com/atinyakov/taskmaster/internal/models"
	"github.com/google/uuid"
)

// TaskStore defines the persistence operations required by the task service.
type TaskStore interface {
	// Load reads the full task list owned by email.
	Load(email string) []models.Task
	// Save rewrites the full task list owned by email.
	Save(email string, tasks []models.Task) error
}

// TaskService implements task mutations. Every mutation is a load, an
// in-memory change and a whole-list rewrite; the unit of persistence is the
// full list. Mutations targeting an unknown task or sub-task ID are silent
// no-ops.
type TaskService struct {
	store TaskStore
}

// NewTaskService constructs a TaskService over the given store.
func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// List returns the account's full task list.
func (s *TaskService) List(email string) []models.Task {
	return s.store.Load(email)
}

// Add creates a task and prepends it to the account's list (most recent
// first). An empty or whitespace-only title is silently ignored. The task is
// dated now, or at the selected day when added from the calendar view, and
// is flagged important when added from the important view. Returns the
// created task, or nil when the title was empty.
func (s *TaskService) Add(email, title string, view models.View, selected time.Time) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil
	}
	date := time.Now()
	if view == models.ViewCalendar {
		date = selected
	}
	task := models.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Date:      date,
		Important: view == models.ViewImportant,
		Subtasks:  []models.SubTask{},
	}

	tasks := append([]models.Task{task}, s.store.Load(email)...)
	if err := s.store.Save(email, tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

// Toggle flips the completed flag of the task with the given ID.
func (s *TaskService) Toggle(email, id string) error {
	return s.update(email, id, func(t *models.Task) {
		t.Completed = !t.Completed
	})
}

// ToggleImportant flips the important flag of the task with the given ID.
func (s *TaskService) ToggleImportant(email, id string) error {
	return s.update(email, id, func(t *models.Task) {
		t.Important = !t.Important
	})
}

// Rename sets a new title on the task with the given ID. An empty title is
// silently ignored.
func (s *TaskService) Rename(email, id, title string) error {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	return s.update(email, id, func(t *models.Task) {
		t.Title = title
	})
}

// Delete removes the task with the given ID from the account's list.
func (s *TaskService) Delete(email, id string) error {
	tasks := s.store.Load(email)
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.store.Save(email, kept)
}

// AddSubtask appends a checklist item to the task with the given ID. An
// empty title is silently ignored. Returns the created sub-task, or nil.
func (s *TaskService) AddSubtask(email, taskID, title string) (*models.SubTask, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil
	}
	sub := models.SubTask{ID: uuid.NewString(), Title: title}
	err := s.update(email, taskID, func(t *models.Task) {
		t.Subtasks = append(t.Subtasks, sub)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ToggleSubtask flips the completed flag of one sub-task.
func (s *TaskService) ToggleSubtask(email, taskID, subID string) error {
	return s.update(email, taskID, func(t *models.Task) {
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subID {
				t.Subtasks[i].Completed = !t.Subtasks[i].Completed
			}
		}
	})
}

// RemoveSubtask deletes one sub-task from its parent task.
func (s *TaskService) RemoveSubtask(email, taskID, subID string) error {
	return s.update(email, taskID, func(t *models.Task) {
		kept := t.Subtasks[:0]
		for _, sub := range t.Subtasks {
			if sub.ID != subID {
				kept = append(kept, sub)
			}
		}
		t.Subtasks = kept
	})
}

// update loads the list, applies fn to the task with the given ID and saves
// the whole list back. An unknown ID still rewrites the unchanged list.
func (s *TaskService) update(email, id string, fn func(*models.Task)) error {
	tasks := s.store.Load(email)
	for i := range tasks {
		if tasks[i].ID == id {
			fn(&tasks[i])
		}
	}
	return s.store.Save(email, tasks)
}
