package repository

import (
	"encoding/json"

	"github.com/atinyakov/taskmaster/internal/kvstore"
	"github.com/atinyakov/taskmaster/internal/models"
	"go.uber.org/zap"
)

// taskKey returns the storage key of the task list owned by email.
func taskKey(email string) string {
	return "taskmaster_tasks_" + email
}

// TaskRepository persists one task list per account under a key namespaced
// by the owning email. The unit of persistence is the full list: every
// mutation rewrites the whole array.
type TaskRepository struct {
	store kvstore.Store
	log   *zap.Logger
}

// NewTaskRepository creates a TaskRepository backed by the given store.
func NewTaskRepository(store kvstore.Store, log *zap.Logger) *TaskRepository {
	return &TaskRepository{store: store, log: log}
}

// Load reads the task list owned by email. An absent key yields an empty
// list. A corrupt value also yields an empty list; the corruption is logged,
// never surfaced. Tasks persisted before sub-tasks existed have their
// Subtasks defaulted to an empty slice.
func (r *TaskRepository) Load(email string) []models.Task {
	raw, ok := r.store.Get(taskKey(email))
	if !ok {
		return []models.Task{}
	}
	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		r.log.Warn("corrupt task list, resetting to empty",
			zap.String("email", email), zap.Error(err))
		return []models.Task{}
	}
	for i := range tasks {
		if tasks[i].Subtasks == nil {
			tasks[i].Subtasks = []models.SubTask{}
		}
	}
	return tasks
}

// Save serializes the full task list and writes it under email's key.
func (r *TaskRepository) Save(email string, tasks []models.Task) error {
	buf, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return r.store.Set(taskKey(email), string(buf))
}

// Remove deletes email's task list key entirely (account deletion).
func (r *TaskRepository) Remove(email string) error {
	return r.store.Remove(taskKey(email))
}
