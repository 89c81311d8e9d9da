package service

import (
	"sync"

	"github.com/atinyakov/taskmaster/internal/models"
)

// SessionStore defines the persistence operations required by the session
// manager.
type SessionStore interface {
	// Restore reads the persisted session, nil when signed out.
	Restore() *models.Profile
	// Write persists profile as the active session.
	Write(profile models.Profile) error
	// Clear removes the persisted session.
	Clear() error
}

// TaskLoader loads an account's task list; needed on session activation.
type TaskLoader interface {
	Load(email string) []models.Task
}

// SessionManager is the single explicit container for the active session.
// At most one profile is signed in at a time. The persisted session is a
// denormalized copy of the profile, so profile updates must go through
// Activate again to stay consistent.
type SessionManager struct {
	directory AccountDirectory
	store     SessionStore
	tasks     TaskLoader

	mu      sync.Mutex
	current *models.Profile
}

// NewSessionManager constructs a SessionManager over the given directory,
// session store and task loader.
func NewSessionManager(directory AccountDirectory, store SessionStore, tasks TaskLoader) *SessionManager {
	return &SessionManager{directory: directory, store: store, tasks: tasks}
}

// Restore re-establishes the session persisted by a previous run, if any,
// and returns the restored profile.
func (m *SessionManager) Restore() *models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.store.Restore()
	return m.current
}

// Activate signs the profile in: it upserts the profile into the account
// directory, persists the session copy, and only then loads the account's
// task list (the task key is derived from the now-current session email).
// The loaded tasks are returned.
func (m *SessionManager) Activate(profile models.Profile) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.directory.Upsert(profile); err != nil {
		return nil, err
	}
	if err := m.store.Write(profile); err != nil {
		return nil, err
	}
	m.current = &profile

	return m.tasks.Load(profile.Email), nil
}

// Clear signs out: the session key is removed and the in-memory profile is
// dropped.
func (m *SessionManager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return m.store.Clear()
}

// Current returns the active profile, or nil when signed out. The returned
// value is a copy owned by the caller.
func (m *SessionManager) Current() *models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	p := *m.current
	return &p
}
