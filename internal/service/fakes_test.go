package service

import "github.com/atinyakov/taskmaster/internal/models"

// memDirectory is an in-memory AccountDirectory for tests.
type memDirectory struct {
	profiles map[string]models.Profile
}

func newMemDirectory() *memDirectory {
	return &memDirectory{profiles: map[string]models.Profile{}}
}

func (d *memDirectory) Get(email string) *models.Profile {
	p, ok := d.profiles[email]
	if !ok {
		return nil
	}
	return &p
}

func (d *memDirectory) Upsert(profile models.Profile) error {
	d.profiles[profile.Email] = profile
	return nil
}

func (d *memDirectory) Remove(email string) error {
	delete(d.profiles, email)
	return nil
}

// memTasks is an in-memory task store for tests.
type memTasks struct {
	lists map[string][]models.Task
}

func newMemTasks() *memTasks {
	return &memTasks{lists: map[string][]models.Task{}}
}

func (m *memTasks) Load(email string) []models.Task {
	tasks, ok := m.lists[email]
	if !ok {
		return []models.Task{}
	}
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}

func (m *memTasks) Save(email string, tasks []models.Task) error {
	m.lists[email] = tasks
	return nil
}

func (m *memTasks) Remove(email string) error {
	delete(m.lists, email)
	return nil
}

// memSession is an in-memory SessionStore for tests.
type memSession struct {
	profile *models.Profile
}

func (m *memSession) Restore() *models.Profile { return m.profile }

func (m *memSession) Write(profile models.Profile) error {
	m.profile = &profile
	return nil
}

func (m *memSession) Clear() error {
	m.profile = nil
	return nil
}
