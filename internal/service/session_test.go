package service

import (
	"testing"
	"time"

	"github.com/atinyakov/taskmaster/internal/models"
)

func TestSessionManager_ActivateAndRestore(t *testing.T) {
	dir := newMemDirectory()
	store := &memSession{}
	tasks := newMemTasks()
	if err := tasks.Save("a@b.com", []models.Task{{ID: "t1", Title: "Buy milk"}}); err != nil {
		t.Fatal(err)
	}

	m := NewSessionManager(dir, store, tasks)
	if m.Current() != nil {
		t.Fatal("expected no session before activation")
	}

	profile := models.Profile{Name: "Alice", Email: "a@b.com", Password: "x"}
	loaded, err := m.Activate(profile)
	if err != nil {
		t.Fatalf("Activate returned error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "t1" {
		t.Errorf("Activate loaded %+v; want the stored task list", loaded)
	}
	// Activation upserts the profile into the directory.
	if dir.Get("a@b.com") == nil {
		t.Error("directory entry missing after activation")
	}
	if got := m.Current(); got == nil || got.Email != "a@b.com" {
		t.Errorf("Current = %+v; want the activated profile", got)
	}

	// A fresh manager over the same store restores the session.
	restored := NewSessionManager(dir, store, tasks).Restore()
	if restored == nil || restored.Email != "a@b.com" {
		t.Errorf("Restore = %+v; want the persisted profile", restored)
	}
}

func TestSessionManager_SessionIsDenormalizedCopy(t *testing.T) {
	dir := newMemDirectory()
	store := &memSession{}
	tasks := newMemTasks()
	m := NewSessionManager(dir, store, tasks)

	profile := models.Profile{Name: "Alice", Email: "a@b.com", Password: "x"}
	if _, err := m.Activate(profile); err != nil {
		t.Fatal(err)
	}

	// Editing the directory entry behind the session's back does not change
	// the persisted session until the profile is re-activated.
	edited := profile
	edited.Bio = "updated"
	if err := dir.Upsert(edited); err != nil {
		t.Fatal(err)
	}
	if got := store.Restore(); got.Bio != "" {
		t.Errorf("session copy changed without re-activation: %+v", got)
	}

	if _, err := m.Activate(edited); err != nil {
		t.Fatal(err)
	}
	if got := store.Restore(); got.Bio != "updated" {
		t.Errorf("re-activation did not refresh the session copy: %+v", got)
	}
}

func TestSessionManager_Clear(t *testing.T) {
	m := NewSessionManager(newMemDirectory(), &memSession{}, newMemTasks())
	if _, err := m.Activate(models.Profile{Name: "Alice", Email: "a@b.com"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if m.Current() != nil {
		t.Error("Current should be nil after Clear")
	}
	if m.Restore() != nil {
		t.Error("Restore should find no session after Clear")
	}
}

// TestScenario walks the end-to-end flow: signup, login, add a task, toggle
// it, check the stats, delete it.
func TestScenario(t *testing.T) {
	dir := newMemDirectory()
	taskRepo := newMemTasks()
	sessionStore := &memSession{}

	auth := NewAuthService(dir, taskRepo)
	sessions := NewSessionManager(dir, sessionStore, taskRepo)
	tasksSvc := NewTaskService(taskRepo)

	profile, err := auth.Signup("A", "a@b.com", "x", "", "")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := sessions.Activate(*profile); err != nil {
		t.Fatalf("activation failed: %v", err)
	}

	logged, err := auth.Login("a@b.com", "x")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.Name != "A" {
		t.Errorf("login name = %q; want A", logged.Name)
	}

	task, err := tasksSvc.Add("a@b.com", "Buy milk", models.ViewToday, time.Time{})
	if err != nil || task == nil {
		t.Fatalf("add failed: task=%+v err=%v", task, err)
	}
	if err := tasksSvc.Toggle("a@b.com", task.ID); err != nil {
		t.Fatal(err)
	}
	completed, total := Stats(tasksSvc.List("a@b.com"))
	if completed != 1 || total != 1 {
		t.Errorf("stats = %d/%d; want 1/1", completed, total)
	}

	if err := tasksSvc.Delete("a@b.com", task.ID); err != nil {
		t.Fatal(err)
	}
	if _, total := Stats(tasksSvc.List("a@b.com")); total != 0 {
		t.Errorf("total = %d; want 0", total)
	}
}
