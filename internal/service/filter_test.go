package service

import (
	"testing"
	"time"

	"github.com/atinyakov/taskmaster/internal/models"
)

func TestFilter(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	tasks := []models.Task{
		{ID: "today-1", Title: "today", Date: now},
		{ID: "yesterday-1", Title: "yesterday", Date: yesterday},
		{ID: "today-imp", Title: "today important", Date: now.Add(-6 * time.Hour), Important: true},
	}

	tests := []struct {
		name     string
		view     models.View
		selected time.Time
		wantIDs  []string
	}{
		{"today returns both tasks dated today", models.ViewToday, time.Time{}, []string{"today-1", "today-imp"}},
		{"important ignores dates", models.ViewImportant, time.Time{}, []string{"today-imp"}},
		{"all returns everything", models.ViewAll, time.Time{}, []string{"today-1", "yesterday-1", "today-imp"}},
		{"calendar day picks yesterday", models.ViewCalendar, yesterday, []string{"yesterday-1"}},
		{"calendar day with no tasks", models.ViewCalendar, now.AddDate(0, 0, 5), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tasks, tt.view, tt.selected, now)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Filter returned %d tasks; want %d (%+v)", len(got), len(tt.wantIDs), got)
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("task[%d].ID = %q; want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilter_SameDayBoundaries(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 1, 0, time.Local)
	tasks := []models.Task{
		{ID: "late", Date: time.Date(2026, 9, 1, 23, 59, 59, 0, time.Local)},
		{ID: "prev", Date: time.Date(2026, 8, 31, 23, 59, 59, 0, time.Local)},
	}
	got := Filter(tasks, models.ViewToday, time.Time{}, now)
	if len(got) != 1 || got[0].ID != "late" {
		t.Errorf("Filter = %+v; want only the task dated Sep 1", got)
	}
}

func TestStatsAndProgress(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Completed: true},
		{ID: "b"},
		{ID: "c", Completed: true},
		{ID: "d"},
	}
	completed, total := Stats(tasks)
	if completed != 2 || total != 4 {
		t.Errorf("Stats = %d/%d; want 2/4", completed, total)
	}
	if got := Progress(completed, total); got != 50 {
		t.Errorf("Progress = %v; want 50", got)
	}
	if got := Progress(0, 0); got != 0 {
		t.Errorf("Progress with empty set = %v; want 0", got)
	}
}

func TestOverviewStats(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)
	tasks := []models.Task{
		{ID: "a", Date: now, Completed: true},
		{ID: "b", Date: now},
		{ID: "c", Date: yesterday, Completed: true},
	}

	// All-tasks view counts the whole list.
	if c, total := OverviewStats(tasks, models.ViewAll, time.Time{}, now); c != 2 || total != 3 {
		t.Errorf("all overview = %d/%d; want 2/3", c, total)
	}
	// Calendar view counts the selected day.
	if c, total := OverviewStats(tasks, models.ViewCalendar, yesterday, now); c != 1 || total != 1 {
		t.Errorf("calendar overview = %d/%d; want 1/1", c, total)
	}
	// Every other view counts today.
	if c, total := OverviewStats(tasks, models.ViewImportant, time.Time{}, now); c != 1 || total != 2 {
		t.Errorf("important overview = %d/%d; want 1/2", c, total)
	}
}
