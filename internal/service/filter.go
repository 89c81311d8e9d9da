package service

import (
	"time"

	"github.com/atinyakov/taskmaster/internal/models"
)

// Filter returns the subset of tasks visible in the given view. The selected
// time is only consulted for the calendar view; now anchors the today view.
// "Same day" means equal year, month and day in local time. The result is
// freshly computed on every call; nothing is cached.
func Filter(tasks []models.Task, view models.View, selected, now time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		switch view {
		case models.ViewToday:
			if models.SameDay(t.Date, now) {
				out = append(out, t)
			}
		case models.ViewImportant:
			if t.Important {
				out = append(out, t)
			}
		case models.ViewCalendar:
			if models.SameDay(t.Date, selected) {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
	}
	return out
}

// Stats counts completed tasks and the total over the given list.
func Stats(tasks []models.Task) (completed, total int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(tasks)
}

// Progress converts a completed/total pair into a percentage, 0 when the
// total is 0.
func Progress(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// OverviewStats computes the completion numbers shown next to the task list:
// the whole list for the all-tasks view, the selected day for the calendar
// view, and today's tasks for every other view.
func OverviewStats(tasks []models.Task, view models.View, selected, now time.Time) (completed, total int) {
	switch view {
	case models.ViewAll:
		return Stats(tasks)
	case models.ViewCalendar:
		return Stats(Filter(tasks, models.ViewCalendar, selected, now))
	default:
		return Stats(Filter(tasks, models.ViewToday, selected, now))
	}
}
