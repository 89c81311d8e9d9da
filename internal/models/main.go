// Package models defines the core data structures for profiles, tasks and views.
package models

import "time"

// Profile represents a user's account record: credentials plus metadata.
// Email is the identity and is used verbatim (case-sensitive) as the
// directory key.
type Profile struct {
	// Name is the display name chosen at signup.
	Name string `json:"name"`
	// Email uniquely identifies the account.
	Email string `json:"email"`
	// Password is the stored credential, compared as an exact string.
	Password string `json:"password"`
	// DOB is the user's date of birth, free-form.
	DOB string `json:"dob,omitempty"`
	// Bio holds the user-provided description.
	Bio string `json:"bio,omitempty"`
	// SecurityQuestion is asked during password reset.
	SecurityQuestion string `json:"securityQuestion,omitempty"`
	// SecurityAnswer is matched case-insensitively during password reset.
	SecurityAnswer string `json:"securityAnswer,omitempty"`
	// DailyQuote is an optional motto shown on the profile page.
	DailyQuote string `json:"dailyQuote,omitempty"`
}

// SubTask is a checklist item owned by exactly one task.
type SubTask struct {
	// ID is the unique identifier for the sub-task.
	ID string `json:"id"`
	// Title is the sub-task text.
	Title string `json:"title"`
	// Completed marks the sub-task as done.
	Completed bool `json:"completed"`
}

// Task is a single to-do item belonging to exactly one profile's task store.
type Task struct {
	// ID is the unique identifier for the task.
	ID string `json:"id"`
	// Title is the task text.
	Title string `json:"title"`
	// Completed marks the task as done.
	Completed bool `json:"completed"`
	// Date is the calendar date-time the task is scheduled for.
	Date time.Time `json:"date"`
	// Important flags the task for the important view.
	Important bool `json:"important"`
	// Subtasks is the ordered checklist under this task. Records written
	// before sub-tasks existed carry no field; loaders default it to empty.
	Subtasks []SubTask `json:"subtasks"`
}

// View selects which subset of tasks is visible.
type View string

const (
	// ViewToday shows tasks dated on the current calendar day.
	ViewToday View = "today"
	// ViewImportant shows tasks flagged important, any date.
	ViewImportant View = "important"
	// ViewAll shows every task.
	ViewAll View = "tasks"
	// ViewCalendar shows tasks dated on a selected calendar day.
	ViewCalendar View = "calendar"
)

// Valid reports whether v is one of the defined views.
func (v View) Valid() bool {
	switch v {
	case ViewToday, ViewImportant, ViewAll, ViewCalendar:
		return true
	}
	return false
}

// Theme identifies the UI color scheme persisted under the "theme" key.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// SameDay reports whether a and b fall on the same calendar day in local time.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
