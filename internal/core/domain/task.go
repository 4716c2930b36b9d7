package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Priority ranks a task. The set is closed.
type Priority string

// Task priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DueDateLayout is the calendar form accepted for due dates on input.
const DueDateLayout = "2006-01-02"

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidPriority, "parse priority"), "value", s)
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParseDueDate parses a YYYY-MM-DD date into a UTC midnight timestamp.
func ParseDueDate(s string) (time.Time, error) {
	t, err := time.Parse(DueDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, zerr.With(zerr.Wrap(ErrInvalidDueDate, err.Error()), "value", s)
	}
	return t.UTC(), nil
}

// Task is the primary record managed by the client.
// ID, CreatedAt and UpdatedAt are assigned by the server.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Priority  Priority   `json:"priority"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TaskInput is the payload for creating a task.
type TaskInput struct {
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Priority  Priority   `json:"priority"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

// TaskPatch is a partial update. Nil fields are left untouched by the server.
type TaskPatch struct {
	Title     *string    `json:"title,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	Priority  *Priority  `json:"priority,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Completed == nil && p.Priority == nil && p.DueDate == nil
}

// Apply returns a copy of t with the patch fields set.
// Timestamps are left to the caller.
func (t Task) Apply(p TaskPatch) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	return t
}

// Overdue reports whether the task is open and its due date is before now.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}
