package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingID        = errors.New("model: task id is required")
	ErrMissingTitle     = errors.New("model: task title is required")
	ErrMissingCreatedAt = errors.New("model: task created_at is required")
)

// Task is a template for work, not an instance of it. A recurring task is
// satisfied per calendar day by Completion records; a one-time task is
// finished forever after its first completion.
type Task struct {
	ID         string
	Title      string
	Category   string
	Recurrence Recurrence
	StartDate  *Day
	SortOrder  int
	Active     bool
	CreatedAt  time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrMissingTitle
	}
	if err := t.Recurrence.Validate(); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		return ErrMissingCreatedAt
	}
	return nil
}

// ScheduledOn reports whether the task belongs on the given day's list,
// ignoring completion state. A start date strictly after the day means the
// task has not begun yet.
func (t Task) ScheduledOn(day Day) bool {
	if t.StartDate != nil && t.StartDate.After(day) {
		return false
	}
	return t.Recurrence.ScheduledOn(day)
}

// HasCategory matches the free-form category label case-insensitively.
func (t Task) HasCategory(category string) bool {
	return strings.EqualFold(strings.TrimSpace(t.Category), strings.TrimSpace(category))
}
