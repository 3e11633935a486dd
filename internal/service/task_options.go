package service

import "routined/internal/model"

// TaskOption mutates a loaded task during UpdateTask. Fields not covered by
// an option keep their stored value; the ID is never editable.
type TaskOption func(*model.Task)

func WithTitle(title string) TaskOption {
	return func(t *model.Task) {
		t.Title = title
	}
}

func WithCategory(category string) TaskOption {
	return func(t *model.Task) {
		t.Category = category
	}
}

func WithRecurrence(r model.Recurrence) TaskOption {
	return func(t *model.Task) {
		t.Recurrence = r
	}
}

func WithStartDate(day *model.Day) TaskOption {
	return func(t *model.Task) {
		t.StartDate = day
	}
}

func WithActive(active bool) TaskOption {
	return func(t *model.Task) {
		t.Active = active
	}
}
