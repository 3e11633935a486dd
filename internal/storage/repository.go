package storage

import (
	"context"
	"errors"

	"routined/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type TaskFilter struct {
	ActiveOnly bool
}

type CompletionFilter struct {
	TaskID string
}

// Repository supplies the engine's in-memory collections and persists the
// deltas it hands back. Flat encodings (recurrence day lists, start dates)
// live behind this boundary; callers only ever see model types.
type Repository interface {
	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	// DeleteTask removes the task and all of its completions.
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)

	CreateCompletion(ctx context.Context, in model.Completion) error
	DeleteCompletion(ctx context.Context, id string) error
	DeleteTaskCompletions(ctx context.Context, taskID string) error
	ListCompletions(ctx context.Context, filter CompletionFilter) ([]model.Completion, error)
}
