package storage

import (
	"context"
	"sort"
	"sync"

	"routined/internal/model"
)

// MemoryRepository is a map-backed Repository used in tests and available
// as a throwaway backend. Listing orders match the SQLite implementation so
// the two are interchangeable.
type MemoryRepository struct {
	mu          sync.RWMutex
	tasks       map[string]model.Task
	completions map[string]model.Completion
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		tasks:       make(map[string]model.Task),
		completions: make(map[string]model.Completion),
	}
}

func (r *MemoryRepository) CreateTask(ctx context.Context, in model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[in.ID] = in
	return nil
}

func (r *MemoryRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	return task, nil
}

func (r *MemoryRepository) UpdateTask(ctx context.Context, in model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[in.ID]; !ok {
		return ErrNotFound
	}
	r.tasks[in.ID] = in
	return nil
}

func (r *MemoryRepository) DeleteTask(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	for cid, c := range r.completions {
		if c.TaskID == id {
			delete(r.completions, cid)
		}
	}
	return nil
}

func (r *MemoryRepository) ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.ActiveOnly && !task.Active {
			continue
		}
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) CreateCompletion(ctx context.Context, in model.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions[in.ID] = in
	return nil
}

func (r *MemoryRepository) DeleteCompletion(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.completions[id]; !ok {
		return ErrNotFound
	}
	delete(r.completions, id)
	return nil
}

func (r *MemoryRepository) DeleteTaskCompletions(ctx context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for cid, c := range r.completions {
		if c.TaskID == taskID {
			delete(r.completions, cid)
		}
	}
	return nil
}

func (r *MemoryRepository) ListCompletions(ctx context.Context, filter CompletionFilter) ([]model.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Completion, 0, len(r.completions))
	for _, c := range r.completions {
		if filter.TaskID != "" && c.TaskID != filter.TaskID {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].CompletedAt.After(out[j].CompletedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
