// Package service sits between the storage layer and the pure engine: it
// loads collections, runs the engine, persists the deltas the engine hands
// back, and tells the change notifier afterwards. All task lifecycle rules
// (sort-order minting, one-time resets, delete cascades) live here.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"routined/internal/engine"
	"routined/internal/model"
	"routined/internal/notify"
	"routined/internal/storage"
)

type Service struct {
	repo     storage.Repository
	eng      engine.Engine
	notifier notify.Notifier
	log      *zap.Logger
}

func New(repo storage.Repository, eng engine.Engine, notifier notify.Notifier, log *zap.Logger) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, eng: eng, notifier: notifier, log: log}
}

func (s *Service) Calendar() model.Calendar {
	return s.eng.Calendar()
}

type TaskInput struct {
	Title      string
	Category   string
	Recurrence model.Recurrence
	StartDate  *model.Day
}

// CreateTask validates the input, mints an ID, and places the task at the
// end of the manual ordering (max existing sort order + 1).
func (s *Service) CreateTask(ctx context.Context, in TaskInput, now time.Time) (model.Task, error) {
	existing, err := s.repo.ListTasks(ctx, storage.TaskFilter{})
	if err != nil {
		return model.Task{}, fmt.Errorf("list tasks: %w", err)
	}

	task := model.Task{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(in.Title),
		Category:   strings.TrimSpace(in.Category),
		Recurrence: in.Recurrence,
		StartDate:  in.StartDate,
		SortOrder:  engine.NextSortOrder(existing),
		Active:     true,
		CreatedAt:  now,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.log.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("kind", string(task.Recurrence.Kind)),
		zap.Int("sort_order", task.SortOrder),
	)
	s.changed()
	return task, nil
}

// UpdateTask applies the given options and persists the result. A content
// edit (title, category, recurrence, start date) on a one-time task that no
// longer starts in the future, while it already has completions, resets it:
// its completion history is cleared and it becomes a fresh one-time task.
// Flipping only the Active flag is not a content edit, so archiving and
// unarchiving never touch history.
func (s *Service) UpdateTask(ctx context.Context, id string, now time.Time, opts ...TaskOption) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	before := task

	for _, opt := range opts {
		opt(&task)
	}
	task.ID = id
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}

	if contentEdited(before, task) {
		if err := s.maybeResetOneTime(ctx, task, now); err != nil {
			return model.Task{}, err
		}
	}
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}

	s.log.Info("task updated", zap.String("task_id", id))
	s.changed()
	return task, nil
}

// contentEdited reports whether anything other than the Active flag changed.
func contentEdited(before, after model.Task) bool {
	if before.Title != after.Title || before.Category != after.Category {
		return true
	}
	if !sameRecurrence(before.Recurrence, after.Recurrence) {
		return true
	}
	return !sameStartDate(before.StartDate, after.StartDate)
}

func sameRecurrence(a, b model.Recurrence) bool {
	if a.Kind != b.Kind || len(a.Weekdays) != len(b.Weekdays) || len(a.MonthDays) != len(b.MonthDays) {
		return false
	}
	for i := range a.Weekdays {
		if a.Weekdays[i] != b.Weekdays[i] {
			return false
		}
	}
	for i := range a.MonthDays {
		if a.MonthDays[i] != b.MonthDays[i] {
			return false
		}
	}
	return true
}

func sameStartDate(a, b *model.Day) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (s *Service) maybeResetOneTime(ctx context.Context, task model.Task, now time.Time) error {
	if task.Recurrence.IsRecurring() {
		return nil
	}
	today := s.eng.Calendar().DayOf(now)
	if task.StartDate != nil && task.StartDate.After(today) {
		return nil
	}
	completions, err := s.repo.ListCompletions(ctx, storage.CompletionFilter{TaskID: task.ID})
	if err != nil {
		return fmt.Errorf("list completions for %s: %w", task.ID, err)
	}
	if !engine.HasEverCompleted(completions) {
		return nil
	}
	if err := s.repo.DeleteTaskCompletions(ctx, task.ID); err != nil {
		return fmt.Errorf("reset one-time task %s: %w", task.ID, err)
	}
	s.log.Info("one-time task reset, history cleared",
		zap.String("task_id", task.ID),
		zap.Int("cleared", len(completions)),
	)
	return nil
}

// ArchiveTask soft-deletes: the task leaves the due-list and the counters
// but its completion history stays queryable.
func (s *Service) ArchiveTask(ctx context.Context, id string, now time.Time) error {
	_, err := s.UpdateTask(ctx, id, now, WithActive(false))
	return err
}

func (s *Service) UnarchiveTask(ctx context.Context, id string, now time.Time) error {
	_, err := s.UpdateTask(ctx, id, now, WithActive(true))
	return err
}

// DeleteTask hard-deletes the task together with its completions.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	s.log.Info("task deleted", zap.String("task_id", id))
	s.changed()
	return nil
}

// Today resolves the due-list for the day of now.
func (s *Service) Today(ctx context.Context, now time.Time) (engine.TodayList, error) {
	tasks, err := s.repo.ListTasks(ctx, storage.TaskFilter{ActiveOnly: true})
	if err != nil {
		return engine.TodayList{}, fmt.Errorf("list tasks: %w", err)
	}
	byTask, err := s.completionsByTask(ctx)
	if err != nil {
		return engine.TodayList{}, err
	}
	return s.eng.ResolveToday(tasks, byTask, s.eng.Calendar().DayOf(now)), nil
}

// Toggle flips the completion state of one task for the day of now and
// persists exactly the delta the engine reports.
func (s *Service) Toggle(ctx context.Context, taskID string, now time.Time) (bool, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return false, fmt.Errorf("get task %s: %w", taskID, err)
	}
	completions, err := s.repo.ListCompletions(ctx, storage.CompletionFilter{TaskID: taskID})
	if err != nil {
		return false, fmt.Errorf("list completions for %s: %w", taskID, err)
	}

	result := s.eng.Toggle(task, completions, now)
	if result.Added != nil {
		if err := s.repo.CreateCompletion(ctx, *result.Added); err != nil {
			return false, fmt.Errorf("persist completion: %w", err)
		}
	}
	for _, removed := range result.Removed {
		if err := s.repo.DeleteCompletion(ctx, removed.ID); err != nil {
			return false, fmt.Errorf("remove completion %s: %w", removed.ID, err)
		}
	}

	s.log.Info("task toggled",
		zap.String("task_id", taskID),
		zap.Bool("satisfied", result.Satisfied),
	)
	s.changed()
	return result.Satisfied, nil
}

// ReorderTasks persists a dense zero-based ordering matching orderedIDs,
// which must name every active task exactly once. Inactive tasks are left
// untouched.
func (s *Service) ReorderTasks(ctx context.Context, orderedIDs []string) error {
	active, err := s.repo.ListTasks(ctx, storage.TaskFilter{ActiveOnly: true})
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	if len(orderedIDs) != len(active) {
		return fmt.Errorf("service: reorder got %d ids for %d active tasks", len(orderedIDs), len(active))
	}
	byID := make(map[string]model.Task, len(active))
	for _, task := range active {
		byID[task.ID] = task
	}
	arranged := make([]model.Task, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		task, ok := byID[id]
		if !ok {
			return fmt.Errorf("service: reorder references unknown or inactive task %s", id)
		}
		delete(byID, id)
		arranged = append(arranged, task)
	}

	for _, task := range engine.Reorder(arranged) {
		if err := s.repo.UpdateTask(ctx, task); err != nil {
			return fmt.Errorf("persist order for %s: %w", task.ID, err)
		}
	}
	s.log.Info("tasks reordered", zap.Int("count", len(arranged)))
	s.changed()
	return nil
}

// History groups every stored completion by calendar day, newest first.
// Completions of archived tasks are included; history outlives the
// due-list.
func (s *Service) History(ctx context.Context) ([]engine.DayGroup, error) {
	completions, err := s.repo.ListCompletions(ctx, storage.CompletionFilter{})
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return s.eng.GroupByDay(completions), nil
}

// Tasks lists all tasks, archived included, in manual order.
func (s *Service) Tasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.ListTasks(ctx, storage.TaskFilter{})
}

func (s *Service) completionsByTask(ctx context.Context) (map[string][]model.Completion, error) {
	completions, err := s.repo.ListCompletions(ctx, storage.CompletionFilter{})
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	byTask := make(map[string][]model.Completion)
	for _, c := range completions {
		byTask[c.TaskID] = append(byTask[c.TaskID], c)
	}
	return byTask, nil
}

// changed fires after a successful persist. Failures are logged and
// swallowed; refresh signals are best-effort by contract.
func (s *Service) changed() {
	if err := s.notifier.TasksChanged(); err != nil {
		s.log.Warn("change notification failed", zap.Error(err))
	}
}
