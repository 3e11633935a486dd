package engine

import (
	"time"

	"github.com/google/uuid"

	"routined/internal/model"
)

// SatisfiedOn reports whether any completion falls on the given calendar day.
func (e Engine) SatisfiedOn(completions []model.Completion, day model.Day) bool {
	for _, c := range completions {
		if e.cal.DayOf(c.CompletedAt).Equal(day) {
			return true
		}
	}
	return false
}

// HasEverCompleted reports whether the ledger holds any completion at all.
// Only one-time task eligibility cares about this.
func HasEverCompleted(completions []model.Completion) bool {
	return len(completions) > 0
}

// Complete appends a completion at now and returns it with the updated set.
// The caller persists the new record; nothing here enforces uniqueness per
// day, because recurring tasks legitimately accumulate one completion per
// calendar day forever. Use Toggle for tap-style state flips.
func (e Engine) Complete(task model.Task, completions []model.Completion, now time.Time) (model.Completion, []model.Completion) {
	created := model.Completion{
		ID:          uuid.NewString(),
		TaskID:      task.ID,
		CompletedAt: now,
	}
	updated := make([]model.Completion, 0, len(completions)+1)
	updated = append(updated, completions...)
	updated = append(updated, created)
	return created, updated
}

// Uncomplete removes the completion(s) whose calendar day equals day,
// normally exactly one. Removing from an already-empty day is a no-op, not
// an error. Removed records are returned so the caller can delete them from
// storage.
func (e Engine) Uncomplete(completions []model.Completion, day model.Day) (remaining, removed []model.Completion) {
	remaining = make([]model.Completion, 0, len(completions))
	for _, c := range completions {
		if e.cal.DayOf(c.CompletedAt).Equal(day) {
			removed = append(removed, c)
			continue
		}
		remaining = append(remaining, c)
	}
	return remaining, removed
}

// ToggleResult carries the flipped state plus the ledger delta the caller
// must persist: either Added is set or Removed is non-empty, never both.
type ToggleResult struct {
	Satisfied   bool
	Completions []model.Completion
	Added       *model.Completion
	Removed     []model.Completion
}

// Toggle is the single entry point for UI taps: it flips the task's
// satisfied state for the day of now exactly once per call, whatever the
// current state. Callers racing on the same task's completion set must
// serialize externally; the set is read then rewritten as a value.
func (e Engine) Toggle(task model.Task, completions []model.Completion, now time.Time) ToggleResult {
	day := e.cal.DayOf(now)
	if e.SatisfiedOn(completions, day) {
		remaining, removed := e.Uncomplete(completions, day)
		return ToggleResult{Satisfied: false, Completions: remaining, Removed: removed}
	}
	created, updated := e.Complete(task, completions, now)
	return ToggleResult{Satisfied: true, Completions: updated, Added: &created}
}
