package engine

import (
	"sort"

	"routined/internal/model"
)

type TodayItem struct {
	Task model.Task
	Done bool
}

type TodayList struct {
	Day            model.Day
	Items          []TodayItem
	CompletedCount int
	TotalCount     int
}

// ResolveToday builds the ordered due-list for a reference day.
//
// A one-time task appears only until its first completion, then disappears
// for good (it is not shown as done, and it stops counting). A recurring
// task stays on the list all day, done or not, so the progress counters
// mean "how much of today is finished" rather than "how many rows remain".
func (e Engine) ResolveToday(tasks []model.Task, completionsByTask map[string][]model.Completion, day model.Day) TodayList {
	items := make([]TodayItem, 0, len(tasks))
	for _, t := range tasks {
		if !t.Active {
			continue
		}
		if !t.ScheduledOn(day) {
			continue
		}
		completions := completionsByTask[t.ID]
		if !t.Recurrence.IsRecurring() {
			if HasEverCompleted(completions) {
				continue
			}
			items = append(items, TodayItem{Task: t})
			continue
		}
		items = append(items, TodayItem{Task: t, Done: e.SatisfiedOn(completions, day)})
	}

	// Stable: equal sort orders keep their input order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Task.SortOrder < items[j].Task.SortOrder
	})

	list := TodayList{Day: day, Items: items, TotalCount: len(items)}
	for _, item := range items {
		if item.Done {
			list.CompletedCount++
		}
	}
	return list
}
