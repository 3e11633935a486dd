package engine

import "routined/internal/model"

// Reorder assigns dense zero-based sort orders matching the given list's
// order. This is the only place ordering values get renumbered; everywhere
// else SortOrder is read-only data.
func Reorder(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		t.SortOrder = i
		out[i] = t
	}
	return out
}

// NextSortOrder returns max(existing)+1 so a new task lands at the end
// without colliding or forcing a renumber of its siblings.
func NextSortOrder(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	max := tasks[0].SortOrder
	for _, t := range tasks[1:] {
		if t.SortOrder > max {
			max = t.SortOrder
		}
	}
	return max + 1
}
