// Package engine is the pure computation core of the tracker: it decides
// which tasks are due on a reference day, how completion toggles mutate the
// ledger, and how history groups by calendar day. It owns no storage and no
// clock; callers load collections and supply reference instants.
package engine

import "routined/internal/model"

// Engine evaluates due-lists and completion state against one fixed
// calendar. Every method is a function of its arguments; input collections
// are treated as values and never mutated.
type Engine struct {
	cal model.Calendar
}

func New(cal model.Calendar) Engine {
	return Engine{cal: cal}
}

func (e Engine) Calendar() model.Calendar {
	return e.cal
}
