package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

type RecurrenceKind string

const (
	RecurrenceOneTime RecurrenceKind = "one_time"
	RecurrenceDaily   RecurrenceKind = "daily"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
)

var (
	ErrInvalidRecurrenceKind = errors.New("model: invalid recurrence kind")
	ErrInvalidWeekday        = errors.New("model: invalid weekday in recurrence")
	ErrInvalidMonthDay       = errors.New("model: invalid day of month in recurrence")
)

// Recurrence describes when a task comes due. Weekdays applies to weekly
// tasks and MonthDays to monthly ones; an empty set means unrestricted,
// i.e. every weekday or every day of the month.
type Recurrence struct {
	Kind      RecurrenceKind
	Weekdays  []time.Weekday
	MonthDays []int
}

func (k RecurrenceKind) IsValid() bool {
	switch k {
	case RecurrenceOneTime, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

func (r Recurrence) IsRecurring() bool {
	return r.Kind != RecurrenceOneTime
}

// Validate belongs to the edit boundary: quick-add and task editing call it
// before a recurrence is stored. ScheduledOn never does; it evaluates any
// concrete value literally.
func (r Recurrence) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrenceKind, r.Kind)
	}
	seen := make(map[int]bool, len(r.Weekdays))
	for _, w := range r.Weekdays {
		if w < time.Sunday || w > time.Saturday {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, int(w))
		}
		if seen[int(w)] {
			return fmt.Errorf("%w: duplicate %d", ErrInvalidWeekday, int(w))
		}
		seen[int(w)] = true
	}
	days := append([]int(nil), r.MonthDays...)
	sort.Ints(days)
	for i, d := range days {
		if d < 1 || d > 31 {
			return fmt.Errorf("%w: %d", ErrInvalidMonthDay, d)
		}
		if i > 0 && days[i] == days[i-1] {
			return fmt.Errorf("%w: duplicate %d", ErrInvalidMonthDay, d)
		}
	}
	return nil
}

// ScheduledOn reports whether the recurrence comes due on the given day.
// Day values outside the valid range never match; they are evaluated
// literally rather than rejected. A monthly task pinned to the 31st simply
// never matches in a 30-day month.
func (r Recurrence) ScheduledOn(day Day) bool {
	switch r.Kind {
	case RecurrenceOneTime, RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		if len(r.Weekdays) == 0 {
			return true
		}
		w := day.Weekday()
		for _, allowed := range r.Weekdays {
			if allowed == w {
				return true
			}
		}
		return false
	case RecurrenceMonthly:
		if len(r.MonthDays) == 0 {
			return true
		}
		dom := day.DayOfMonth()
		for _, allowed := range r.MonthDays {
			if allowed == dom {
				return true
			}
		}
		return false
	default:
		return false
	}
}
