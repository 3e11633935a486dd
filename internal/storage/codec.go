package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"routined/internal/model"
)

// Recurrence day sets are stored as comma-separated integers; the empty
// string is the unrestricted set. This flat form exists only on disk — it is
// decoded back into model.Recurrence before anything evaluates it.

func encodeRecurrence(r model.Recurrence) (kind, days string) {
	switch r.Kind {
	case model.RecurrenceWeekly:
		return string(r.Kind), encodeWeekdays(r.Weekdays)
	case model.RecurrenceMonthly:
		return string(r.Kind), encodeMonthDays(r.MonthDays)
	default:
		return string(r.Kind), ""
	}
}

func decodeRecurrence(kind, days string) (model.Recurrence, error) {
	r := model.Recurrence{Kind: model.RecurrenceKind(kind)}
	switch r.Kind {
	case model.RecurrenceWeekly:
		weekdays, err := decodeWeekdays(days)
		if err != nil {
			return model.Recurrence{}, err
		}
		r.Weekdays = weekdays
	case model.RecurrenceMonthly:
		monthDays, err := decodeMonthDays(days)
		if err != nil {
			return model.Recurrence{}, err
		}
		r.MonthDays = monthDays
	}
	return r, nil
}

func encodeWeekdays(in []time.Weekday) string {
	ints := make([]int, 0, len(in))
	for _, w := range in {
		ints = append(ints, int(w))
	}
	return encodeInts(ints)
}

func encodeMonthDays(in []int) string {
	return encodeInts(in)
}

func encodeInts(in []int) string {
	parts := make([]string, 0, len(in))
	for _, v := range in {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(in string) ([]time.Weekday, error) {
	ints, err := decodeInts(in)
	if err != nil {
		return nil, err
	}
	out := make([]time.Weekday, 0, len(ints))
	for _, v := range ints {
		out = append(out, time.Weekday(v))
	}
	return out, nil
}

func decodeMonthDays(in string) ([]int, error) {
	return decodeInts(in)
}

func decodeInts(in string) ([]int, error) {
	trimmed := strings.TrimSpace(in)
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("storage: decode day list %q: %w", in, err)
		}
		out = append(out, v)
	}
	return out, nil
}
