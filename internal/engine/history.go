package engine

import (
	"sort"

	"routined/internal/model"
)

type DayGroup struct {
	Day         model.Day
	Completions []model.Completion
}

// GroupByDay buckets completions by calendar day, newest day first, newest
// completion first within each day. One linear pass builds the buckets; the
// only sorts are one over the bucket keys and one per bucket, so thousands
// of completions stay cheap. Ties on the instant fall back to ID so any
// permutation of the same input produces identical output.
func (e Engine) GroupByDay(completions []model.Completion) []DayGroup {
	buckets := make(map[model.Day][]model.Completion)
	for _, c := range completions {
		d := e.cal.DayOf(c.CompletedAt)
		buckets[d] = append(buckets[d], c)
	}

	days := make([]model.Day, 0, len(buckets))
	for d := range buckets {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[j].Before(days[i])
	})

	out := make([]DayGroup, 0, len(days))
	for _, d := range days {
		group := buckets[d]
		sort.Slice(group, func(i, j int) bool {
			if !group[i].CompletedAt.Equal(group[j].CompletedAt) {
				return group[i].CompletedAt.After(group[j].CompletedAt)
			}
			return group[i].ID > group[j].ID
		})
		out = append(out, DayGroup{Day: d, Completions: group})
	}
	return out
}
