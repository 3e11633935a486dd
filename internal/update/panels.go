package update

import (
	"fmt"
	"strings"

	"routined/internal/model"
	"routined/internal/views"
)

func (m Model) currentDay() model.Day {
	if !m.Today.List.Day.IsZero() {
		return m.Today.List.Day
	}
	return m.svc.Calendar().DayOf(m.clock())
}

func (m Model) renderTodayView() string {
	items := make([]views.TodayItemData, 0, len(m.Today.List.Items))
	for _, item := range m.Today.List.Items {
		items = append(items, views.TodayItemData{
			ID:       item.Task.ID,
			Title:    item.Task.Title,
			Category: item.Task.Category,
			Done:     item.Done,
			OneTime:  !item.Task.Recurrence.IsRecurring(),
		})
	}

	pct := 0.0
	if m.Today.List.TotalCount > 0 {
		pct = float64(m.Today.List.CompletedCount) / float64(m.Today.List.TotalCount)
	}

	return views.RenderTodayPanel(views.TodayPanelData{
		Day:            m.currentDay().String(),
		Items:          items,
		Cursor:         m.Today.Cursor,
		CompletedCount: m.Today.List.CompletedCount,
		TotalCount:     m.Today.List.TotalCount,
		ProgressView:   m.todayProgress.ViewAs(pct),
		QuickAddView:   m.quickAddInput.View(),
		QuickAddActive: m.QuickAddActive,
	})
}

func (m Model) renderTasksView() string {
	rows := make([]views.TaskRowData, 0, len(m.Tasks.Rows))
	for _, task := range m.Tasks.Rows {
		start := ""
		if task.StartDate != nil {
			start = task.StartDate.String()
		}
		rows = append(rows, views.TaskRowData{
			ID:         task.ID,
			Title:      task.Title,
			Category:   task.Category,
			Recurrence: describeRecurrence(task.Recurrence),
			StartDate:  start,
			Archived:   !task.Active,
		})
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Rows:        rows,
		Cursor:      m.Tasks.Cursor,
		ReorderMode: m.Reorder.Active,
	})
}

func (m Model) renderHistoryView() string {
	return views.RenderHistoryPanel(views.HistoryPanelData{
		ViewportView: m.historyViewport.View(),
	})
}

func (m Model) historyDayData() []views.HistoryDayData {
	loc := m.svc.Calendar().Location()
	days := make([]views.HistoryDayData, 0, len(m.History.Groups))
	for _, group := range m.History.Groups {
		entries := make([]views.HistoryEntryData, 0, len(group.Completions))
		for _, c := range group.Completions {
			title, ok := m.History.Titles[c.TaskID]
			if !ok {
				title = c.TaskID
			}
			entries = append(entries, views.HistoryEntryData{
				TaskTitle:   title,
				CompletedAt: c.CompletedAt.In(loc).Format("15:04"),
			})
		}
		days = append(days, views.HistoryDayData{
			Day:     group.Day.String(),
			Entries: entries,
		})
	}
	return days
}

func describeRecurrence(r model.Recurrence) string {
	switch r.Kind {
	case model.RecurrenceOneTime:
		return "once"
	case model.RecurrenceDaily:
		return "daily"
	case model.RecurrenceWeekly:
		if len(r.Weekdays) == 0 {
			return "weekly"
		}
		parts := make([]string, 0, len(r.Weekdays))
		for _, w := range r.Weekdays {
			parts = append(parts, strings.ToLower(w.String()[:3]))
		}
		return "every " + strings.Join(parts, ",")
	case model.RecurrenceMonthly:
		if len(r.MonthDays) == 0 {
			return "monthly"
		}
		parts := make([]string, 0, len(r.MonthDays))
		for _, d := range r.MonthDays {
			parts = append(parts, fmt.Sprintf("%d", d))
		}
		return "monthly " + strings.Join(parts, ",")
	default:
		return string(r.Kind)
	}
}
