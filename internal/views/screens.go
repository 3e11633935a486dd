package views

import (
	"fmt"
	"strings"
)

type TodayItemData struct {
	ID       string
	Title    string
	Category string
	Done     bool
	OneTime  bool
}

type TodayPanelData struct {
	Day            string
	Items          []TodayItemData
	Cursor         int
	CompletedCount int
	TotalCount     int
	ProgressView   string
	QuickAddView   string
	QuickAddActive bool
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today %s  (%d/%d done)\n", data.Day, data.CompletedCount, data.TotalCount))
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView + "\n")
	}
	b.WriteString("actions: [space]toggle [a]add [x]archive [j/k]move\n\n")

	if len(data.Items) == 0 {
		b.WriteString("(nothing due today)\n")
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		box := "[ ]"
		title := item.Title
		if item.Done {
			box = "[x]"
			title = doneStyle.Render(title)
		}
		line := fmt.Sprintf("%s %s %s", cursor, box, title)
		if item.Category != "" {
			line += " " + categoryStyle.Render("@"+item.Category)
		}
		if item.OneTime {
			line += " (once)"
		}
		b.WriteString(line + "\n")
	}

	if data.QuickAddActive {
		b.WriteString("\nadd: " + data.QuickAddView + "\n")
		b.WriteString("syntax: title [every mon,wed | every day | monthly 1,15 | once] [@category] [from YYYY-MM-DD]")
	}
	return strings.TrimSpace(b.String())
}

type TaskRowData struct {
	ID         string
	Title      string
	Category   string
	Recurrence string
	StartDate  string
	Archived   bool
}

type TasksPanelData struct {
	Rows        []TaskRowData
	Cursor      int
	ReorderMode bool
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.ReorderMode {
		b.WriteString("reorder: [J/K]move row [enter]save [esc]cancel\n\n")
	} else {
		b.WriteString("actions: [r]reorder [x]archive/restore [X]delete [j/k]move\n\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("(no tasks yet, press [a] on the today view)")
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		title := row.Title
		if row.Archived {
			title = archivedStyle.Render(title)
		}
		line := fmt.Sprintf("%s %s  %s", cursor, title, row.Recurrence)
		if row.Category != "" {
			line += " " + categoryStyle.Render("@"+row.Category)
		}
		if row.StartDate != "" {
			line += " from:" + row.StartDate
		}
		if row.Archived {
			line += " (archived)"
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

type HistoryEntryData struct {
	TaskTitle   string
	CompletedAt string
}

type HistoryDayData struct {
	Day     string
	Entries []HistoryEntryData
}

type HistoryPanelData struct {
	Days         []HistoryDayData
	ViewportView string
}

func RenderHistoryPanel(data HistoryPanelData) string {
	if data.ViewportView != "" {
		return "history:\n" + data.ViewportView
	}
	return "history:\n" + RenderHistoryBody(data.Days)
}

// RenderHistoryBody renders the day groups without the panel chrome so the
// result can be fed into a scrolling viewport.
func RenderHistoryBody(days []HistoryDayData) string {
	if len(days) == 0 {
		return "(no completions recorded)"
	}
	var b strings.Builder
	for _, day := range days {
		b.WriteString(fmt.Sprintf("%s  (%d)\n", day.Day, len(day.Entries)))
		for _, e := range day.Entries {
			b.WriteString(fmt.Sprintf("  %s  %s\n", e.CompletedAt, e.TaskTitle))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(currentView string, bindings []string, helpView string) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(currentView),
		strings.Join(bindings, "\n"),
		helpView,
	)
}
