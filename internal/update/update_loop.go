package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"routined/internal/model"
	"routined/internal/views"
)

func (m Model) Init() tea.Cmd {
	return m.refreshAllCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.QuickAddActive {
			return m.handleQuickAddKey(typed)
		}
		if m.Reorder.Active {
			return m.handleReorderKey(typed)
		}
		return m.handleGlobalKey(typed)

	case todayLoadedMsg:
		m.Today.List = typed.list
		m.Today.Cursor = clampCursor(m.Today.Cursor, len(typed.list.Items))
		return m, nil

	case tasksLoadedMsg:
		m.Tasks.Rows = typed.tasks
		m.Tasks.Cursor = clampCursor(m.Tasks.Cursor, len(typed.tasks))
		return m, nil

	case historyLoadedMsg:
		m.History.Groups = typed.groups
		m.History.Titles = typed.titles
		m.historyViewport.SetContent(views.RenderHistoryBody(m.historyDayData()))
		return m, nil

	case taskAddedMsg:
		m.Status = StatusBar{Text: fmt.Sprintf("added %q", typed.task.Title)}
		return m, m.refreshAllCmd()

	case toggledMsg:
		if typed.satisfied {
			m.Status = StatusBar{Text: "marked done"}
		} else {
			m.Status = StatusBar{Text: "marked not done"}
		}
		return m, m.refreshAllCmd()

	case orderSavedMsg:
		m.Status = StatusBar{Text: "order saved"}
		return m, m.refreshAllCmd()

	case archiveChangedMsg:
		if typed.archived {
			m.Status = StatusBar{Text: "task archived"}
		} else {
			m.Status = StatusBar{Text: "task restored"}
		}
		return m, m.refreshAllCmd()

	case taskDeletedMsg:
		m.Status = StatusBar{Text: "task deleted"}
		return m, m.refreshAllCmd()

	case DayRolledOverMsg:
		m.Status = StatusBar{Text: "new day"}
		return m, m.refreshAllCmd()

	case errMsg:
		m.LastError = typed.err
		m.Status = StatusBar{Text: typed.err.Error(), IsError: true}
		return m, nil
	}

	return m, nil
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Today:
		m.CurrentView = ViewToday
		return m, m.loadTodayCmd()
	case m.Keys.Tasks:
		m.CurrentView = ViewTasks
		return m, m.loadTasksCmd()
	case m.Keys.History:
		m.CurrentView = ViewHistory
		return m, m.loadHistoryCmd()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	}

	switch m.CurrentView {
	case ViewToday:
		return m.handleTodayKey(msg)
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) handleTodayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.Today.Cursor = clampCursor(m.Today.Cursor+1, len(m.Today.List.Items))
	case "k", "up":
		m.Today.Cursor = clampCursor(m.Today.Cursor-1, len(m.Today.List.Items))
	case " ":
		if item, ok := m.selectedTodayItem(); ok {
			return m, m.toggleCmd(item.Task.ID)
		}
	case "a":
		m.QuickAddActive = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		return m, nil
	case "x":
		if item, ok := m.selectedTodayItem(); ok {
			return m, m.setArchivedCmd(item.Task.ID, true)
		}
	}
	return m, nil
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.Tasks.Cursor = clampCursor(m.Tasks.Cursor+1, len(m.Tasks.Rows))
	case "k", "up":
		m.Tasks.Cursor = clampCursor(m.Tasks.Cursor-1, len(m.Tasks.Rows))
	case "r":
		if len(m.Tasks.Rows) > 0 {
			m.Reorder.Active = true
			m.Reorder.Original = append([]model.Task(nil), m.Tasks.Rows...)
		}
	case "x":
		if row, ok := m.selectedTaskRow(); ok {
			return m, m.setArchivedCmd(row.ID, row.Active)
		}
	case "X":
		if row, ok := m.selectedTaskRow(); ok {
			return m, m.deleteTaskCmd(row.ID)
		}
	}
	return m, nil
}

func (m Model) handleReorderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "J":
		m.moveTaskRow(1)
	case "K":
		m.moveTaskRow(-1)
	case "j", "down":
		m.Tasks.Cursor = clampCursor(m.Tasks.Cursor+1, len(m.Tasks.Rows))
	case "k", "up":
		m.Tasks.Cursor = clampCursor(m.Tasks.Cursor-1, len(m.Tasks.Rows))
	case "enter":
		m.Reorder = ReorderState{}
		return m, m.saveOrderCmd(m.activeRowIDs())
	case "esc", "ctrl+c":
		m.Tasks.Rows = m.Reorder.Original
		m.Reorder = ReorderState{}
		m.Status = StatusBar{Text: "reorder cancelled"}
	}
	return m, nil
}

func (m *Model) moveTaskRow(delta int) {
	from := m.Tasks.Cursor
	to := from + delta
	if from < 0 || from >= len(m.Tasks.Rows) || to < 0 || to >= len(m.Tasks.Rows) {
		return
	}
	m.Tasks.Rows[from], m.Tasks.Rows[to] = m.Tasks.Rows[to], m.Tasks.Rows[from]
	m.Tasks.Cursor = to
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.historyViewport.ScrollDown(1)
	case "k", "up":
		m.historyViewport.ScrollUp(1)
	}
	return m, nil
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.QuickAddActive = false
		m.quickAddInput.Blur()
		return m, nil
	case "enter":
		raw := strings.TrimSpace(m.quickAddInput.Value())
		m.QuickAddActive = false
		m.quickAddInput.Blur()
		if raw == "" {
			return m, nil
		}
		return m, m.addTaskCmd(raw)
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	body := ""
	switch m.CurrentView {
	case ViewToday:
		body = m.renderTodayView()
	case ViewTasks:
		body = m.renderTasksView()
	case ViewHistory:
		body = m.renderHistoryView()
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("routined | view: %s | %s", m.CurrentView, m.currentDay()),
		Body:       body,
		StatusLine: status,
		Overlay:    m.renderHelpIfVisible(),
		Footer:     fmt.Sprintf("keys: %s today | %s tasks | %s history | %s help | %s quit", m.Keys.Today, m.Keys.Tasks, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}
