package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"routined/internal/quickadd"
	"routined/internal/service"
)

func (m Model) loadTodayCmd() tea.Cmd {
	return func() tea.Msg {
		list, err := m.svc.Today(context.Background(), m.clock())
		if err != nil {
			return errMsg{err: err}
		}
		return todayLoadedMsg{list: list}
	}
}

func (m Model) loadTasksCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.svc.Tasks(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		groups, err := m.svc.History(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		tasks, err := m.svc.Tasks(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		titles := make(map[string]string, len(tasks))
		for _, task := range tasks {
			titles[task.ID] = task.Title
		}
		return historyLoadedMsg{groups: groups, titles: titles}
	}
}

func (m Model) addTaskCmd(raw string) tea.Cmd {
	return func() tea.Msg {
		in, err := quickadd.Parse(raw)
		if err != nil {
			return errMsg{err: err}
		}
		task, err := m.svc.CreateTask(context.Background(), service.TaskInput{
			Title:      in.Title,
			Category:   in.Category,
			Recurrence: in.Recurrence,
			StartDate:  in.StartDate,
		}, m.clock())
		if err != nil {
			return errMsg{err: err}
		}
		return taskAddedMsg{task: task}
	}
}

func (m Model) toggleCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		satisfied, err := m.svc.Toggle(context.Background(), taskID, m.clock())
		if err != nil {
			return errMsg{err: err}
		}
		return toggledMsg{taskID: taskID, satisfied: satisfied}
	}
}

func (m Model) saveOrderCmd(ids []string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.ReorderTasks(context.Background(), ids); err != nil {
			return errMsg{err: err}
		}
		return orderSavedMsg{}
	}
}

func (m Model) setArchivedCmd(taskID string, archived bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if archived {
			err = m.svc.ArchiveTask(context.Background(), taskID, m.clock())
		} else {
			err = m.svc.UnarchiveTask(context.Background(), taskID, m.clock())
		}
		if err != nil {
			return errMsg{err: err}
		}
		return archiveChangedMsg{taskID: taskID, archived: archived}
	}
}

func (m Model) deleteTaskCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeleteTask(context.Background(), taskID); err != nil {
			return errMsg{err: err}
		}
		return taskDeletedMsg{taskID: taskID}
	}
}

// refreshAllCmd reloads every panel; used after mutations and at midnight.
func (m Model) refreshAllCmd() tea.Cmd {
	return tea.Batch(m.loadTodayCmd(), m.loadTasksCmd(), m.loadHistoryCmd())
}
