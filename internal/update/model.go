// Package update owns the bubbletea program: the model, the message types,
// and the update loop. All persistence goes through the service; commands in
// commands.go turn service calls into messages.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"routined/internal/engine"
	"routined/internal/model"
	"routined/internal/service"
)

type View string

const (
	ViewToday   View = "Today"
	ViewTasks   View = "Tasks"
	ViewHistory View = "History"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today   string
	Tasks   string
	History string
	Help    string
	Quit    string
}

type TodayState struct {
	List   engine.TodayList
	Cursor int
}

type TasksState struct {
	Rows   []model.Task
	Cursor int
}

// ReorderState holds the pending manual order while reorder mode is active.
// Rows are shuffled in place; Saved order is only persisted on enter.
type ReorderState struct {
	Active   bool
	Original []model.Task
}

type HistoryState struct {
	Groups []engine.DayGroup
	Titles map[string]string
}

type Model struct {
	svc   *service.Service
	clock func() time.Time

	CurrentView View
	Today       TodayState
	Tasks       TasksState
	Reorder     ReorderState
	History     HistoryState
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	QuickAddActive  bool
	quickAddInput   textinput.Model
	todayProgress   progress.Model
	historyViewport viewport.Model
	helpModel       help.Model
}

// Messages. DayRolledOverMsg is exported because the midnight cron in main
// injects it with program.Send; the rest stay inside the package loop.

type DayRolledOverMsg struct{}

type todayLoadedMsg struct {
	list engine.TodayList
}

type tasksLoadedMsg struct {
	tasks []model.Task
}

type historyLoadedMsg struct {
	groups []engine.DayGroup
	titles map[string]string
}

type taskAddedMsg struct {
	task model.Task
}

type toggledMsg struct {
	taskID    string
	satisfied bool
}

type orderSavedMsg struct{}

type archiveChangedMsg struct {
	taskID   string
	archived bool
}

type taskDeletedMsg struct {
	taskID string
}

type errMsg struct {
	err error
}

func NewModel(svc *service.Service, clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}

	input := textinput.New()
	input.Placeholder = "water plants every mon,thu @home"
	input.CharLimit = 200
	input.Width = 60

	vp := viewport.New(70, 14)

	m := Model{
		svc:         svc,
		clock:       clock,
		CurrentView: ViewToday,
		History: HistoryState{
			Titles: make(map[string]string),
		},
		Keys: GlobalKeyMap{
			Today:   "1",
			Tasks:   "2",
			History: "3",
			Help:    "?",
			Quit:    "q",
		},
		quickAddInput:   input,
		todayProgress:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		historyViewport: vp,
		helpModel:       help.New(),
	}
	return m
}

func (m *Model) selectedTodayItem() (engine.TodayItem, bool) {
	items := m.Today.List.Items
	if len(items) == 0 || m.Today.Cursor < 0 || m.Today.Cursor >= len(items) {
		return engine.TodayItem{}, false
	}
	return items[m.Today.Cursor], true
}

func (m *Model) selectedTaskRow() (model.Task, bool) {
	if len(m.Tasks.Rows) == 0 || m.Tasks.Cursor < 0 || m.Tasks.Cursor >= len(m.Tasks.Rows) {
		return model.Task{}, false
	}
	return m.Tasks.Rows[m.Tasks.Cursor], true
}

// activeRowIDs extracts the ids of active rows in display order; this is the
// ordering contract the service expects when saving a manual reorder.
func (m *Model) activeRowIDs() []string {
	ids := make([]string, 0, len(m.Tasks.Rows))
	for _, row := range m.Tasks.Rows {
		if row.Active {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
