package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"routined/internal/engine"
	"routined/internal/model"
	"routined/internal/service"
	"routined/internal/storage"
)

func newTestModel(t *testing.T) (Model, *service.Service) {
	t.Helper()
	repo := storage.NewMemoryRepository()
	svc := service.New(repo, engine.New(model.NewCalendar(time.UTC)), nil, nil)
	clock := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return NewModel(svc, clock), svc
}

func seedTask(t *testing.T, svc *service.Service, title string, rec model.Recurrence) model.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), service.TaskInput{
		Title:      title,
		Recurrence: rec,
	}, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("seed task %q: %v", title, err)
	}
	return task
}

// drive runs a command and feeds the resulting message back into the model,
// the way the bubbletea runtime would.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.CurrentView != ViewToday {
		t.Fatalf("expected default view %q, got %q", ViewToday, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestKeySwitchesView(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	next := updated.(Model)
	if next.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	next = updated.(Model)
	if next.CurrentView != ViewHistory {
		t.Fatalf("expected history view, got %q", next.CurrentView)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestTodayLoadShowsDueTasks(t *testing.T) {
	m, svc := newTestModel(t)
	seedTask(t, svc, "water plants", model.Recurrence{Kind: model.RecurrenceDaily})
	seedTask(t, svc, "renew passport", model.Recurrence{Kind: model.RecurrenceOneTime})

	m = drive(t, m, m.loadTodayCmd())
	if len(m.Today.List.Items) != 2 {
		t.Fatalf("expected 2 due items, got %d", len(m.Today.List.Items))
	}
	if m.Today.List.CompletedCount != 0 || m.Today.List.TotalCount != 2 {
		t.Fatalf("unexpected counts: %d/%d", m.Today.List.CompletedCount, m.Today.List.TotalCount)
	}
}

func TestSpaceTogglesSelectedTask(t *testing.T) {
	m, svc := newTestModel(t)
	seedTask(t, svc, "water plants", model.Recurrence{Kind: model.RecurrenceDaily})
	m = drive(t, m, m.loadTodayCmd())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected toggle command")
	}
	msg := cmd()
	toggled, ok := msg.(toggledMsg)
	if !ok {
		t.Fatalf("expected toggledMsg, got %T", msg)
	}
	if !toggled.satisfied {
		t.Fatal("expected toggle to mark done")
	}

	m = drive(t, m, m.loadTodayCmd())
	if !m.Today.List.Items[0].Done {
		t.Fatal("expected item marked done after reload")
	}
	if m.Today.List.CompletedCount != 1 {
		t.Fatalf("expected 1 completed, got %d", m.Today.List.CompletedCount)
	}
}

func TestQuickAddFlow(t *testing.T) {
	m, svc := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updated.(Model)
	if !m.QuickAddActive {
		t.Fatal("expected quick-add active after a")
	}

	for _, r := range "gym every mon,tue @health" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.QuickAddActive {
		t.Fatal("expected quick-add closed after enter")
	}
	if cmd == nil {
		t.Fatal("expected add command")
	}
	msg := cmd()
	added, ok := msg.(taskAddedMsg)
	if !ok {
		t.Fatalf("expected taskAddedMsg, got %T", msg)
	}
	if added.task.Title != "gym" || added.task.Category != "health" {
		t.Fatalf("unexpected task: %+v", added.task)
	}

	tasks, err := svc.Tasks(context.Background())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 persisted task, got %d", len(tasks))
	}
}

func TestQuickAddEscCancels(t *testing.T) {
	m, svc := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.QuickAddActive {
		t.Fatal("expected quick-add closed after esc")
	}
	tasks, _ := svc.Tasks(context.Background())
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestReorderFlowPersistsOrder(t *testing.T) {
	m, svc := newTestModel(t)
	first := seedTask(t, svc, "first", model.Recurrence{Kind: model.RecurrenceDaily})
	second := seedTask(t, svc, "second", model.Recurrence{Kind: model.RecurrenceDaily})

	m.CurrentView = ViewTasks
	m = drive(t, m, m.loadTasksCmd())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(Model)
	if !m.Reorder.Active {
		t.Fatal("expected reorder mode active")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'J'}})
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.Reorder.Active {
		t.Fatal("expected reorder mode closed after enter")
	}
	m = drive(t, m, cmd)

	tasks, err := svc.Tasks(context.Background())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Fatalf("expected order [second first], got [%s %s]", tasks[0].Title, tasks[1].Title)
	}
}

func TestReorderEscRestoresRows(t *testing.T) {
	m, svc := newTestModel(t)
	seedTask(t, svc, "first", model.Recurrence{Kind: model.RecurrenceDaily})
	seedTask(t, svc, "second", model.Recurrence{Kind: model.RecurrenceDaily})

	m.CurrentView = ViewTasks
	m = drive(t, m, m.loadTasksCmd())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'J'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.Reorder.Active {
		t.Fatal("expected reorder mode closed after esc")
	}
	if m.Tasks.Rows[0].Title != "first" {
		t.Fatalf("expected original order restored, got %q first", m.Tasks.Rows[0].Title)
	}
}

func TestArchiveKeyOnTasksView(t *testing.T) {
	m, svc := newTestModel(t)
	task := seedTask(t, svc, "gym", model.Recurrence{Kind: model.RecurrenceDaily})

	m.CurrentView = ViewTasks
	m = drive(t, m, m.loadTasksCmd())
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = updated.(Model)
	m = drive(t, m, cmd)

	got, err := svc.Tasks(context.Background())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if got[0].ID != task.ID || got[0].Active {
		t.Fatalf("expected task archived, got %+v", got[0])
	}
}

func TestErrMsgSetsStatus(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(errMsg{err: errors.New("boom")})
	next := updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
}

func TestDayRolledOverRefreshes(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(DayRolledOverMsg{})
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected refresh command on rollover")
	}
	if next.Status.Text != "new day" {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _ := newTestModel(t)
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "view: Today") {
		t.Fatalf("expected view text in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
	if !strings.Contains(out, "2026-03-10") {
		t.Fatalf("expected current day in header: %q", out)
	}
}
