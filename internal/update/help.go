package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"routined/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	var md strings.Builder
	for _, kb := range m.viewBindings() {
		md.WriteString(fmt.Sprintf("- **%s**: %s\n", kb.Key, kb.Action))
	}
	rendered := views.RenderMarkdown(md.String())
	return views.RenderHelpPanel(string(m.CurrentView), []string{rendered}, m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	}))
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Today, Action: "switch to Today"},
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.History, Action: "switch to History"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewToday:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "toggle done for today"},
			{Key: "a", Action: "quick-add a task"},
			{Key: "x", Action: "archive selected task"},
		}
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "r", Action: "enter reorder mode"},
			{Key: "J/K", Action: "move row while reordering"},
			{Key: "x", Action: "archive / restore"},
			{Key: "X", Action: "delete task and its history"},
		}
	case ViewHistory:
		return []KeyBinding{
			{Key: "j/k", Action: "scroll"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
