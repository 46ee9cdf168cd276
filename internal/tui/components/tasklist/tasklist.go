package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ventureboard/internal/models"
)

type AddTaskMsg struct{}

type DeleteTaskMsg struct {
	ID string
}

type ToggleTaskMsg struct {
	ID string
}

type Item struct {
	Task models.DailyTask
}

func (i Item) Title() string {
	if i.Task.Completed {
		return "✔ " + i.Task.Title
	}
	return "○ " + i.Task.Title
}

func (i Item) Description() string {
	switch {
	case i.Task.IsEveryday:
		return "every day"
	case i.Task.Date != "":
		return "on " + i.Task.Date
	case i.Task.StartDate != "":
		return fmt.Sprintf("%s → %s", i.Task.StartDate, i.Task.EndDate)
	}
	return ""
}

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "done/undo"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.DailyTask, width, height int) Model {
	l := list.New(items(tasks), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	return Model{list: l, keys: keys}
}

func items(tasks []models.DailyTask) []list.Item {
	out := make([]list.Item, len(tasks))
	for i, t := range tasks {
		out[i] = Item{Task: t}
	}
	return out
}

// SetTasks replaces the items and keeps the cursor in range.
func (m *Model) SetTasks(tasks []models.DailyTask) {
	idx := m.list.Index()
	m.list.SetItems(items(tasks))
	if idx >= len(tasks) && len(tasks) > 0 {
		idx = len(tasks) - 1
	}
	m.list.Select(idx)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the highlighted task, if any.
func (m Model) Selected() (models.DailyTask, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Task, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleTaskMsg{ID: t.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: t.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Nothing scheduled for today.\n  Press 'a' to add a task."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
