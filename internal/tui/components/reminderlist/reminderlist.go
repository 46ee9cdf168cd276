package reminderlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ventureboard/internal/models"
)

var badgeStyles = map[models.Priority]lipgloss.Style{
	models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

type Item struct {
	Reminder models.Reminder
}

func (i Item) Title() string {
	badge := "[" + strings.ToUpper(string(i.Reminder.Priority)) + "]"
	if style, ok := badgeStyles[i.Reminder.Priority]; ok {
		badge = style.Render(badge)
	}
	return badge + " " + i.Reminder.Title
}

func (i Item) Description() string {
	if i.Reminder.DueDate != "" {
		return i.Reminder.Message + " · " + i.Reminder.DueDate
	}
	return i.Reminder.Message
}

func (i Item) FilterValue() string { return i.Reminder.Title }

type Model struct {
	list list.Model
}

func New(rs []models.Reminder, width, height int) Model {
	l := list.New(items(rs), list.NewDefaultDelegate(), width, height)
	l.Title = "Reminders"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func items(rs []models.Reminder) []list.Item {
	out := make([]list.Item, len(rs))
	for i, r := range rs {
		out[i] = Item{Reminder: r}
	}
	return out
}

func (m *Model) SetReminders(rs []models.Reminder) {
	m.list.SetItems(items(rs))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  All caught up. No reminders right now."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
