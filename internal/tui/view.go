package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = docStyle.Render(m.overview.View())
	case StateReminders:
		content = docStyle.Render(m.reminderList.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateAddTask:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	if m.status != "" {
		status = errorStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		status,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if i == int(StateReminders) && len(m.dash.Reminders) > 0 {
			title = fmt.Sprintf("%s %s", title, reminderBadge(m.dash.Reminders).Render(fmt.Sprint(len(m.dash.Reminders))))
		}
		active := m.state == SessionState(i) ||
			(SessionState(i) == StateTasks && (m.state == StateAddTask || m.state == StateConfirmDelete))
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	name := m.taskToDeleteID
	if t, err := m.store.GetTask(m.taskToDeleteID); err == nil {
		name = t.Title
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete task %q?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
