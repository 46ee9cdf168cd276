package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.setSize(ws.Width, ws.Height)
		return m, nil
	}

	switch m.state {
	case StateAddTask:
		cmd := m.updateAddTask(msg)
		return m, cmd
	case StateConfirmDelete:
		m.updateConfirmDelete(msg)
		return m, nil
	}

	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		m.taskForm = &TaskFormModel{Schedule: ScheduleToday}
		m.form = NewTaskForm(m.taskForm)
		m.state = StateAddTask
		return m, m.form.Init()

	case tasklist.ToggleTaskMsg:
		m.toggleTask(msg.ID)
		return m, nil

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Jump[:]...):
			for i, b := range m.keys.Jump {
				if key.Matches(msg, b) {
					m.state = SessionState(i)
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateDashboard:
		m.overview, cmd = m.overview.Update(msg)
	case StateReminders:
		m.reminderList, cmd = m.reminderList.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateAddTask(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.status = ""
		m.state = StateTasks
		return nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.addTask(*m.taskForm); err != nil {
			// keep the form open so the input can be corrected
			m.status = err.Error()
			m.form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.status = ""
		m.state = StateTasks
	case huh.StateAborted:
		m.state = StateTasks
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateConfirmDelete(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}
	switch keyMsg.String() {
	case "y", "Y":
		if m.taskToDeleteID != "" {
			m.deleteTask(m.taskToDeleteID)
		}
		m.taskToDeleteID = ""
		m.state = StateTasks
	case "n", "N", "esc":
		m.taskToDeleteID = ""
		m.state = StateTasks
	}
}

func (m *Model) addTask(fm TaskFormModel) error {
	task, err := BuildTask(fm, m.today(), m.now())
	if err != nil {
		return err
	}
	if err := m.store.AddTask(task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	m.refresh(task)
	return nil
}

func (m *Model) toggleTask(id string) {
	task, err := m.store.GetTask(id)
	if err != nil {
		m.fail("Failed to load task", err)
		return
	}
	task.Completed = !task.Completed
	if err := m.store.UpdateTask(task); err != nil {
		m.fail("Failed to update task", err)
		return
	}
	m.refresh(task)
}

func (m *Model) deleteTask(id string) {
	task, err := m.store.GetTask(id)
	if err != nil {
		m.fail("Failed to load task", err)
		return
	}
	if err := m.store.DeleteTask(id); err != nil {
		m.fail("Failed to delete task", err)
		return
	}
	m.refresh(task)
}

// refresh rescores the dates task touches and reloads the views.
func (m *Model) refresh(task models.DailyTask) {
	if _, err := dashboard.RefreshProductivity(m.store, dashboard.AffectedDates(task, m.today())...); err != nil {
		m.fail("Failed to refresh productivity", err)
	}
	m.reload()
}

func (m *Model) fail(what string, err error) {
	if errors.Is(err, models.ErrNotFound) {
		m.status = what + ": not found"
	} else {
		m.status = fmt.Sprintf("%s: %v", what, err)
	}
}
