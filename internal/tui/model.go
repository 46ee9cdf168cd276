// Package tui is the interactive terminal dashboard.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ventureboard/internal/config"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/logger"
	"github.com/julianstephens/ventureboard/internal/storage"
	"github.com/julianstephens/ventureboard/internal/tui/components/overview"
	"github.com/julianstephens/ventureboard/internal/tui/components/reminderlist"
	"github.com/julianstephens/ventureboard/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateReminders
	StateTasks
	StateAddTask
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

var tabTitles = []string{"Dashboard", "Reminders", "Tasks"}

type Model struct {
	store          storage.Provider
	env            *config.Config
	now            func() time.Time
	state          SessionState
	keys           KeyMap
	help           help.Model
	overview       overview.Model
	reminderList   reminderlist.Model
	taskList       tasklist.Model
	dash           dashboard.Dashboard
	form           *huh.Form
	taskForm       *TaskFormModel
	taskToDeleteID string
	status         string // last error shown under the tabs
	quitting       bool
	width          int
	height         int
}

func NewModel(store storage.Provider, env *config.Config) Model {
	return newModel(store, env, time.Now)
}

func newModel(store storage.Provider, env *config.Config, now func() time.Time) Model {
	m := Model{
		store:        store,
		env:          env,
		now:          now,
		state:        StateDashboard,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		overview:     overview.New(0, 0),
		reminderList: reminderlist.New(nil, 0, 0),
		taskList:     tasklist.New(nil, 0, 0),
	}
	m.reload()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.NextTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	if m.state == StateTasks {
		keys = append(keys, m.keys.Add, m.keys.Toggle, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.NextTab, m.keys.PrevTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := append([]key.Binding{m.keys.Up, m.keys.Down}, m.keys.Jump[:]...)

	var actions []key.Binding
	if m.state == StateTasks {
		actions = []key.Binding{m.keys.Add, m.keys.Toggle, m.keys.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// localNow is the current time in the resolved timezone, falling back to
// the system zone when settings cannot be read.
func (m *Model) localNow() time.Time {
	now := m.now()
	settings, err := m.store.GetSettings()
	if err != nil {
		return now
	}
	local, err := m.env.LocalTime(now, settings)
	if err != nil {
		return now
	}
	return local
}

func (m *Model) today() string {
	return m.localNow().Format(constants.DateFormat)
}

// reload recomputes the dashboard and pushes it into every component.
func (m *Model) reload() {
	dash, err := dashboard.Compute(m.store, m.localNow(), constants.DefaultProductivityDays)
	if err != nil {
		logger.Error("Failed to compute dashboard", "error", err)
		m.status = fmt.Sprintf("Failed to load dashboard: %v", err)
		return
	}
	m.dash = dash
	m.overview.SetDashboard(dash)
	m.reminderList.SetReminders(dash.Reminders)
	m.taskList.SetTasks(dash.TodayTasks)
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := docStyle.GetFrameSize()
	// tabs, status and help lines
	contentHeight := height - v - 4
	if contentHeight < 0 {
		contentHeight = 0
	}
	m.overview.SetSize(width-h, contentHeight)
	m.reminderList.SetSize(width-h, contentHeight)
	m.taskList.SetSize(width-h, contentHeight)
}
