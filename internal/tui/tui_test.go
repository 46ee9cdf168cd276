package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ventureboard/internal/config"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/memory"
	"github.com/julianstephens/ventureboard/internal/tui/components/tasklist"
)

var testNow = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *memory.Store) {
	t.Helper()
	store := memory.New()
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	tasks := []models.DailyTask{
		{ID: "t1", Title: "Stretch", IsEveryday: true, Completed: true},
		{ID: "t2", Title: "Ship release", Date: "2024-06-12"},
		{ID: "t3", Title: "Dentist", Date: "2024-06-20"},
	}
	for _, task := range tasks {
		if err := store.AddTask(task); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}
	m := newModel(store, nil, func() time.Time { return testNow })
	m.state = StateTasks
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelLoadsToday(t *testing.T) {
	m, _ := newTestModel(t)
	if m.status != "" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if got := m.taskList.Len(); got != 2 {
		t.Errorf("expected 2 tasks for today, got %d", got)
	}
	if m.dash.Today.ProductivityPercentage != 50 {
		t.Errorf("expected 50%%, got %d", m.dash.Today.ProductivityPercentage)
	}
}

func TestTimezoneOverride(t *testing.T) {
	_, store := newTestModel(t)
	late := func() time.Time { return time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC) }

	m := newModel(store, &config.Config{Timezone: "Asia/Kolkata"}, late)
	if m.dash.Date != "2024-06-13" {
		t.Errorf("expected Kolkata date 2024-06-13, got %s", m.dash.Date)
	}
	m = newModel(store, nil, late)
	if m.dash.Date != "2024-06-12" {
		t.Errorf("expected stored UTC date 2024-06-12, got %s", m.dash.Date)
	}
}

func TestTabCycling(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateDashboard

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateReminders {
		t.Errorf("expected reminders, got %d", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateDashboard {
		t.Errorf("expected wrap to dashboard, got %d", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateTasks {
		t.Errorf("expected tasks, got %d", m.state)
	}
}

func TestToggleTask(t *testing.T) {
	m, store := newTestModel(t)

	m = update(t, m, tasklist.ToggleTaskMsg{ID: "t2"})
	task, err := store.GetTask("t2")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if !task.Completed {
		t.Error("expected task to be completed")
	}
	if m.dash.Today.ProductivityPercentage != 100 {
		t.Errorf("expected 100%%, got %d", m.dash.Today.ProductivityPercentage)
	}
	entries, err := store.GetProductivityEntries()
	if err != nil {
		t.Fatalf("GetProductivityEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Date != "2024-06-12" {
		t.Errorf("expected one entry for 2024-06-12, got %+v", entries)
	}

	m = update(t, m, tasklist.ToggleTaskMsg{ID: "missing"})
	if !strings.Contains(m.status, "not found") {
		t.Errorf("expected not found status, got %q", m.status)
	}
}

func TestDeleteTaskConfirmation(t *testing.T) {
	m, store := newTestModel(t)

	m = update(t, m, tasklist.DeleteTaskMsg{ID: "t2"})
	if m.state != StateConfirmDelete {
		t.Fatalf("expected confirm state, got %d", m.state)
	}
	if !strings.Contains(m.View(), "Ship release") {
		t.Error("expected confirmation to name the task")
	}

	m = update(t, m, runes("n"))
	if m.state != StateTasks {
		t.Errorf("expected tasks state after cancel, got %d", m.state)
	}
	if _, err := store.GetTask("t2"); err != nil {
		t.Errorf("task should still exist: %v", err)
	}

	m = update(t, m, tasklist.DeleteTaskMsg{ID: "t2"})
	m = update(t, m, runes("y"))
	if _, err := store.GetTask("t2"); err == nil {
		t.Error("expected task to be deleted")
	}
	if got := m.taskList.Len(); got != 1 {
		t.Errorf("expected 1 task left, got %d", got)
	}
}

func TestAddTaskOpensForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tasklist.AddTaskMsg{})
	if m.state != StateAddTask || m.form == nil {
		t.Fatalf("expected add form, got state %d", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateTasks {
		t.Errorf("expected esc to close the form, got %d", m.state)
	}
}

func TestAddTask(t *testing.T) {
	m, store := newTestModel(t)
	if err := m.addTask(TaskFormModel{Title: "  Read  ", Schedule: ScheduleToday}); err != nil {
		t.Fatalf("addTask failed: %v", err)
	}
	tasks, err := store.GetAllTasks()
	if err != nil {
		t.Fatalf("GetAllTasks failed: %v", err)
	}
	if len(tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(tasks))
	}
	if m.taskList.Len() != 3 {
		t.Errorf("expected 3 tasks today, got %d", m.taskList.Len())
	}
	if m.dash.Today.TotalTasks != 3 {
		t.Errorf("expected 3 scored tasks, got %d", m.dash.Today.TotalTasks)
	}
}

func TestBuildTask(t *testing.T) {
	tests := []struct {
		name    string
		form    TaskFormModel
		check   func(models.DailyTask) bool
		wantErr bool
	}{
		{
			name:  "today",
			form:  TaskFormModel{Title: "Read", Schedule: ScheduleToday},
			check: func(d models.DailyTask) bool { return d.Date == "2024-06-12" },
		},
		{
			name:  "everyday",
			form:  TaskFormModel{Title: "Walk", Schedule: ScheduleEveryday},
			check: func(d models.DailyTask) bool { return d.IsEveryday && d.Date == "" },
		},
		{
			name:  "date",
			form:  TaskFormModel{Title: "Call", Schedule: ScheduleDate, Date: "2024-07-01"},
			check: func(d models.DailyTask) bool { return d.Date == "2024-07-01" },
		},
		{
			name:  "range",
			form:  TaskFormModel{Title: "Sprint", Schedule: ScheduleRange, StartDate: "2024-06-10", EndDate: "2024-06-14"},
			check: func(d models.DailyTask) bool { return d.StartDate == "2024-06-10" && d.EndDate == "2024-06-14" },
		},
		{name: "empty title", form: TaskFormModel{Title: " ", Schedule: ScheduleToday}, wantErr: true},
		{name: "missing date", form: TaskFormModel{Title: "Call", Schedule: ScheduleDate}, wantErr: true},
		{name: "half range", form: TaskFormModel{Title: "Sprint", Schedule: ScheduleRange, StartDate: "2024-06-10"}, wantErr: true},
		{name: "reversed range", form: TaskFormModel{Title: "Sprint", Schedule: ScheduleRange, StartDate: "2024-06-14", EndDate: "2024-06-10"}, wantErr: true},
		{name: "bad date", form: TaskFormModel{Title: "Call", Schedule: ScheduleDate, Date: "July 1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := BuildTask(tt.form, "2024-06-12", testNow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildTask() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if task.ID == "" {
				t.Error("expected an ID")
			}
			if !tt.check(task) {
				t.Errorf("unexpected task %+v", task)
			}
		})
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m.state = StateDashboard
	view := m.View()
	for _, want := range []string{"Dashboard", "Reminders", "Tasks", "Net worth", "Streak"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}

	m = update(t, m, runes("q"))
	if !m.quitting || m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestJumpToTab(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, runes("1"))
	if m.state != StateDashboard {
		t.Errorf("expected dashboard, got %d", m.state)
	}
	m = update(t, m, runes("2"))
	if m.state != StateReminders {
		t.Errorf("expected reminders, got %d", m.state)
	}
	m = update(t, m, runes("3"))
	if m.state != StateTasks {
		t.Errorf("expected tasks, got %d", m.state)
	}
}

func TestReminderBadgeUsesMostUrgent(t *testing.T) {
	rs := []models.Reminder{{Priority: models.PriorityLow}, {Priority: models.PriorityMedium}}
	if got := reminderBadge(rs).GetBackground(); got != colorMedium {
		t.Errorf("expected medium colour, got %v", got)
	}
	rs = append(rs, models.Reminder{Priority: models.PriorityHigh}, models.Reminder{Priority: models.PriorityMedium})
	if got := reminderBadge(rs).GetBackground(); got != colorHigh {
		t.Errorf("expected high colour, got %v", got)
	}
	if got := reminderBadge(nil).GetBackground(); got != colorLow {
		t.Errorf("expected low colour, got %v", got)
	}
}
