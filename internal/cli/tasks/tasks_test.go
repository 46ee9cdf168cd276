package tasks

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store: store,
		Out:   out,
		Now: func() time.Time {
			return time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
		},
	}
	return ctx, out, func() { store.Close() }
}

func entryFor(t *testing.T, ctx *cli.Context, date string) (models.ProductivityEntry, bool) {
	t.Helper()
	entries, err := ctx.Store.GetProductivityEntries()
	if err != nil {
		t.Fatalf("failed to get productivity entries: %v", err)
	}
	for _, e := range entries {
		if e.Date == date {
			return e, true
		}
	}
	return models.ProductivityEntry{}, false
}

func taskByTitle(t *testing.T, ctx *cli.Context, title string) models.DailyTask {
	t.Helper()
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		t.Fatalf("failed to get tasks: %v", err)
	}
	for _, task := range tasks {
		if task.Title == title {
			return task
		}
	}
	t.Fatalf("task %q not found", title)
	return models.DailyTask{}
}

func TestTaskAddValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     TaskAddCmd
		wantErr bool
	}{
		{name: "single day", cmd: TaskAddCmd{Title: "read", Date: "2024-06-12"}},
		{name: "defaults to today", cmd: TaskAddCmd{Title: "read"}},
		{name: "everyday", cmd: TaskAddCmd{Title: "read", Everyday: true}},
		{name: "range", cmd: TaskAddCmd{Title: "read", Start: "2024-06-10", End: "2024-06-14"}},
		{name: "empty title", cmd: TaskAddCmd{Title: "  "}, wantErr: true},
		{name: "everyday with date", cmd: TaskAddCmd{Title: "read", Everyday: true, Date: "2024-06-12"}, wantErr: true},
		{name: "date with range", cmd: TaskAddCmd{Title: "read", Date: "2024-06-12", Start: "2024-06-10", End: "2024-06-14"}, wantErr: true},
		{name: "half range", cmd: TaskAddCmd{Title: "read", Start: "2024-06-10"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskAddScoresToday(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&TaskAddCmd{Title: "exercise", Everyday: true}).Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	if err := (&TaskAddCmd{Title: "write report"}).Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}

	task := taskByTitle(t, ctx, "write report")
	if task.Date != "2024-06-12" {
		t.Errorf("expected task dated today, got %q", task.Date)
	}
	entry, ok := entryFor(t, ctx, "2024-06-12")
	if !ok {
		t.Fatal("expected a productivity entry for today")
	}
	if entry.TotalTasks != 2 || entry.CompletedTasks != 0 || entry.ProductivityPercentage != 0 {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestTaskDoneAndUndo(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	for _, title := range []string{"a", "b", "c"} {
		if err := (&TaskAddCmd{Title: title}).Run(ctx); err != nil {
			t.Fatalf("task add failed: %v", err)
		}
	}
	a := taskByTitle(t, ctx, "a")

	if err := (&TaskDoneCmd{ID: a.ID}).Run(ctx); err != nil {
		t.Fatalf("task done failed: %v", err)
	}
	entry, _ := entryFor(t, ctx, "2024-06-12")
	if entry.CompletedTasks != 1 || entry.ProductivityPercentage != 33 {
		t.Errorf("expected 1/3 at 33%%, got %+v", entry)
	}

	// Completing twice is a no-op
	out.Reset()
	if err := (&TaskDoneCmd{ID: a.ID}).Run(ctx); err != nil {
		t.Fatalf("task done failed: %v", err)
	}
	if !strings.Contains(out.String(), "already done") {
		t.Errorf("expected already done message, got %q", out.String())
	}

	if err := (&TaskUndoCmd{ID: a.ID}).Run(ctx); err != nil {
		t.Fatalf("task undo failed: %v", err)
	}
	entry, _ = entryFor(t, ctx, "2024-06-12")
	if entry.CompletedTasks != 0 || entry.ProductivityPercentage != 0 {
		t.Errorf("expected 0/3 after undo, got %+v", entry)
	}

	if err := (&TaskDoneCmd{ID: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for missing task")
	}
}

func TestTaskDeleteRescores(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&TaskAddCmd{Title: "done one"}).Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	if err := (&TaskAddCmd{Title: "open one"}).Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	if err := (&TaskDoneCmd{ID: taskByTitle(t, ctx, "done one").ID}).Run(ctx); err != nil {
		t.Fatalf("task done failed: %v", err)
	}

	if err := (&TaskDeleteCmd{ID: taskByTitle(t, ctx, "open one").ID}).Run(ctx); err != nil {
		t.Fatalf("task delete failed: %v", err)
	}
	entry, _ := entryFor(t, ctx, "2024-06-12")
	if entry.TotalTasks != 1 || entry.ProductivityPercentage != 100 {
		t.Errorf("expected 1/1 at 100%% after delete, got %+v", entry)
	}
}

func TestTaskRangeScoresTodayOnly(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	old := models.ProductivityEntry{Date: "2024-06-10", TotalTasks: 2, CompletedTasks: 2, ProductivityPercentage: 100}
	if err := ctx.Store.SaveProductivityEntry(old); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	if err := (&TaskAddCmd{Title: "course", Start: "2024-06-10", End: "2024-06-20"}).Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	if _, ok := entryFor(t, ctx, "2024-06-12"); !ok {
		t.Error("expected entry for today")
	}
	if _, ok := entryFor(t, ctx, "2024-06-11"); ok {
		t.Error("earlier days in the range should not be scored")
	}
	if entry, _ := entryFor(t, ctx, "2024-06-10"); entry != old {
		t.Errorf("earlier entry changed: %+v", entry)
	}
	if _, ok := entryFor(t, ctx, "2024-06-13"); ok {
		t.Error("future days should not be scored")
	}
}

func TestTaskList(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&TaskAddCmd{Title: "today task"}).Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	if err := (&TaskAddCmd{Title: "tomorrow task", Date: "tomorrow"}).Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}

	out.Reset()
	if err := (&TaskListCmd{}).Run(ctx); err != nil {
		t.Fatalf("task list failed: %v", err)
	}
	if !strings.Contains(out.String(), "today task") || strings.Contains(out.String(), "tomorrow task") {
		t.Errorf("unexpected list for today:\n%s", out.String())
	}

	out.Reset()
	if err := (&TaskListCmd{All: true}).Run(ctx); err != nil {
		t.Fatalf("task list failed: %v", err)
	}
	if !strings.Contains(out.String(), "tomorrow task") {
		t.Errorf("expected all tasks, got:\n%s", out.String())
	}
}

func TestProductivityCmd(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	for _, e := range []models.ProductivityEntry{
		{Date: "2024-06-10", TotalTasks: 2, CompletedTasks: 2, ProductivityPercentage: 100},
		{Date: "2024-06-11", TotalTasks: 2, CompletedTasks: 1, ProductivityPercentage: 50},
	} {
		if err := ctx.Store.SaveProductivityEntry(e); err != nil {
			t.Fatalf("failed to save entry: %v", err)
		}
	}

	if err := (&ProductivityCmd{Days: 7}).Run(ctx); err != nil {
		t.Fatalf("productivity failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Streak: 2 day(s)", "Last 7 days", "Best day:   2024-06-10 (100%)"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}

	if err := (&ProductivityCmd{Days: 0}).Run(ctx); err == nil {
		t.Error("expected error for zero days")
	}
}

func TestPomodoro(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&PomodoroLogCmd{Minutes: 25, Label: "deep work", At: "09:00"}).Run(ctx); err != nil {
		t.Fatalf("pomodoro log failed: %v", err)
	}
	if err := (&PomodoroLogCmd{Minutes: 50, Abandoned: true}).Run(ctx); err != nil {
		t.Fatalf("pomodoro log failed: %v", err)
	}
	if err := (&PomodoroLogCmd{Minutes: 0}).Run(ctx); err == nil {
		t.Error("expected error for zero minutes")
	}
	if err := (&PomodoroLogCmd{Minutes: 25, At: "9am"}).Run(ctx); err == nil {
		t.Error("expected error for bad start time")
	}

	sessions, err := ctx.Store.GetAllPomodoroSessions()
	if err != nil || len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d (err %v)", len(sessions), err)
	}

	out.Reset()
	if err := (&PomodoroListCmd{Days: 7}).Run(ctx); err != nil {
		t.Fatalf("pomodoro list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Focus time: 0h25m over 2 session(s)") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}
}
