package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/productivity"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a daily task."`
	Done   TaskDoneCmd   `cmd:"" help:"Mark a task as completed."`
	Undo   TaskUndoCmd   `cmd:"" help:"Mark a task as not completed."`
	List   TaskListCmd   `cmd:"" help:"List the tasks for a day."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task."`
}

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Everyday bool   `help:"Repeat the task every day."`
	Date     string `help:"Single day for the task (YYYY-MM-DD, today, tomorrow). Defaults to today."`
	Start    string `help:"First day of a date range (YYYY-MM-DD)."`
	End      string `help:"Last day of a date range (YYYY-MM-DD)."`
}

// Validate rejects conflicting schedules before anything is stored.
func (c *TaskAddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	ranged := c.Start != "" || c.End != ""
	if c.Everyday && (c.Date != "" || ranged) {
		return fmt.Errorf("--everyday cannot be combined with --date, --start or --end")
	}
	if c.Date != "" && ranged {
		return fmt.Errorf("--date cannot be combined with --start or --end")
	}
	if ranged && (c.Start == "" || c.End == "") {
		return fmt.Errorf("--start and --end must be given together")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	task := models.DailyTask{
		ID:         cli.NewID(),
		Title:      strings.TrimSpace(c.Title),
		IsEveryday: c.Everyday,
		CreatedAt:  now,
	}
	switch {
	case c.Everyday:
	case c.Start != "":
		if task.StartDate, err = ctx.ResolveDate(c.Start); err != nil {
			return err
		}
		if task.EndDate, err = ctx.ResolveDate(c.End); err != nil {
			return err
		}
	default:
		if task.Date, err = ctx.ResolveDate(c.Date); err != nil {
			return err
		}
	}
	if err := task.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	if err := ctx.RefreshTask(task); err != nil {
		return err
	}

	ctx.Printf("Added task: %s (%s) (ID: %s)\n", task.Title, schedule(task), task.ID)
	return nil
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID to complete."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	return setCompleted(ctx, c.ID, true)
}

type TaskUndoCmd struct {
	ID string `arg:"" help:"Task ID to reopen."`
}

func (c *TaskUndoCmd) Run(ctx *cli.Context) error {
	return setCompleted(ctx, c.ID, false)
}

func setCompleted(ctx *cli.Context, id string, completed bool) error {
	task, err := ctx.Store.GetTask(id)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", id, err)
	}
	if task.Completed == completed {
		ctx.Printf("Task already %s: %s\n", status(completed), task.Title)
		return nil
	}

	task.Completed = completed
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if err := ctx.RefreshTask(task); err != nil {
		return err
	}

	ctx.Printf("Marked %s: %s\n", status(completed), task.Title)
	return nil
}

type TaskListCmd struct {
	Date string `arg:"" optional:"" help:"Day to list (YYYY-MM-DD, today, yesterday). Defaults to today."`
	All  bool   `help:"List every task regardless of date."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	if c.All {
		if len(tasks) == 0 {
			ctx.Println("No tasks found.")
			return nil
		}
		for _, t := range tasks {
			ctx.Printf("%s %-30s %-24s %s\n", checkbox(t.Completed), t.Title, schedule(t), t.ID)
		}
		return nil
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day := productivity.TasksForDate(tasks, date)
	if len(day) == 0 {
		ctx.Printf("No tasks for %s.\n", date)
		return nil
	}

	ctx.Printf("Tasks for %s:\n", date)
	for _, t := range day {
		ctx.Printf("  %s %-30s %s\n", checkbox(t.Completed), t.Title, t.ID)
	}
	entry := productivity.Score(tasks, date)
	ctx.Println()
	ctx.Printf("Productivity: %d%% (%d/%d)\n", entry.ProductivityPercentage, entry.CompletedTasks, entry.TotalTasks)
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	// Check if task exists first
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if err := ctx.RefreshTask(task); err != nil {
		return err
	}

	ctx.Printf("Deleted task: %s (ID: %s)\n", task.Title, c.ID)
	return nil
}

func schedule(t models.DailyTask) string {
	switch {
	case t.IsEveryday:
		return "every day"
	case t.StartDate != "":
		return t.StartDate + " to " + t.EndDate
	default:
		return t.Date
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func status(completed bool) string {
	if completed {
		return "done"
	}
	return "not done"
}
