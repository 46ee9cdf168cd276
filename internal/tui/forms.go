package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
)

// Schedule choices offered by the add-task form.
const (
	ScheduleToday    = "today"
	ScheduleEveryday = "everyday"
	ScheduleDate     = "date"
	ScheduleRange    = "range"
)

type TaskFormModel struct {
	Title     string
	Schedule  string
	Date      string
	StartDate string
	EndDate   string
}

func optionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// NewTaskForm creates the add-task form bound to fm.
func NewTaskForm(fm *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("task title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Schedule").
				Options(
					huh.NewOption("Today only", ScheduleToday),
					huh.NewOption("Every day", ScheduleEveryday),
					huh.NewOption("On a date", ScheduleDate),
					huh.NewOption("Date range", ScheduleRange),
				).
				Value(&fm.Schedule),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("For 'On a date'").
				Value(&fm.Date).
				Validate(optionalDate),
			huh.NewInput().
				Title("Start date").
				Description("For 'Date range'").
				Value(&fm.StartDate).
				Validate(optionalDate),
			huh.NewInput().
				Title("End date").
				Description("For 'Date range'").
				Value(&fm.EndDate).
				Validate(optionalDate),
		).WithHideFunc(func() bool {
			return fm.Schedule == ScheduleToday || fm.Schedule == ScheduleEveryday
		}),
	).WithTheme(huh.ThemeDracula())
}

// BuildTask turns a submitted form into a validated task.
func BuildTask(fm TaskFormModel, today string, now time.Time) (models.DailyTask, error) {
	task := models.DailyTask{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(fm.Title),
		CreatedAt: now.UTC(),
	}
	switch fm.Schedule {
	case ScheduleEveryday:
		task.IsEveryday = true
	case ScheduleDate:
		task.Date = strings.TrimSpace(fm.Date)
		if task.Date == "" {
			return models.DailyTask{}, fmt.Errorf("a date is required")
		}
	case ScheduleRange:
		task.StartDate = strings.TrimSpace(fm.StartDate)
		task.EndDate = strings.TrimSpace(fm.EndDate)
		if task.StartDate == "" || task.EndDate == "" {
			return models.DailyTask{}, fmt.Errorf("start and end dates are required")
		}
	default:
		task.Date = today
	}
	if err := task.Validate(); err != nil {
		return models.DailyTask{}, err
	}
	return task, nil
}
