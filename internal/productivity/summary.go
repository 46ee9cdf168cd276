package productivity

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/utils"
)

// Summary describes a window of days ending today.
type Summary struct {
	Days           int                       `json:"days"`
	DaysTracked    int                       `json:"days_tracked"`
	Mean           float64                   `json:"mean"`
	StdDev         float64                   `json:"std_dev"`
	Best           *models.ProductivityEntry `json:"best,omitempty"`
	TasksCompleted int                       `json:"tasks_completed"`
	TasksTotal     int                       `json:"tasks_total"`
	FocusMinutes   int                       `json:"focus_minutes"`
	Streak         int                       `json:"streak"`
}

// Summarize computes statistics over the last days days (DefaultProductivityDays
// when days <= 0). Only days with an entry contribute to the mean and standard
// deviation. Focus minutes count completed pomodoro sessions started in the window.
func Summarize(series []models.ProductivityEntry, sessions []models.PomodoroSession, today time.Time, days int) Summary {
	if days <= 0 {
		days = constants.DefaultProductivityDays
	}
	sum := Summary{Days: days, Streak: Streak(series, today)}

	idx := Index(series)
	var pcts []float64
	for _, date := range utils.LastNDates(today, days) {
		e, ok := idx[date]
		if !ok {
			continue
		}
		sum.DaysTracked++
		sum.TasksCompleted += e.CompletedTasks
		sum.TasksTotal += e.TotalTasks
		pcts = append(pcts, float64(e.ProductivityPercentage))
		if sum.Best == nil || e.ProductivityPercentage > sum.Best.ProductivityPercentage {
			best := e
			sum.Best = &best
		}
	}
	if len(pcts) > 0 {
		sum.Mean = stat.Mean(pcts, nil)
	}
	if len(pcts) > 1 {
		sum.StdDev = stat.StdDev(pcts, nil)
	}

	start := utils.DateOnly(today).AddDate(0, 0, -(days - 1))
	end := utils.DateOnly(today).AddDate(0, 0, 1)
	for _, s := range sessions {
		started := s.StartedAt.In(today.Location())
		if s.Completed && !started.Before(start) && started.Before(end) {
			sum.FocusMinutes += s.DurationMin
		}
	}
	return sum
}

// Cell is one day of a heatmap.
type Cell struct {
	Date       string `json:"date"`
	HasEntry   bool   `json:"has_entry"`
	Percentage int    `json:"percentage"`
	Level      int    `json:"level"` // 0 (none) to 4
}

// Heatmap returns days cells ending today, oldest first.
func Heatmap(series []models.ProductivityEntry, today time.Time, days int) []Cell {
	if days <= 0 {
		days = constants.DefaultProductivityDays
	}
	idx := Index(series)
	dates := utils.LastNDates(today, days)
	cells := make([]Cell, len(dates))
	for i, date := range dates {
		c := Cell{Date: date}
		if e, ok := idx[date]; ok {
			c.HasEntry = true
			c.Percentage = e.ProductivityPercentage
			c.Level = Level(e.ProductivityPercentage)
		}
		cells[len(dates)-1-i] = c
	}
	return cells
}

// Level buckets a percentage into five intensity steps.
func Level(pct int) int {
	switch {
	case pct <= 0:
		return 0
	case pct < 25:
		return 1
	case pct < constants.StreakThresholdPct:
		return 2
	case pct < 75:
		return 3
	default:
		return 4
	}
}
