// Package productivity scores daily task completion and maintains the
// date-keyed series used for streaks and heatmaps.
package productivity

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/utils"
)

// AppliesTo reports whether task counts towards date (YYYY-MM-DD).
func AppliesTo(task models.DailyTask, date string) bool {
	if task.IsEveryday || task.Date == date {
		return true
	}
	if task.StartDate == "" || task.EndDate == "" {
		return false
	}
	// ISO dates compare correctly as strings.
	return task.StartDate <= date && date <= task.EndDate
}

// TasksForDate selects the tasks that apply to date, preserving order.
func TasksForDate(tasks []models.DailyTask, date string) []models.DailyTask {
	out := make([]models.DailyTask, 0, len(tasks))
	for _, t := range tasks {
		if AppliesTo(t, date) {
			out = append(out, t)
		}
	}
	return out
}

// Score computes the productivity entry for date.
func Score(tasks []models.DailyTask, date string) models.ProductivityEntry {
	entry := models.ProductivityEntry{Date: date}
	for _, t := range TasksForDate(tasks, date) {
		entry.TotalTasks++
		if t.Completed {
			entry.CompletedTasks++
		}
	}
	entry.ProductivityPercentage = Percentage(entry.CompletedTasks, entry.TotalTasks)
	return entry
}

// Percentage returns round(100 × completed/total), or 0 when total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Upsert replaces the entry for entry.Date, or adds it, and returns the
// series sorted by date, newest first. The input slice is not modified.
func Upsert(series []models.ProductivityEntry, entry models.ProductivityEntry) []models.ProductivityEntry {
	out := make([]models.ProductivityEntry, 0, len(series)+1)
	replaced := false
	for _, e := range series {
		if e.Date == entry.Date {
			if !replaced {
				out = append(out, entry)
				replaced = true
			}
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, entry)
	}
	SortDescending(out)
	return out
}

// SortDescending orders entries newest first.
func SortDescending(series []models.ProductivityEntry) {
	sort.SliceStable(series, func(i, j int) bool { return series[i].Date > series[j].Date })
}

// Index maps each date in series to its entry.
func Index(series []models.ProductivityEntry) map[string]models.ProductivityEntry {
	idx := make(map[string]models.ProductivityEntry, len(series))
	for _, e := range series {
		idx[e.Date] = e
	}
	return idx
}

// Streak counts consecutive qualifying days ending at today. Today is skipped
// when it has no entry yet. The walk stops at the first earlier day that is
// missing or scored below StreakThresholdPct.
func Streak(series []models.ProductivityEntry, today time.Time) int {
	idx := Index(series)
	day := utils.DateOnly(today)
	streak := 0
	for i := 0; ; i++ {
		e, ok := idx[utils.FormatDate(day)]
		switch {
		case !ok && i == 0:
			// nothing scored yet today
		case !ok:
			return streak
		case e.ProductivityPercentage < constants.StreakThresholdPct:
			return streak
		default:
			streak++
		}
		day = day.AddDate(0, 0, -1)
	}
}
