package dashboard

import (
	"fmt"
	"sort"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/productivity"
	"github.com/julianstephens/ventureboard/internal/storage"
)

// RefreshProductivity rescores each date from the current tasks and saves the
// entries. Duplicate dates are scored once. Entries are returned in date order.
func RefreshProductivity(store storage.Provider, dates ...string) ([]models.ProductivityEntry, error) {
	tasks, err := store.GetAllTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	seen := make(map[string]bool, len(dates))
	var unique []string
	for _, date := range dates {
		if date == "" || seen[date] {
			continue
		}
		seen[date] = true
		unique = append(unique, date)
	}
	sort.Strings(unique)

	entries := make([]models.ProductivityEntry, 0, len(unique))
	for _, date := range unique {
		entry := productivity.Score(tasks, date)
		if err := store.SaveProductivityEntry(entry); err != nil {
			return nil, fmt.Errorf("failed to save productivity for %s: %w", date, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AffectedDates lists the dates to rescore after task changes. A task has a
// single Completed flag, so only one day is rescored: the dated day, today
// for everyday tasks and ranges covering today, or the last day of a range
// that has ended. Earlier entries keep the score they had. Ranges that have
// not started yet affect nothing.
func AffectedDates(task models.DailyTask, today string) []string {
	switch {
	case task.Date != "":
		return []string{task.Date}
	case task.StartDate != "" && task.EndDate != "":
		switch {
		case today < task.StartDate:
			return nil
		case today > task.EndDate:
			return []string{task.EndDate}
		default:
			return []string{today}
		}
	default:
		return []string{today}
	}
}
