// Package dashboard loads every collection from storage and runs the finance,
// reminder and productivity calculations over it. The CLI, TUI and API all
// render the same Dashboard value.
package dashboard

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/finance"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/productivity"
	"github.com/julianstephens/ventureboard/internal/reminders"
	"github.com/julianstephens/ventureboard/internal/storage"
)

// Data is everything read from storage for one render.
type Data struct {
	Settings     models.Settings
	Finance      finance.Snapshot
	Reminders    reminders.Input
	Tasks        []models.DailyTask
	Productivity []models.ProductivityEntry
	Pomodoros    []models.PomodoroSession
}

type Dashboard struct {
	GeneratedAt  time.Time                  `json:"generated_at"`
	Date         string                     `json:"date"`
	NetWorth     decimal.Decimal            `json:"net_worth"`
	Portfolio    decimal.Decimal            `json:"portfolio_value"`
	Finance      finance.Summary            `json:"finance"`
	Holdings     []finance.Holding          `json:"holdings"`
	ByKind       []finance.KindTotal        `json:"by_kind"`
	Goals        []finance.GoalProgress     `json:"goals"`
	Reminders    []models.Reminder          `json:"reminders"`
	TodayTasks   []models.DailyTask         `json:"today_tasks"`
	Today        models.ProductivityEntry   `json:"today"`
	Productivity []models.ProductivityEntry `json:"productivity"`
	Streak       int                        `json:"streak"`
	Summary      productivity.Summary       `json:"summary"`
	Heatmap      []productivity.Cell        `json:"heatmap"`
}

// Load reads all collections. Any storage error aborts the load.
func Load(store storage.Provider) (Data, error) {
	var (
		d   Data
		err error
	)
	steps := []struct {
		what string
		run  func() error
	}{
		{"settings", func() error { d.Settings, err = store.GetSettings(); return err }},
		{"wallet", func() error { d.Finance.Wallet, err = store.GetWalletEntries(); return err }},
		{"expenses", func() error { d.Finance.Expenses, err = store.GetAllExpenses(); return err }},
		{"income", func() error { d.Finance.Income, err = store.GetAllIncome(); return err }},
		{"investments", func() error { d.Finance.Investments, err = store.GetAllInvestments(); return err }},
		{"loans", func() error { d.Finance.Loans, err = store.GetAllLoans(); return err }},
		{"goals", func() error { d.Finance.Goals, err = store.GetAllGoals(); return err }},
		{"intellectual property", func() error { d.Finance.IntellectualProperty, err = store.GetAllIP(); return err }},
		{"skills", func() error { d.Reminders.Skills, err = store.GetAllSkills(); return err }},
		{"weekly reviews", func() error { d.Reminders.WeeklyReviews, err = store.GetAllWeeklyReviews(); return err }},
		{"daily overviews", func() error { d.Reminders.DailyOverviews, err = store.GetAllDailyOverviews(); return err }},
		{"tasks", func() error { d.Tasks, err = store.GetAllTasks(); return err }},
		{"productivity", func() error { d.Productivity, err = store.GetProductivityEntries(); return err }},
		{"pomodoro sessions", func() error { d.Pomodoros, err = store.GetAllPomodoroSessions(); return err }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return Data{}, fmt.Errorf("failed to load %s: %w", step.what, err)
		}
	}
	d.Reminders.Investments = d.Finance.Investments
	d.Reminders.Loans = d.Finance.Loans
	return d, nil
}

// Build computes the dashboard as of now. Today is scored live from the tasks
// and shown in Today. The live score only replaces a stored entry for today,
// never creates one, so an unfinished day does not end the streak.
func Build(d Data, now time.Time, days int) Dashboard {
	if days <= 0 {
		days = constants.DefaultProductivityDays
	}
	date := now.Format(constants.DateFormat)
	today := productivity.Score(d.Tasks, date)
	series := d.Productivity
	if _, scored := productivity.Index(d.Productivity)[date]; scored && today.TotalTasks > 0 {
		series = productivity.Upsert(d.Productivity, today)
	}
	holdings := finance.Holdings(d.Finance.Investments)
	summary := finance.Summarize(d.Finance)

	return Dashboard{
		GeneratedAt:  now,
		Date:         date,
		NetWorth:     summary.NetWorth,
		Portfolio:    summary.PortfolioValue,
		Finance:      summary,
		Holdings:     holdings,
		ByKind:       finance.ByKind(holdings),
		Goals:        finance.Goals(d.Finance.Goals),
		Reminders:    reminders.Generate(d.Reminders, now),
		TodayTasks:   productivity.TasksForDate(d.Tasks, date),
		Today:        today,
		Productivity: window(series, now, days),
		Streak:       productivity.Streak(series, now),
		Summary:      productivity.Summarize(series, d.Pomodoros, now, days),
		Heatmap:      productivity.Heatmap(series, now, days),
	}
}

// window keeps the entries within the last days days, newest first.
func window(series []models.ProductivityEntry, now time.Time, days int) []models.ProductivityEntry {
	oldest := now.AddDate(0, 0, -(days - 1)).Format(constants.DateFormat)
	var out []models.ProductivityEntry
	for _, e := range series {
		if e.Date >= oldest && e.Date <= now.Format(constants.DateFormat) {
			out = append(out, e)
		}
	}
	return out
}

// Compute loads and builds in one step.
func Compute(store storage.Provider, now time.Time, days int) (Dashboard, error) {
	d, err := Load(store)
	if err != nil {
		return Dashboard{}, err
	}
	return Build(d, now, days), nil
}
