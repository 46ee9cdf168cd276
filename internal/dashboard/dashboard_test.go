package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/memory"
)

// 2024-06-02 is a Sunday; 20:00 is past the overview hour but not the urgent one.
var sundayEvening = time.Date(2024, 6, 2, 20, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Init())

	require.NoError(t, store.AddWalletEntry(models.WalletEntry{ID: "w1", Type: models.WalletAdded, Source: "salary", Amount: d("50000"), Date: "2024-06-01"}))
	require.NoError(t, store.AddExpense(models.Expense{ID: "e1", Category: "rent", Amount: d("2000"), Date: "2024-06-01"}))
	require.NoError(t, store.AddIncome(models.Income{ID: "i1", Source: "freelance", Amount: d("9000"), Date: "2024-06-01"}))
	require.NoError(t, store.AddInvestment(models.Investment{
		ID:    "inv1",
		Name:  "INFY",
		Asset: models.Stocks{Quantity: d("10"), BuyPrice: d("100"), CurrentPrice: d("150")},
	}))
	require.NoError(t, store.AddLoan(models.Loan{ID: "l1", Type: "car", Lender: "SBI", EMI: d("1000"), DueDate: "5", RemainingBalance: d("10000")}))
	require.NoError(t, store.AddGoal(models.SavingsGoal{ID: "g1", Name: "Trip", TargetAmount: d("1000"), CurrentAmount: d("250")}))

	require.NoError(t, store.AddTask(models.DailyTask{ID: "t1", Title: "Stretch", IsEveryday: true, Completed: true}))
	require.NoError(t, store.AddTask(models.DailyTask{ID: "t2", Title: "File taxes", Date: "2024-06-02"}))

	require.NoError(t, store.SaveProductivityEntry(models.ProductivityEntry{Date: "2024-06-01", TotalTasks: 1, CompletedTasks: 1, ProductivityPercentage: 100}))
	require.NoError(t, store.SaveProductivityEntry(models.ProductivityEntry{Date: "2024-05-31", TotalTasks: 5, CompletedTasks: 4, ProductivityPercentage: 80}))
	require.NoError(t, store.SaveProductivityEntry(models.ProductivityEntry{Date: "2024-03-01", TotalTasks: 1, CompletedTasks: 1, ProductivityPercentage: 100}))

	require.NoError(t, store.AddPomodoroSession(models.PomodoroSession{ID: "p1", DurationMin: 25, StartedAt: sundayEvening.Add(-2 * time.Hour), Completed: true}))
	return store
}

func TestCompute(t *testing.T) {
	store := seededStore(t)

	dash, err := Compute(store, sundayEvening, 30)
	require.NoError(t, err)

	// 50000 wallet - 2000 expenses - 1000 invested - 10000 debt; income is excluded
	assert.True(t, dash.NetWorth.Equal(d("37000")), "net worth = %s", dash.NetWorth)
	assert.True(t, dash.Portfolio.Equal(d("1500")), "portfolio = %s", dash.Portfolio)
	assert.True(t, dash.Finance.TotalIncome.Equal(d("9000")))
	require.Len(t, dash.Holdings, 1)
	assert.True(t, dash.Holdings[0].ProfitLoss.Equal(d("500")))
	require.Len(t, dash.Goals, 1)
	assert.Equal(t, "2024-06-02", dash.Date)

	var ids []string
	for _, r := range dash.Reminders {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"weekly-review-2024-05-27", "emi-l1", "daily-overview-2024-06-02"}, ids)

	assert.Len(t, dash.TodayTasks, 2)
	assert.Equal(t, models.ProductivityEntry{Date: "2024-06-02", TotalTasks: 2, CompletedTasks: 1, ProductivityPercentage: 50}, dash.Today)
	// today has no stored entry yet, so only the two past days count
	assert.Equal(t, 2, dash.Streak)

	// 2024-03-01 falls outside the window
	require.Len(t, dash.Productivity, 2)
	assert.Equal(t, "2024-06-01", dash.Productivity[0].Date)
	assert.Equal(t, 2, dash.Summary.DaysTracked)
	assert.Equal(t, 25, dash.Summary.FocusMinutes)
	require.Len(t, dash.Heatmap, 30)
	assert.Equal(t, "2024-06-02", dash.Heatmap[29].Date)
}

func TestBuildDoesNotPersistToday(t *testing.T) {
	store := seededStore(t)

	_, err := Compute(store, sundayEvening, 7)
	require.NoError(t, err)

	entries, err := store.GetProductivityEntries()
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, "2024-06-02", e.Date)
	}
}

func TestBuildWithoutTasksTodayKeepsStreak(t *testing.T) {
	data := Data{
		Tasks: []models.DailyTask{{ID: "t1", Title: "Old", Date: "2024-06-01", Completed: true}},
		Productivity: []models.ProductivityEntry{
			{Date: "2024-06-01", TotalTasks: 1, CompletedTasks: 1, ProductivityPercentage: 100},
			{Date: "2024-05-31", TotalTasks: 2, CompletedTasks: 1, ProductivityPercentage: 50},
		},
	}

	dash := Build(data, sundayEvening, 7)
	assert.Equal(t, 0, dash.Today.TotalTasks)
	assert.Equal(t, 2, dash.Streak)
	require.Len(t, dash.Productivity, 2)
	assert.False(t, dash.Heatmap[6].HasEntry)
}

func TestBuildMorningKeepsStreak(t *testing.T) {
	morning := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)
	data := Data{
		Tasks: []models.DailyTask{{ID: "t1", Title: "Stretch", IsEveryday: true}},
		Productivity: []models.ProductivityEntry{
			{Date: "2024-06-01", TotalTasks: 1, CompletedTasks: 1, ProductivityPercentage: 100},
			{Date: "2024-05-31", TotalTasks: 1, CompletedTasks: 1, ProductivityPercentage: 100},
		},
	}

	dash := Build(data, morning, 7)
	assert.Equal(t, models.ProductivityEntry{Date: "2024-06-02", TotalTasks: 1, CompletedTasks: 0, ProductivityPercentage: 0}, dash.Today)
	assert.Equal(t, 2, dash.Streak)
	assert.False(t, dash.Heatmap[6].HasEntry)
}

func TestBuildRefreshesStoredToday(t *testing.T) {
	data := Data{
		Tasks: []models.DailyTask{{ID: "t1", Title: "Stretch", IsEveryday: true, Completed: true}},
		Productivity: []models.ProductivityEntry{
			{Date: "2024-06-02", TotalTasks: 1, CompletedTasks: 0, ProductivityPercentage: 0},
			{Date: "2024-06-01", TotalTasks: 1, CompletedTasks: 1, ProductivityPercentage: 100},
		},
	}

	dash := Build(data, sundayEvening, 7)
	assert.Equal(t, 2, dash.Streak)
	require.NotEmpty(t, dash.Productivity)
	assert.Equal(t, 100, dash.Productivity[0].ProductivityPercentage)
	// the loaded series is left alone
	assert.Equal(t, 0, data.Productivity[0].ProductivityPercentage)
}

func TestComputeUninitialized(t *testing.T) {
	_, err := Compute(memory.New(), sundayEvening, 7)
	assert.ErrorIs(t, err, models.ErrNotInitialized)
}

func TestRefreshProductivity(t *testing.T) {
	store := seededStore(t)

	entries, err := RefreshProductivity(store, "2024-06-02", "2024-06-01", "2024-06-02", "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-06-01", entries[0].Date)
	// only the everyday task applies on the 1st
	assert.Equal(t, 100, entries[0].ProductivityPercentage)
	assert.Equal(t, 50, entries[1].ProductivityPercentage)

	saved, err := store.GetProductivityEntries()
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02", saved[0].Date)
	assert.Equal(t, 2, saved[0].TotalTasks)

	// rescoring after a change replaces the entry
	task, err := store.GetTask("t2")
	require.NoError(t, err)
	task.Completed = true
	require.NoError(t, store.UpdateTask(task))
	_, err = RefreshProductivity(store, "2024-06-02")
	require.NoError(t, err)
	saved, err = store.GetProductivityEntries()
	require.NoError(t, err)
	assert.Equal(t, 100, saved[0].ProductivityPercentage)
	assert.Len(t, saved, 4)
}

func TestAffectedDates(t *testing.T) {
	tests := []struct {
		name string
		task models.DailyTask
		want []string
	}{
		{"dated", models.DailyTask{Date: "2024-06-10"}, []string{"2024-06-10"}},
		{"everyday", models.DailyTask{IsEveryday: true}, []string{"2024-06-02"}},
		{"range covering today", models.DailyTask{StartDate: "2024-05-31", EndDate: "2024-06-09"}, []string{"2024-06-02"}},
		{"range starting today", models.DailyTask{StartDate: "2024-06-02", EndDate: "2024-06-09"}, []string{"2024-06-02"}},
		{"long range in the past", models.DailyTask{StartDate: "2023-01-01", EndDate: "2024-05-02"}, []string{"2024-05-02"}},
		{"range in the future", models.DailyTask{StartDate: "2024-06-05", EndDate: "2024-06-09"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AffectedDates(tt.task, "2024-06-02"))
		})
	}
}
