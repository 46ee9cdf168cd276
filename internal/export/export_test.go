package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/memory"
	"github.com/julianstephens/ventureboard/internal/storage/sqlite"
)

var exportedAt = time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Init())

	settings, err := store.GetSettings()
	require.NoError(t, err)
	settings.Timezone = "Asia/Kolkata"
	require.NoError(t, store.SaveSettings(settings))

	require.NoError(t, store.AddWalletEntry(models.WalletEntry{ID: "w1", Type: models.WalletAdded, Source: "salary", Amount: d("50000"), Date: "2024-06-01", CreatedAt: exportedAt}))
	require.NoError(t, store.AddExpense(models.Expense{ID: "e1", Category: "food", Tags: []string{"lunch"}, Amount: d("250.75"), Date: "2024-06-01"}))
	require.NoError(t, store.AddIncome(models.Income{ID: "i1", Source: "freelance", Amount: d("9000"), Date: "2024-06-01"}))
	require.NoError(t, store.AddInvestment(models.Investment{ID: "inv1", Name: "Index", Asset: models.SIP{MonthlyAmount: d("5000"), NextSipDate: "2024-06-05"}, CreatedAt: exportedAt}))
	require.NoError(t, store.AddInvestment(models.Investment{ID: "inv2", Name: "BTC", Asset: models.Crypto{Coin: "BTC", Quantity: d("0.01"), BuyPrice: d("3000000"), CurrentPrice: d("3500000")}, CreatedAt: exportedAt.Add(time.Second)}))
	require.NoError(t, store.AddLoan(models.Loan{ID: "l1", Type: "home", EMI: d("20000"), DueDate: "5", RemainingBalance: d("1500000")}))
	require.NoError(t, store.AddGoal(models.SavingsGoal{ID: "g1", Name: "Trip", TargetAmount: d("100000"), CurrentAmount: d("5000")}))
	require.NoError(t, store.AddIP(models.IntellectualProperty{ID: "ip1", Name: "Course", MarketValue: d("900"), CostToBuy: d("500"), CreatedAt: exportedAt}))
	require.NoError(t, store.AddSkill(models.Skill{ID: "s1", Name: "Go", Level: 70, TotalHours: 120.5, IsCurrentlyLearning: true, LastUpdated: exportedAt}))
	require.NoError(t, store.AddTask(models.DailyTask{ID: "t1", Title: "Stretch", IsEveryday: true, CreatedAt: exportedAt}))
	require.NoError(t, store.SaveDailyOverview(models.DailyOverview{ID: "o1", Date: "2024-06-01", Wins: "shipped", Mood: 4}))
	require.NoError(t, store.SaveWeeklyReview(models.WeeklyReview{ID: "r1", WeekStart: "2024-05-27", Rating: 8}))
	require.NoError(t, store.SaveProductivityEntry(models.ProductivityEntry{Date: "2024-06-01", TotalTasks: 2, CompletedTasks: 1, ProductivityPercentage: 50}))
	require.NoError(t, store.AddPomodoroSession(models.PomodoroSession{ID: "p1", DurationMin: 25, StartedAt: exportedAt, Completed: true}))
	return store
}

func assertSameData(t *testing.T, want, got *Snapshot) {
	t.Helper()
	assert.Equal(t, want.Settings, got.Settings)
	assert.Len(t, got.Wallet, len(want.Wallet))
	require.Len(t, got.Expenses, 1)
	assert.True(t, got.Expenses[0].Amount.Equal(d("250.75")))
	assert.Equal(t, []string{"lunch"}, got.Expenses[0].Tags)
	require.Len(t, got.Investments, 2)
	assert.Equal(t, models.KindSIP, got.Investments[0].Kind())
	crypto, ok := got.Investments[1].Asset.(models.Crypto)
	require.True(t, ok, "asset = %T", got.Investments[1].Asset)
	assert.True(t, crypto.CurrentPrice.Equal(d("3500000")))
	assert.Len(t, got.Loans, 1)
	assert.Len(t, got.Goals, 1)
	assert.Len(t, got.IntellectualProperty, 1)
	require.Len(t, got.Skills, 1)
	assert.True(t, got.Skills[0].LastUpdated.Equal(exportedAt))
	assert.Len(t, got.Tasks, 1)
	assert.Len(t, got.DailyOverviews, 1)
	assert.Len(t, got.WeeklyReviews, 1)
	assert.Equal(t, want.Productivity, got.Productivity)
	assert.Len(t, got.Pomodoros, 1)
}

func TestWriteReadRoundTrip(t *testing.T) {
	snap, err := Collect(seed(t), exportedAt)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snap.Version)

	for _, format := range []Format{FormatJSON, FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, snap, format))

			got, err := Read(&buf, format)
			require.NoError(t, err)
			assert.True(t, got.ExportedAt.Equal(exportedAt))
			assertSameData(t, snap, got)
		})
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	snap, err := Collect(seed(t), exportedAt)
	require.NoError(t, err)

	target := memory.New()
	require.NoError(t, target.Init())

	counts, err := Restore(target, snap)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["investments"])
	assert.Equal(t, 14, counts.Total())

	counts, err = Restore(target, snap)
	require.NoError(t, err)
	assert.Zero(t, counts["wallet"])
	assert.Zero(t, counts["pomodoros"])

	again, err := Collect(target, exportedAt)
	require.NoError(t, err)
	assertSameData(t, snap, again)
}

func TestCopyIntoSQLite(t *testing.T) {
	src := seed(t)
	dst := sqlite.NewStore(filepath.Join(t.TempDir(), "copy.db"))
	require.NoError(t, dst.Init())
	defer dst.Close()

	_, err := Copy(src, dst)
	require.NoError(t, err)

	want, err := Collect(src, exportedAt)
	require.NoError(t, err)
	got, err := Collect(dst, exportedAt)
	require.NoError(t, err)
	assertSameData(t, want, got)
}

func TestReadRejectsNewerVersion(t *testing.T) {
	_, err := Read(strings.NewReader(`{"version": 99}`), FormatJSON)
	assert.ErrorContains(t, err, "unsupported snapshot version 99")

	_, err = Read(strings.NewReader(`{}`), FormatJSON)
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, FormatMsgpack, FormatForPath("backup.MSGPACK"))
	assert.Equal(t, FormatJSON, FormatForPath("backup.json"))
	assert.Equal(t, FormatJSON, FormatForPath("backup"))

	f, err := ParseFormat("mp")
	require.NoError(t, err)
	assert.Equal(t, FormatMsgpack, f)
	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}
