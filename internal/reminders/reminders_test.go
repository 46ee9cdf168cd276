package reminders

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/ventureboard/internal/models"
)

// 2024-05-15 is a Wednesday: no weekly review rule, and 10:00 is before the
// overview rule starts.
var wednesday = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

func sipInvestment(id, next string) models.Investment {
	return models.Investment{
		ID:    id,
		Name:  "Index fund",
		Asset: models.SIP{MonthlyAmount: decimal.NewFromInt(5000), NextSipDate: next},
	}
}

func byType(rs []models.Reminder, typ models.ReminderType) []models.Reminder {
	var out []models.Reminder
	for _, r := range rs {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

func TestSIPWindowAndPriority(t *testing.T) {
	tests := []struct {
		offset   int
		emit     bool
		priority models.Priority
	}{
		{offset: -8, emit: false},
		{offset: -7, emit: true, priority: models.PriorityHigh},
		{offset: -1, emit: true, priority: models.PriorityHigh},
		{offset: 0, emit: true, priority: models.PriorityHigh},
		{offset: 1, emit: true, priority: models.PriorityMedium},
		{offset: 3, emit: true, priority: models.PriorityMedium},
		{offset: 4, emit: true, priority: models.PriorityLow},
		{offset: 7, emit: true, priority: models.PriorityLow},
		{offset: 8, emit: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("offset %d", tt.offset), func(t *testing.T) {
			next := wednesday.AddDate(0, 0, tt.offset).Format("2006-01-02")
			got := Generate(Input{Investments: []models.Investment{sipInvestment("a", next)}}, wednesday)
			if !tt.emit {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, "sip-a", got[0].ID)
			assert.Equal(t, models.ReminderSIP, got[0].Type)
			assert.Equal(t, tt.priority, got[0].Priority)
			assert.Equal(t, next, got[0].DueDate)
		})
	}
}

func TestSIPMessages(t *testing.T) {
	in := Input{Investments: []models.Investment{
		sipInvestment("today", "2024-05-15"),
		sipInvestment("late", "2024-05-13"),
		sipInvestment("soon", "2024-05-16"),
		sipInvestment("later", "2024-05-20"),
	}}
	got := Generate(in, wednesday)
	require.Len(t, got, 4)

	assert.Contains(t, got[0].Message, "due today")
	assert.Equal(t, models.PriorityHigh, got[0].Priority)
	assert.Contains(t, got[1].Message, "overdue by 2 days")
	assert.Contains(t, got[2].Message, "due in 1 day")
	assert.Contains(t, got[3].Message, "due in 5 days")
	assert.Contains(t, got[0].Message, "₹5,000")
}

func TestSIPSkipsMissingOrInvalidDates(t *testing.T) {
	in := Input{Investments: []models.Investment{
		sipInvestment("none", ""),
		sipInvestment("bad", "15/05/2024"),
		{ID: "stock", Name: "INFY", Asset: models.Stocks{}},
		{ID: "empty", Name: "no asset"},
	}}
	assert.Empty(t, Generate(in, wednesday))
}

func TestEMIDaysUntil(t *testing.T) {
	tests := []struct {
		due, today, want int
	}{
		{due: 5, today: 28, want: 7},
		{due: 28, today: 5, want: -7},
		{due: 10, today: 10, want: 0},
		{due: 20, today: 4, want: -14},
		{due: 1, today: 16, want: -15},
		{due: 1, today: 17, want: 14},
		{due: 31, today: 16, want: 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, emiDaysUntil(tt.due, tt.today), "due %d on day %d", tt.due, tt.today)
	}
}

func TestEMIWrapsIntoNextMonth(t *testing.T) {
	// 28th of a 31-day month, EMI on the 5th: 5 - 28 = -23, shifted to 7.
	now := time.Date(2024, 5, 28, 9, 0, 0, 0, time.UTC)
	loans := []models.Loan{{
		ID:               "home",
		Type:             "home",
		Lender:           "HDFC",
		EMI:              decimal.NewFromInt(12000),
		DueDate:          "5",
		RemainingBalance: decimal.NewFromInt(500000),
	}}

	got := byType(Generate(Input{Loans: loans}, now), models.ReminderEMI)
	require.Len(t, got, 1)
	assert.Equal(t, "emi-home", got[0].ID)
	assert.Equal(t, models.PriorityLow, got[0].Priority)
	assert.Equal(t, "2024-06-04", got[0].DueDate)
	assert.Contains(t, got[0].Message, "due in 7 days")
}

func TestEMINeverFiresForClosedLoans(t *testing.T) {
	for day := 1; day <= 31; day++ {
		loans := []models.Loan{{
			ID:               "paid",
			Type:             "car",
			EMI:              decimal.NewFromInt(8000),
			DueDate:          strconv.Itoa(day),
			RemainingBalance: decimal.Zero,
		}}
		got := byType(Generate(Input{Loans: loans}, wednesday), models.ReminderEMI)
		assert.Empty(t, got, "due day %d", day)
	}
}

func TestEMISkipsInvalidDueDay(t *testing.T) {
	loans := []models.Loan{
		{ID: "x", Type: "personal", DueDate: "", RemainingBalance: decimal.NewFromInt(10)},
		{ID: "y", Type: "personal", DueDate: "32", RemainingBalance: decimal.NewFromInt(10)},
	}
	assert.Empty(t, Generate(Input{Loans: loans}, wednesday))
}

func TestSkillInactivity(t *testing.T) {
	tests := []struct {
		name     string
		idle     int
		learning bool
		emit     bool
		priority models.Priority
	}{
		{name: "practiced today", idle: 0, learning: true},
		{name: "two days", idle: 2, learning: true},
		{name: "three days", idle: 3, learning: true, emit: true, priority: models.PriorityMedium},
		{name: "six days", idle: 6, learning: true, emit: true, priority: models.PriorityMedium},
		{name: "seven days", idle: 7, learning: true, emit: true, priority: models.PriorityHigh},
		{name: "not learning", idle: 40, learning: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := []models.Skill{{
				ID:                  "go",
				Name:                "Go",
				IsCurrentlyLearning: tt.learning,
				LastUpdated:         wednesday.AddDate(0, 0, -tt.idle).Add(-time.Hour),
			}}
			got := Generate(Input{Skills: skills}, wednesday)
			if !tt.emit {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, "skill-go", got[0].ID)
			assert.Equal(t, tt.priority, got[0].Priority)
			assert.Contains(t, got[0].Message, fmt.Sprintf("%d days", tt.idle))
		})
	}
}

func TestSkillNeverPracticedIsSkipped(t *testing.T) {
	skills := []models.Skill{{ID: "new", Name: "Rust", IsCurrentlyLearning: true}}
	assert.Empty(t, Generate(Input{Skills: skills}, wednesday))
}

func TestWeeklyReview(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		reviews  []models.WeeklyReview
		emit     bool
		priority models.Priority
	}{
		{name: "thursday", now: time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC)},
		{name: "friday", now: time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC), emit: true, priority: models.PriorityMedium},
		{name: "saturday", now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), emit: true, priority: models.PriorityMedium},
		{name: "sunday", now: time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC), emit: true, priority: models.PriorityHigh},
		{
			name:    "sunday with review",
			now:     time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
			reviews: []models.WeeklyReview{{WeekStart: "2024-05-27"}},
		},
		{
			name:     "review for an older week",
			now:      time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
			reviews:  []models.WeeklyReview{{WeekStart: "2024-05-20"}},
			emit:     true,
			priority: models.PriorityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := byType(Generate(Input{WeeklyReviews: tt.reviews}, tt.now), models.ReminderWeeklyReview)
			if !tt.emit {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, "weekly-review-2024-05-27", got[0].ID)
			assert.Equal(t, "2024-06-02", got[0].DueDate)
			assert.Equal(t, tt.priority, got[0].Priority)
		})
	}
}

func TestWeeklyReviewSundayIsLastDay(t *testing.T) {
	sunday := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	got := Generate(Input{}, sunday)
	require.Len(t, got, 1)
	assert.Equal(t, models.PriorityHigh, got[0].Priority)
	assert.Contains(t, got[0].Message, "Last day")
}

func TestDailyOverview(t *testing.T) {
	day := func(h, m int) time.Time { return time.Date(2024, 5, 15, h, m, 0, 0, time.UTC) }
	tests := []struct {
		name      string
		now       time.Time
		overviews []models.DailyOverview
		emit      bool
		priority  models.Priority
	}{
		{name: "afternoon", now: day(17, 59)},
		{name: "evening", now: day(18, 0), emit: true, priority: models.PriorityMedium},
		{name: "late evening", now: day(20, 59), emit: true, priority: models.PriorityMedium},
		{name: "night", now: day(21, 0), emit: true, priority: models.PriorityHigh},
		{name: "written", now: day(22, 0), overviews: []models.DailyOverview{{Date: "2024-05-15"}}},
		{
			name:      "only yesterday written",
			now:       day(22, 0),
			overviews: []models.DailyOverview{{Date: "2024-05-14"}},
			emit:      true,
			priority:  models.PriorityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(Input{DailyOverviews: tt.overviews}, tt.now)
			if !tt.emit {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, "daily-overview-2024-05-15", got[0].ID)
			assert.Equal(t, tt.priority, got[0].Priority)
		})
	}
}

func TestOrderingIsStableByPriority(t *testing.T) {
	// Sunday 2024-06-02 at 21:30.
	now := time.Date(2024, 6, 2, 21, 30, 0, 0, time.UTC)
	in := Input{
		Investments: []models.Investment{
			sipInvestment("low", "2024-06-07"),
			sipInvestment("high", "2024-06-01"),
		},
		Loans: []models.Loan{{
			ID: "loan", Type: "home", DueDate: "2", RemainingBalance: decimal.NewFromInt(1000),
		}},
		Skills: []models.Skill{{
			ID: "piano", Name: "Piano", IsCurrentlyLearning: true, LastUpdated: now.AddDate(0, 0, -4),
		}},
	}

	got := Generate(in, now)
	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{
		"sip-high",
		"emi-loan",
		"weekly-review-2024-05-27",
		"daily-overview-2024-06-02",
		"skill-piano",
		"sip-low",
	}, ids)
}

func TestFilter(t *testing.T) {
	rs := []models.Reminder{
		{ID: "a", Priority: models.PriorityLow},
		{ID: "b", Priority: models.PriorityHigh},
		{ID: "c", Priority: models.PriorityMedium},
	}
	assert.Len(t, Filter(rs, models.PriorityHigh), 1)
	assert.Len(t, Filter(rs, models.PriorityMedium), 2)
	assert.Len(t, Filter(rs, models.PriorityLow), 3)
}
