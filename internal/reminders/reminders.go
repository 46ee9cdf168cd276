// Package reminders derives time-windowed alerts from the current state of
// investments, loans, skills and reflections. Nothing is persisted: every call
// re-derives the full list from its input.
package reminders

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/utils"
)

// Input is the snapshot the generator scans.
type Input struct {
	Investments    []models.Investment
	Loans          []models.Loan
	Skills         []models.Skill
	WeeklyReviews  []models.WeeklyReview
	DailyOverviews []models.DailyOverview
}

// Generate evaluates every rule against now and returns the alerts ordered by
// priority. Alerts of equal priority keep the order in which they were found:
// SIPs, EMIs, skills, weekly review, daily overview.
func Generate(in Input, now time.Time) []models.Reminder {
	var out []models.Reminder
	out = append(out, sipReminders(in.Investments, now)...)
	out = append(out, emiReminders(in.Loans, now)...)
	out = append(out, skillReminders(in.Skills, now)...)
	if r, ok := weeklyReviewReminder(in.WeeklyReviews, now); ok {
		out = append(out, r)
	}
	if r, ok := dailyOverviewReminder(in.DailyOverviews, now); ok {
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

// Filter keeps reminders at least as urgent as min.
func Filter(rs []models.Reminder, min models.Priority) []models.Reminder {
	out := make([]models.Reminder, 0, len(rs))
	for _, r := range rs {
		if r.Priority.AtLeast(min) {
			out = append(out, r)
		}
	}
	return out
}

// duePriority maps days until a due date to a priority: due or overdue is
// high, within DueSoonDays is medium, anything later is low.
func duePriority(daysUntil int) models.Priority {
	switch {
	case daysUntil <= 0:
		return models.PriorityHigh
	case daysUntil <= constants.DueSoonDays:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func inDueWindow(daysUntil int) bool {
	return daysUntil >= -constants.DueWindowDays && daysUntil <= constants.DueWindowDays
}

func dueMessage(subject string, daysUntil int) string {
	switch {
	case daysUntil == 0:
		return subject + " is due today"
	case daysUntil < 0:
		return fmt.Sprintf("%s is overdue by %s", subject, days(-daysUntil))
	default:
		return fmt.Sprintf("%s is due in %s", subject, days(daysUntil))
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func sipReminders(investments []models.Investment, now time.Time) []models.Reminder {
	var out []models.Reminder
	for _, inv := range investments {
		sip, ok := inv.Asset.(models.SIP)
		if !ok || sip.NextSipDate == "" {
			continue
		}
		daysUntil, err := utils.DaysUntilDate(now, sip.NextSipDate)
		if err != nil || !inDueWindow(daysUntil) {
			continue
		}
		subject := fmt.Sprintf("SIP of %s for %s", utils.FormatINR(sip.MonthlyAmount), inv.Name)
		out = append(out, models.Reminder{
			ID:       "sip-" + inv.ID,
			Type:     models.ReminderSIP,
			Title:    "SIP due: " + inv.Name,
			Message:  dueMessage(subject, daysUntil),
			DueDate:  sip.NextSipDate,
			Priority: duePriority(daysUntil),
		})
	}
	return out
}

// emiDaysUntil compares a day-of-month against today's day-of-month. A raw
// difference beyond EMIWrapThresholdDays is shifted by EMIWrapDays to the
// neighbouring month. Month length is not taken into account.
func emiDaysUntil(dueDay, today int) int {
	diff := dueDay - today
	if diff < -constants.EMIWrapThresholdDays {
		diff += constants.EMIWrapDays
	} else if diff > constants.EMIWrapThresholdDays {
		diff -= constants.EMIWrapDays
	}
	return diff
}

func emiReminders(loans []models.Loan, now time.Time) []models.Reminder {
	var out []models.Reminder
	for i := range loans {
		loan := &loans[i]
		if loan.IsClosed() {
			continue
		}
		dueDay, err := loan.DueDay()
		if err != nil {
			continue
		}
		daysUntil := emiDaysUntil(dueDay, now.Day())
		if !inDueWindow(daysUntil) {
			continue
		}
		name := loan.Lender
		if name == "" {
			name = loan.Type
		}
		subject := fmt.Sprintf("EMI of %s for %s", utils.FormatINR(loan.EMI), name)
		out = append(out, models.Reminder{
			ID:       "emi-" + loan.ID,
			Type:     models.ReminderEMI,
			Title:    "EMI due: " + name,
			Message:  dueMessage(subject, daysUntil),
			DueDate:  utils.FormatDate(utils.DateOnly(now).AddDate(0, 0, daysUntil)),
			Priority: duePriority(daysUntil),
		})
	}
	return out
}

func skillReminders(skills []models.Skill, now time.Time) []models.Reminder {
	var out []models.Reminder
	for _, s := range skills {
		if !s.IsCurrentlyLearning || s.LastUpdated.IsZero() {
			continue
		}
		idle := utils.DaysBetween(s.LastUpdated.In(now.Location()), now)
		if idle < constants.SkillIdleDays {
			continue
		}
		priority := models.PriorityMedium
		if idle >= constants.SkillIdleUrgentDays {
			priority = models.PriorityHigh
		}
		out = append(out, models.Reminder{
			ID:       "skill-" + s.ID,
			Type:     models.ReminderSkill,
			Title:    "Practice " + s.Name,
			Message:  fmt.Sprintf("No practice logged for %s in %s", s.Name, days(idle)),
			Priority: priority,
		})
	}
	return out
}

func weeklyReviewReminder(reviews []models.WeeklyReview, now time.Time) (models.Reminder, bool) {
	weekStart := utils.FormatDate(utils.WeekStart(now))
	for _, r := range reviews {
		if r.WeekStart == weekStart {
			return models.Reminder{}, false
		}
	}

	wd := now.Weekday()
	if wd != time.Friday && wd != time.Saturday && wd != time.Sunday {
		return models.Reminder{}, false
	}

	sunday := utils.FormatDate(utils.WeekStart(now).AddDate(0, 0, 6))
	r := models.Reminder{
		ID:       "weekly-review-" + weekStart,
		Type:     models.ReminderWeeklyReview,
		Title:    "Weekly review pending",
		DueDate:  sunday,
		Priority: models.PriorityMedium,
		Message:  fmt.Sprintf("Reflect on the week of %s before it ends on Sunday", weekStart),
	}
	if wd == time.Sunday {
		r.Priority = models.PriorityHigh
		r.Message = fmt.Sprintf("Last day to complete the weekly review for the week of %s", weekStart)
	}
	return r, true
}

func dailyOverviewReminder(overviews []models.DailyOverview, now time.Time) (models.Reminder, bool) {
	today := utils.FormatDate(now)
	for _, o := range overviews {
		if o.Date == today {
			return models.Reminder{}, false
		}
	}

	hour := now.Hour()
	if hour < constants.OverviewReminderHour {
		return models.Reminder{}, false
	}

	r := models.Reminder{
		ID:       "daily-overview-" + today,
		Type:     models.ReminderDailyOverview,
		Title:    "Daily overview pending",
		Message:  "Take a few minutes to write today's overview",
		DueDate:  today,
		Priority: models.PriorityMedium,
	}
	if hour >= constants.OverviewReminderUrgentHour {
		r.Priority = models.PriorityHigh
		r.Message = "The day is almost over. Write today's overview before midnight"
	}
	return r, true
}
