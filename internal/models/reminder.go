package models

type ReminderType string

const (
	ReminderSIP           ReminderType = "sip"
	ReminderEMI           ReminderType = "emi"
	ReminderSkill         ReminderType = "skill"
	ReminderWeeklyReview  ReminderType = "weekly_review"
	ReminderDailyOverview ReminderType = "daily_overview"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities: high 0, medium 1, low 2. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() < 3
}

// AtLeast reports whether p is as urgent as min.
func (p Priority) AtLeast(min Priority) bool {
	return p.Rank() <= min.Rank()
}

// Reminder is a derived alert. It is never persisted.
type Reminder struct {
	ID       string       `json:"id"`
	Type     ReminderType `json:"type"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	DueDate  string       `json:"due_date,omitempty"` // YYYY-MM-DD
	Priority Priority     `json:"priority"`
}
