package models

import (
	"fmt"
	"time"
)

// DailyTask is a to-do item. It applies to a day when it is an everyday task,
// when Date matches, or when the day falls inside [StartDate, EndDate].
type DailyTask struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	IsEveryday bool      `json:"is_everyday"`
	Date       string    `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  string    `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    string    `json:"end_date,omitempty"`   // YYYY-MM-DD
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t *DailyTask) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if err := validateDate("date", t.Date, false); err != nil {
		return err
	}
	if err := validateDate("start date", t.StartDate, false); err != nil {
		return err
	}
	if err := validateDate("end date", t.EndDate, false); err != nil {
		return err
	}
	if (t.StartDate == "") != (t.EndDate == "") {
		return fmt.Errorf("start date and end date must be set together")
	}
	if t.StartDate != "" && t.StartDate > t.EndDate {
		return fmt.Errorf("start date %s is after end date %s", t.StartDate, t.EndDate)
	}
	return nil
}

// DailyOverview is the end-of-day reflection. One per date.
type DailyOverview struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Wins          string    `json:"wins,omitempty"`
	Challenges    string    `json:"challenges,omitempty"`
	Gratitude     string    `json:"gratitude,omitempty"`
	TomorrowFocus string    `json:"tomorrow_focus,omitempty"`
	Mood          int       `json:"mood"` // 1-5, 0 when unset
	UpdatedAt     time.Time `json:"updated_at"`
}

func (o *DailyOverview) Validate() error {
	if o.Mood < 0 || o.Mood > 5 {
		return fmt.Errorf("mood must be between 1 and 5")
	}
	return validateDate("date", o.Date, true)
}

// WeeklyReview is keyed by the Monday that starts its week.
type WeeklyReview struct {
	ID              string    `json:"id"`
	WeekStart       string    `json:"week_start"` // YYYY-MM-DD, a Monday
	Accomplishments string    `json:"accomplishments,omitempty"`
	Lessons         string    `json:"lessons,omitempty"`
	NextWeekGoals   string    `json:"next_week_goals,omitempty"`
	Rating          int       `json:"rating"` // 1-10, 0 when unset
	UpdatedAt       time.Time `json:"updated_at"`
}

func (r *WeeklyReview) Validate() error {
	if r.Rating < 0 || r.Rating > 10 {
		return fmt.Errorf("rating must be between 1 and 10")
	}
	if err := validateDate("week start", r.WeekStart, true); err != nil {
		return err
	}
	ws, _ := time.Parse("2006-01-02", r.WeekStart)
	if ws.Weekday() != time.Monday {
		return fmt.Errorf("week start %s is not a Monday", r.WeekStart)
	}
	return nil
}

// ProductivityEntry is a cached completion ratio for one day, derived from tasks.
type ProductivityEntry struct {
	Date                   string `json:"date"` // YYYY-MM-DD
	TotalTasks             int    `json:"total_tasks"`
	CompletedTasks         int    `json:"completed_tasks"`
	ProductivityPercentage int    `json:"productivity_percentage"`
}

type PomodoroSession struct {
	ID          string    `json:"id"`
	Label       string    `json:"label,omitempty"`
	DurationMin int       `json:"duration_min"`
	StartedAt   time.Time `json:"started_at"`
	Completed   bool      `json:"completed"`
}

func (p *PomodoroSession) Validate() error {
	if p.DurationMin <= 0 {
		return fmt.Errorf("pomodoro duration must be positive")
	}
	if p.StartedAt.IsZero() {
		return fmt.Errorf("pomodoro start time cannot be empty")
	}
	return nil
}
