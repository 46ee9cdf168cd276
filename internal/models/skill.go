package models

import (
	"fmt"
	"time"
)

type Skill struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Category            string    `json:"category,omitempty"`
	Level               int       `json:"level"`            // 0-100
	TimeSpentToday      float64   `json:"time_spent_today"` // hours
	TotalHours          float64   `json:"total_hours"`
	IsCurrentlyLearning bool      `json:"is_currently_learning"`
	LastUpdated         time.Time `json:"last_updated"`
}

func (s *Skill) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("skill name cannot be empty")
	}
	if s.Level < 0 || s.Level > 100 {
		return fmt.Errorf("skill level must be between 0 and 100, got %d", s.Level)
	}
	if s.TimeSpentToday < 0 || s.TotalHours < 0 {
		return fmt.Errorf("skill hours cannot be negative")
	}
	return nil
}

// LogPractice records hours spent on the skill at the given time. Practice
// on a new calendar day resets TimeSpentToday before adding.
func (s *Skill) LogPractice(hours float64, at time.Time) error {
	if hours <= 0 {
		return fmt.Errorf("hours must be positive")
	}
	if !s.LastUpdated.IsZero() && s.LastUpdated.In(at.Location()).Format("2006-01-02") != at.Format("2006-01-02") {
		s.TimeSpentToday = 0
	}
	s.TimeSpentToday += hours
	s.TotalHours += hours
	s.LastUpdated = at
	return nil
}
