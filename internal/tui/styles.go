package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ventureboard/internal/models"
)

const (
	colorAccent = lipgloss.Color("42")
	colorMuted  = lipgloss.Color("241")
	colorHigh   = lipgloss.Color("196")
	colorMedium = lipgloss.Color("214")
	colorLow    = lipgloss.Color("39")
)

var (
	docStyle = lipgloss.NewStyle().Padding(1, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Underline(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().Foreground(colorHigh).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorHigh).Italic(true)
)

// reminderBadge renders the reminder count in the colour of the most urgent one.
func reminderBadge(rs []models.Reminder) lipgloss.Style {
	color := colorLow
	for _, r := range rs {
		switch r.Priority {
		case models.PriorityHigh:
			color = colorHigh
		case models.PriorityMedium:
			if color != colorHigh {
				color = colorMedium
			}
		}
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(color).
		Bold(true).
		Padding(0, 1)
}
