package overview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/productivity"
	"github.com/julianstephens/ventureboard/internal/utils"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginTop(1)

	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// heatmap intensity, level 0 to 4
	levelStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
)

type Model struct {
	viewport viewport.Model
	dash     *dashboard.Dashboard
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.dash == nil {
		return "Loading dashboard..."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetDashboard(d dashboard.Dashboard) {
	m.dash = &d
	m.Render()
}

func (m *Model) Render() {
	if m.dash == nil {
		return
	}
	m.viewport.SetContent(Render(*m.dash))
}

// Render draws the dashboard as plain styled text.
func Render(d dashboard.Dashboard) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}

	b.WriteString(headingStyle.Render("Finance") + "\n")
	row("Net worth", signed(d.NetWorth))
	row("Portfolio", fmt.Sprintf("%s (P/L %s)", utils.FormatINR(d.Portfolio), signed(d.Finance.PortfolioProfitLoss)))
	row("Wallet", utils.FormatINR(d.Finance.WalletBalance))
	row("Income", utils.FormatINR(d.Finance.TotalIncome))
	row("Debt", fmt.Sprintf("%s (EMI %s/mo)", utils.FormatINR(d.Finance.OutstandingDebt), utils.FormatINR(d.Finance.MonthlyEMI)))
	row("Goals", fmt.Sprintf("%d/%d completed", d.Finance.GoalsCompleted, d.Finance.GoalsTotal))
	for _, g := range d.Goals {
		if g.Goal.IsCompleted {
			continue
		}
		row("  "+g.Goal.Name, fmt.Sprintf("%s %d%%", bar(g.Percent, 20), g.Percent))
	}

	b.WriteString(headingStyle.Render("Productivity") + "\n")
	row("Today", fmt.Sprintf("%d%% (%d/%d tasks)", d.Today.ProductivityPercentage, d.Today.CompletedTasks, d.Today.TotalTasks))
	row("Streak", fmt.Sprintf("%d days", d.Streak))
	row(fmt.Sprintf("%d-day mean", d.Summary.Days), fmt.Sprintf("%.0f%% ± %.0f (%d days tracked)", d.Summary.Mean, d.Summary.StdDev, d.Summary.DaysTracked))
	row("Focus", fmt.Sprintf("%d min", d.Summary.FocusMinutes))
	b.WriteString("\n" + Heatmap(d.Heatmap) + "\n")

	if len(d.Reminders) > 0 {
		b.WriteString(headingStyle.Render(fmt.Sprintf("%d reminder(s)", len(d.Reminders))) + "\n")
	}
	return b.String()
}

// Heatmap renders cells a week per row, oldest first.
func Heatmap(cells []productivity.Cell) string {
	var rows []string
	var row strings.Builder
	for i, c := range cells {
		level := c.Level
		if level < 0 || level >= len(levelStyles) {
			level = 0
		}
		row.WriteString(levelStyles[level].Render("■") + " ")
		if (i+1)%7 == 0 {
			rows = append(rows, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		rows = append(rows, strings.TrimRight(row.String(), " "))
	}
	return strings.Join(rows, "\n")
}

func signed(amount decimal.Decimal) string {
	s := utils.FormatINR(amount)
	if amount.IsNegative() {
		return lossStyle.Render(s)
	}
	return gainStyle.Render(s)
}

func bar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
