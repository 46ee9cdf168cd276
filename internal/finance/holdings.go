package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/ventureboard/internal/models"
)

// Holding is the valuation of a single investment.
type Holding struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Kind          models.InvestmentKind `json:"kind"`
	Cost          decimal.Decimal       `json:"cost"`
	Value         decimal.Decimal       `json:"value"`
	ProfitLoss    decimal.Decimal       `json:"profit_loss"`
	HasProfitLoss bool                  `json:"has_profit_loss"`
}

// KindTotal aggregates holdings of one kind.
type KindTotal struct {
	Kind  models.InvestmentKind `json:"kind"`
	Count int                   `json:"count"`
	Cost  decimal.Decimal       `json:"cost"`
	Value decimal.Decimal       `json:"value"`
}

// Holdings values each investment, preserving input order.
func Holdings(investments []models.Investment) []Holding {
	out := make([]Holding, 0, len(investments))
	for _, inv := range investments {
		pl, ok := ProfitLoss(inv.Asset)
		out = append(out, Holding{
			ID:            inv.ID,
			Name:          inv.Name,
			Kind:          inv.Kind(),
			Cost:          AcquisitionCost(inv.Asset),
			Value:         CurrentValue(inv.Asset),
			ProfitLoss:    pl,
			HasProfitLoss: ok,
		})
	}
	return out
}

// ByKind groups holdings into per-kind totals in models.InvestmentKinds order.
// Kinds with no holdings are omitted.
func ByKind(holdings []Holding) []KindTotal {
	totals := make(map[models.InvestmentKind]*KindTotal)
	for _, h := range holdings {
		t, ok := totals[h.Kind]
		if !ok {
			t = &KindTotal{Kind: h.Kind, Cost: decimal.Zero, Value: decimal.Zero}
			totals[h.Kind] = t
		}
		t.Count++
		t.Cost = t.Cost.Add(h.Cost)
		t.Value = t.Value.Add(h.Value)
	}

	order := make(map[models.InvestmentKind]int, len(models.InvestmentKinds))
	for i, k := range models.InvestmentKinds {
		order[k] = i
	}
	out := make([]KindTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i].Kind] < order[out[j].Kind] })
	return out
}

// GoalProgress is a savings goal with its completion ratio.
type GoalProgress struct {
	Goal      models.SavingsGoal `json:"goal"`
	Percent   int                `json:"percent"` // 0-100
	Remaining decimal.Decimal    `json:"remaining"`
}

// Goals reports progress for each goal. Percent is capped at 100 and
// remaining is never negative.
func Goals(goals []models.SavingsGoal) []GoalProgress {
	hundred := decimal.NewFromInt(100)
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		pct := 0
		if g.TargetAmount.IsPositive() {
			pct = int(g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).Floor().IntPart())
		}
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
		out = append(out, GoalProgress{
			Goal:      g,
			Percent:   pct,
			Remaining: decimal.Max(decimal.Zero, g.TargetAmount.Sub(g.CurrentAmount)),
		})
	}
	return out
}

// Summary collects the headline figures shown on the dashboard.
type Summary struct {
	NetWorth            decimal.Decimal `json:"net_worth"`
	WalletBalance       decimal.Decimal `json:"wallet_balance"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	TotalIncome         decimal.Decimal `json:"total_income"`
	InvestedCost        decimal.Decimal `json:"invested_cost"`
	PortfolioValue      decimal.Decimal `json:"portfolio_value"`
	PortfolioProfitLoss decimal.Decimal `json:"portfolio_profit_loss"`
	IPCost              decimal.Decimal `json:"ip_cost"`
	IPMarketValue       decimal.Decimal `json:"ip_market_value"`
	OutstandingDebt     decimal.Decimal `json:"outstanding_debt"`
	MonthlyEMI          decimal.Decimal `json:"monthly_emi"`
	GoalsCompleted      int             `json:"goals_completed"`
	GoalsTotal          int             `json:"goals_total"`
}

func Summarize(s Snapshot) Summary {
	completed := 0
	for _, g := range s.Goals {
		if g.IsCompleted {
			completed++
		}
	}
	return Summary{
		NetWorth:            NetWorth(s),
		WalletBalance:       WalletBalance(s.Wallet),
		TotalExpenses:       TotalExpenses(s.Expenses),
		TotalIncome:         TotalIncome(s.Income),
		InvestedCost:        InvestedCost(s.Investments),
		PortfolioValue:      PortfolioValue(s.Investments),
		PortfolioProfitLoss: PortfolioProfitLoss(s.Investments),
		IPCost:              IPCost(s.IntellectualProperty),
		IPMarketValue:       IPMarketValue(s.IntellectualProperty),
		OutstandingDebt:     OutstandingDebt(s.Loans),
		MonthlyEMI:          MonthlyEMI(s.Loans),
		GoalsCompleted:      completed,
		GoalsTotal:          len(s.Goals),
	}
}

// ExpensesByCategory totals expenses per category, largest first.
func ExpensesByCategory(expenses []models.Expense) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	out := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}
