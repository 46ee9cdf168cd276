package invest

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/finance"
)

type NetWorthCmd struct {
	JSON bool `name:"json" help:"Print the summary as JSON."`
}

func (c *NetWorthCmd) Run(ctx *cli.Context) error {
	data, err := dashboard.Load(ctx.Store)
	if err != nil {
		return err
	}
	sum := finance.Summarize(data.Finance)
	if c.JSON {
		return writeJSON(ctx, sum)
	}

	ctx.Printf("Net worth: %s\n", ctx.Money(sum.NetWorth))
	ctx.Println()
	rows := []struct {
		label string
		value string
	}{
		{"Wallet balance", ctx.Money(sum.WalletBalance)},
		{"Expenses", "-" + ctx.Money(sum.TotalExpenses)},
		{"Invested", "-" + ctx.Money(sum.InvestedCost)},
		{"Intellectual property", "-" + ctx.Money(sum.IPCost)},
		{"Outstanding loans", "-" + ctx.Money(sum.OutstandingDebt)},
	}
	for _, r := range rows {
		ctx.Printf("  %-22s %14s\n", r.label, r.value)
	}
	ctx.Println()
	ctx.Printf("Income recorded: %s  Monthly EMI: %s  Goals: %d/%d complete\n",
		ctx.Money(sum.TotalIncome), ctx.Money(sum.MonthlyEMI), sum.GoalsCompleted, sum.GoalsTotal)
	return nil
}

type PortfolioCmd struct {
	JSON bool `name:"json" help:"Print holdings as JSON."`
}

func (c *PortfolioCmd) Run(ctx *cli.Context) error {
	investments, err := ctx.Store.GetAllInvestments()
	if err != nil {
		return fmt.Errorf("failed to load investments: %w", err)
	}
	holdings := finance.Holdings(investments)
	totals := finance.ByKind(holdings)
	if c.JSON {
		return writeJSON(ctx, struct {
			Value      decimal.Decimal     `json:"value"`
			Cost       decimal.Decimal     `json:"cost"`
			ProfitLoss decimal.Decimal     `json:"profit_loss"`
			Holdings   []finance.Holding   `json:"holdings"`
			ByKind     []finance.KindTotal `json:"by_kind"`
		}{
			Value:      finance.PortfolioValue(investments),
			Cost:       finance.InvestedCost(investments),
			ProfitLoss: finance.PortfolioProfitLoss(investments),
			Holdings:   holdings,
			ByKind:     totals,
		})
	}
	if len(holdings) == 0 {
		ctx.Println("No investments found.")
		return nil
	}

	ctx.Printf("Portfolio value: %s (cost %s, P/L %s)\n",
		ctx.Money(finance.PortfolioValue(investments)),
		ctx.Money(finance.InvestedCost(investments)),
		signed(ctx, finance.PortfolioProfitLoss(investments)))
	ctx.Println()
	for _, t := range totals {
		ctx.Printf("  %-8s %2d holding(s)  cost %-12s value %s\n", t.Kind, t.Count, ctx.Money(t.Cost), ctx.Money(t.Value))
	}
	return nil
}

func writeJSON(ctx *cli.Context, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	ctx.Println(string(b))
	return nil
}
