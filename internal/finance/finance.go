// Package finance derives point-in-time money figures from raw collections.
// Every function is pure and total: zero decimals stand in for absent values
// and nothing returns an error.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
)

// Snapshot is the set of collections the calculator folds over.
type Snapshot struct {
	Wallet               []models.WalletEntry
	Expenses             []models.Expense
	Income               []models.Income
	Investments          []models.Investment
	Loans                []models.Loan
	Goals                []models.SavingsGoal
	IntellectualProperty []models.IntellectualProperty
}

var sipMonths = decimal.NewFromInt(constants.SIPMonthsPerYear)

// AcquisitionCost is what was paid for an asset.
func AcquisitionCost(asset models.Asset) decimal.Decimal {
	switch a := asset.(type) {
	case models.Stocks:
		return a.Quantity.Mul(a.BuyPrice)
	case models.Crypto:
		return a.Quantity.Mul(a.BuyPrice)
	case models.Property:
		return a.BuyValue
	case models.Gold:
		return a.AmountInvested
	case models.Silver:
		return a.SilverAmount
	case models.SIP:
		return a.MonthlyAmount.Mul(sipMonths)
	default:
		return decimal.Zero
	}
}

// CurrentValue is what an asset is worth now. Gold, silver and SIP carry no
// separate market price, so their value equals their cost.
func CurrentValue(asset models.Asset) decimal.Decimal {
	switch a := asset.(type) {
	case models.Stocks:
		return a.Quantity.Mul(a.CurrentPrice)
	case models.Crypto:
		return a.Quantity.Mul(a.CurrentPrice)
	case models.Property:
		return a.CurrentValue
	default:
		return AcquisitionCost(asset)
	}
}

// ProfitLoss returns current value minus cost for stocks, property and
// crypto. For other kinds it returns zero and false.
func ProfitLoss(asset models.Asset) (decimal.Decimal, bool) {
	switch asset.(type) {
	case models.Stocks, models.Property, models.Crypto:
		return CurrentValue(asset).Sub(AcquisitionCost(asset)), true
	default:
		return decimal.Zero, false
	}
}

// WalletBalance is Σ added − Σ spent.
func WalletBalance(entries []models.WalletEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		switch e.Type {
		case models.WalletAdded:
			balance = balance.Add(e.Amount)
		case models.WalletSpent:
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}

func TotalExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func TotalIncome(income []models.Income) decimal.Decimal {
	total := decimal.Zero
	for _, i := range income {
		total = total.Add(i.Amount)
	}
	return total
}

// InvestedCost sums acquisition cost over all investments.
func InvestedCost(investments []models.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(AcquisitionCost(inv.Asset))
	}
	return total
}

// PortfolioValue sums current value over all investments.
func PortfolioValue(investments []models.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(CurrentValue(inv.Asset))
	}
	return total
}

// PortfolioProfitLoss sums profit/loss over the kinds where it is defined.
func PortfolioProfitLoss(investments []models.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		if pl, ok := ProfitLoss(inv.Asset); ok {
			total = total.Add(pl)
		}
	}
	return total
}

func IPCost(ips []models.IntellectualProperty) decimal.Decimal {
	total := decimal.Zero
	for _, ip := range ips {
		total = total.Add(ip.CostToBuy)
	}
	return total
}

func IPMarketValue(ips []models.IntellectualProperty) decimal.Decimal {
	total := decimal.Zero
	for _, ip := range ips {
		total = total.Add(ip.MarketValue)
	}
	return total
}

// OutstandingDebt sums remaining loan balances.
func OutstandingDebt(loans []models.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(l.RemainingBalance)
	}
	return total
}

// MonthlyEMI sums the EMI of loans that still have a balance.
func MonthlyEMI(loans []models.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		if !l.IsClosed() {
			total = total.Add(l.EMI)
		}
	}
	return total
}

// NetWorth = wallet balance − expenses − investment cost − IP cost − loan balances.
// Income is tracked separately and does not enter the figure.
func NetWorth(s Snapshot) decimal.Decimal {
	return WalletBalance(s.Wallet).
		Sub(TotalExpenses(s.Expenses)).
		Sub(InvestedCost(s.Investments)).
		Sub(IPCost(s.IntellectualProperty)).
		Sub(OutstandingDebt(s.Loans))
}
