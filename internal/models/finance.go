package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type WalletEntryType string

const (
	WalletAdded WalletEntryType = "added"
	WalletSpent WalletEntryType = "spent"
)

// WalletEntry is an immutable cash movement. Entries are only removed by a full wallet reset.
type WalletEntry struct {
	ID          string          `json:"id"`
	Type        WalletEntryType `json:"type"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (w *WalletEntry) Validate() error {
	if w.Type != WalletAdded && w.Type != WalletSpent {
		return fmt.Errorf("invalid wallet entry type %q (expected added or spent)", w.Type)
	}
	if w.Amount.IsNegative() {
		return fmt.Errorf("wallet amount cannot be negative")
	}
	return validateDate("date", w.Date, true)
}

type Expense struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	IsRecurring bool            `json:"is_recurring"`
	IncludesGST bool            `json:"includes_gst"`
	Description string          `json:"description,omitempty"`
}

func (e *Expense) Validate() error {
	if e.Category == "" {
		return fmt.Errorf("expense category cannot be empty")
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("expense amount cannot be negative")
	}
	return validateDate("date", e.Date, true)
}

type Income struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	IsRecurring bool            `json:"is_recurring"`
	Description string          `json:"description,omitempty"`
}

func (i *Income) Validate() error {
	if i.Source == "" {
		return fmt.Errorf("income source cannot be empty")
	}
	if i.Amount.IsNegative() {
		return fmt.Errorf("income amount cannot be negative")
	}
	return validateDate("date", i.Date, true)
}

type Loan struct {
	ID               string          `json:"id"`
	Type             string          `json:"type"` // home, car, personal, education...
	Lender           string          `json:"lender,omitempty"`
	Principal        decimal.Decimal `json:"principal"`
	InterestRate     decimal.Decimal `json:"interest_rate"` // annual, percent
	EMI              decimal.Decimal `json:"emi"`
	DueDate          string          `json:"due_date"` // day of month, "1".."31"
	StartDate        string          `json:"start_date,omitempty"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
}

func (l *Loan) Validate() error {
	if l.Type == "" {
		return fmt.Errorf("loan type cannot be empty")
	}
	if l.Principal.IsNegative() || l.EMI.IsNegative() {
		return fmt.Errorf("loan amounts cannot be negative")
	}
	if l.DueDate != "" {
		if _, err := l.DueDay(); err != nil {
			return err
		}
	}
	return validateDate("start date", l.StartDate, false)
}

// DueDay parses the EMI day of month.
func (l *Loan) DueDay() (int, error) {
	day, err := strconv.Atoi(l.DueDate)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid due date %q (expected day of month 1-31)", l.DueDate)
	}
	return day, nil
}

// ApplyPayment records an EMI payment. TotalPaid only grows and the remaining
// balance is clamped at zero.
func (l *Loan) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("payment amount must be positive")
	}
	l.TotalPaid = l.TotalPaid.Add(amount)
	l.RemainingBalance = decimal.Max(decimal.Zero, l.RemainingBalance.Sub(amount))
	return nil
}

// IsClosed reports whether nothing remains to be repaid.
func (l *Loan) IsClosed() bool {
	return !l.RemainingBalance.IsPositive()
}

type SavingsGoal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline,omitempty"` // YYYY-MM-DD
	Category      string          `json:"category,omitempty"`
	IsCompleted   bool            `json:"is_completed"`
}

func (g *SavingsGoal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("goal name cannot be empty")
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("goal target must be positive")
	}
	return validateDate("deadline", g.Deadline, false)
}

// SyncCompletion enforces IsCompleted == (CurrentAmount >= TargetAmount).
// Stores call it on every write.
func (g *SavingsGoal) SyncCompletion() {
	g.IsCompleted = g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Contribute adds money towards the goal.
func (g *SavingsGoal) Contribute(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("contribution must be positive")
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.SyncCompletion()
	return nil
}

type IntellectualProperty struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Purpose     string          `json:"purpose,omitempty"`
	MarketValue decimal.Decimal `json:"market_value"`
	CostToBuy   decimal.Decimal `json:"cost_to_buy"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (ip *IntellectualProperty) Validate() error {
	if ip.Name == "" {
		return fmt.Errorf("intellectual property name cannot be empty")
	}
	if ip.CostToBuy.IsNegative() || ip.MarketValue.IsNegative() {
		return fmt.Errorf("intellectual property values cannot be negative")
	}
	return nil
}

func validateDate(field, value string, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("invalid %s format (expected YYYY-MM-DD): %w", field, err)
	}
	return nil
}
