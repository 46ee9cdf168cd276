package accounts

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/finance"
	"github.com/julianstephens/ventureboard/internal/models"
)

type LoanCmd struct {
	Add    LoanAddCmd    `cmd:"" help:"Add a loan."`
	Pay    LoanPayCmd    `cmd:"" help:"Record an EMI payment."`
	List   LoanListCmd   `cmd:"" help:"List loans."`
	Delete LoanDeleteCmd `cmd:"" help:"Delete a loan."`
}

type LoanAddCmd struct {
	Type      string `arg:"" help:"Loan type, e.g. home, car, personal."`
	Principal string `arg:"" help:"Amount borrowed."`
	EMI       string `arg:"" name:"emi" help:"Monthly installment."`
	DueDay    string `arg:"" name:"due-day" help:"Day of month the EMI is due (1-31)."`
	Lender    string `help:"Lender name."`
	Rate      string `help:"Annual interest rate in percent."`
	Start     string `help:"Start date (YYYY-MM-DD)."`
	Balance   string `help:"Remaining balance of a loan already being repaid. Defaults to the principal; the difference counts as paid."`
}

func (c *LoanAddCmd) Run(ctx *cli.Context) error {
	principal, err := cli.ParseAmount(c.Principal)
	if err != nil {
		return fmt.Errorf("principal: %w", err)
	}
	emi, err := cli.ParseAmount(c.EMI)
	if err != nil {
		return fmt.Errorf("emi: %w", err)
	}
	rate, err := cli.ParseOptionalAmount(c.Rate)
	if err != nil {
		return fmt.Errorf("rate: %w", err)
	}
	balance := principal
	if c.Balance != "" {
		if balance, err = cli.ParseAmount(c.Balance); err != nil {
			return fmt.Errorf("balance: %w", err)
		}
		if balance.GreaterThan(principal) {
			return fmt.Errorf("balance %s cannot exceed the principal %s", ctx.Money(balance), ctx.Money(principal))
		}
	}
	start := ""
	if c.Start != "" {
		if start, err = ctx.ResolveDate(c.Start); err != nil {
			return err
		}
	}

	loan := models.Loan{
		ID:               cli.NewID(),
		Type:             strings.TrimSpace(c.Type),
		Lender:           c.Lender,
		Principal:        principal,
		InterestRate:     rate,
		EMI:              emi,
		DueDate:          strings.TrimSpace(c.DueDay),
		StartDate:        start,
		RemainingBalance: balance,
		TotalPaid:        principal.Sub(balance),
	}
	if err := loan.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddLoan(loan); err != nil {
		return fmt.Errorf("failed to add loan: %w", err)
	}

	ctx.Printf("Added %s loan: %s, EMI %s due on day %s (ID: %s)\n",
		loan.Type, ctx.Money(principal), ctx.Money(emi), loan.DueDate, loan.ID)
	return nil
}

type LoanPayCmd struct {
	ID         string `arg:"" help:"Loan ID."`
	Amount     string `help:"Payment amount. Defaults to the EMI."`
	FromWallet bool   `help:"Also record the payment as wallet spending."`
}

func (c *LoanPayCmd) Run(ctx *cli.Context) error {
	loan, err := ctx.Store.GetLoan(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find loan with ID %s: %w", c.ID, err)
	}
	if loan.IsClosed() {
		return fmt.Errorf("loan %s is already repaid", c.ID)
	}

	amount := loan.EMI
	if c.Amount != "" {
		if amount, err = cli.ParseAmount(c.Amount); err != nil {
			return err
		}
	}
	if err := loan.ApplyPayment(amount); err != nil {
		return err
	}
	if err := ctx.Store.UpdateLoan(loan); err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}

	if c.FromWallet {
		now, err := ctx.LocalNow()
		if err != nil {
			return err
		}
		entry := models.WalletEntry{
			ID:          cli.NewID(),
			Type:        models.WalletSpent,
			Source:      "emi",
			Amount:      amount,
			Date:        now.Format(constants.DateFormat),
			Description: fmt.Sprintf("%s loan payment", loan.Type),
			CreatedAt:   now,
		}
		if err := ctx.Store.AddWalletEntry(entry); err != nil {
			return fmt.Errorf("failed to record wallet spending: %w", err)
		}
	}

	ctx.Printf("Paid %s towards %s loan. Remaining: %s\n", ctx.Money(amount), loan.Type, ctx.Money(loan.RemainingBalance))
	if loan.IsClosed() {
		ctx.Println("✓ Loan fully repaid")
	}
	return nil
}

type LoanListCmd struct{}

func (c *LoanListCmd) Run(ctx *cli.Context) error {
	loans, err := ctx.Store.GetAllLoans()
	if err != nil {
		return fmt.Errorf("failed to load loans: %w", err)
	}
	if len(loans) == 0 {
		ctx.Println("No loans found.")
		return nil
	}

	for _, l := range loans {
		status := "active"
		if l.IsClosed() {
			status = "closed"
		}
		lender := l.Lender
		if lender == "" {
			lender = "-"
		}
		ctx.Printf("%-10s %-14s EMI %-10s day %-3s remaining %-12s [%s] %s\n",
			l.Type, lender, ctx.Money(l.EMI), l.DueDate, ctx.Money(l.RemainingBalance), status, l.ID)
	}
	ctx.Println()
	ctx.Printf("Outstanding: %s  Monthly EMI: %s\n", ctx.Money(finance.OutstandingDebt(loans)), ctx.Money(finance.MonthlyEMI(loans)))
	return nil
}

type LoanDeleteCmd struct {
	ID string `arg:"" help:"Loan ID to delete."`
}

func (c *LoanDeleteCmd) Run(ctx *cli.Context) error {
	loan, err := ctx.Store.GetLoan(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find loan with ID %s: %w", c.ID, err)
	}
	if err := ctx.Store.DeleteLoan(c.ID); err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}

	ctx.Printf("Deleted %s loan (ID: %s)\n", loan.Type, c.ID)
	return nil
}
