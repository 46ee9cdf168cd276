package accounts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/finance"
	"github.com/julianstephens/ventureboard/internal/models"
)

type IncomeCmd struct {
	Add    IncomeAddCmd    `cmd:"" help:"Record income."`
	List   IncomeListCmd   `cmd:"" help:"List income."`
	Delete IncomeDeleteCmd `cmd:"" help:"Delete an income record."`
}

type IncomeAddCmd struct {
	Source      string `arg:"" help:"Income source, e.g. salary."`
	Amount      string `arg:"" help:"Amount received."`
	Date        string `help:"Date (YYYY-MM-DD, today, yesterday). Defaults to today."`
	Recurring   bool   `help:"Mark as recurring income."`
	Description string `help:"Optional note."`
}

func (c *IncomeAddCmd) Run(ctx *cli.Context) error {
	amount, err := cli.ParseAmount(c.Amount)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	income := models.Income{
		ID:          cli.NewID(),
		Source:      strings.TrimSpace(c.Source),
		Amount:      amount,
		Date:        date,
		IsRecurring: c.Recurring,
		Description: c.Description,
	}
	if err := income.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddIncome(income); err != nil {
		return fmt.Errorf("failed to add income: %w", err)
	}

	ctx.Printf("Added income: %s %s on %s (ID: %s)\n", income.Source, ctx.Money(amount), date, income.ID)
	return nil
}

type IncomeListCmd struct{}

func (c *IncomeListCmd) Run(ctx *cli.Context) error {
	income, err := ctx.Store.GetAllIncome()
	if err != nil {
		return fmt.Errorf("failed to load income: %w", err)
	}
	if len(income) == 0 {
		ctx.Println("No income found.")
		return nil
	}

	for _, i := range income {
		recurring := ""
		if i.IsRecurring {
			recurring = " [recurring]"
		}
		ctx.Printf("%s  %-12s %-14s %s%s\n", i.Date, ctx.Money(i.Amount), i.Source, i.ID, recurring)
	}
	ctx.Println()
	ctx.Printf("Total: %s\n", ctx.Money(finance.TotalIncome(income)))
	return nil
}

type IncomeDeleteCmd struct {
	ID string `arg:"" help:"Income ID to delete."`
}

func (c *IncomeDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteIncome(c.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to find income with ID %s: %w", c.ID, err)
		}
		return fmt.Errorf("failed to delete income: %w", err)
	}
	ctx.Printf("Deleted income (ID: %s)\n", c.ID)
	return nil
}
