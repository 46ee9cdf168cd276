package accounts

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/finance"
	"github.com/julianstephens/ventureboard/internal/models"
)

type ExpenseCmd struct {
	Add    ExpenseAddCmd    `cmd:"" help:"Record an expense."`
	Edit   ExpenseEditCmd   `cmd:"" help:"Edit an expense."`
	Delete ExpenseDeleteCmd `cmd:"" help:"Delete an expense."`
	List   ExpenseListCmd   `cmd:"" help:"List expenses with per-category totals."`
}

type ExpenseAddCmd struct {
	Category    string   `arg:"" help:"Expense category, e.g. food or rent."`
	Amount      string   `arg:"" help:"Amount spent."`
	Date        string   `help:"Date (YYYY-MM-DD, today, yesterday). Defaults to today."`
	Tags        []string `help:"Comma-separated tags."`
	Recurring   bool     `help:"Mark as a recurring expense."`
	GST         bool     `name:"gst" help:"Amount includes GST."`
	Description string   `help:"Optional note."`
}

func (c *ExpenseAddCmd) Run(ctx *cli.Context) error {
	amount, err := cli.ParseAmount(c.Amount)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	expense := models.Expense{
		ID:          cli.NewID(),
		Category:    strings.TrimSpace(c.Category),
		Tags:        c.Tags,
		Amount:      amount,
		Date:        date,
		IsRecurring: c.Recurring,
		IncludesGST: c.GST,
		Description: c.Description,
	}
	if err := expense.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddExpense(expense); err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}

	ctx.Printf("Added expense: %s %s on %s (ID: %s)\n", expense.Category, ctx.Money(amount), date, expense.ID)
	return nil
}

type ExpenseEditCmd struct {
	ID          string   `arg:"" help:"Expense ID to edit."`
	Category    string   `help:"New category."`
	Amount      string   `help:"New amount."`
	Date        string   `help:"New date (YYYY-MM-DD)."`
	Tags        []string `help:"Replace tags (comma-separated)."`
	Recurring   *bool    `help:"Mark as recurring (true/false)."`
	GST         *bool    `name:"gst" help:"Amount includes GST (true/false)."`
	Description *string  `help:"New note."`
}

func (c *ExpenseEditCmd) Run(ctx *cli.Context) error {
	expense, err := ctx.Store.GetExpense(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find expense with ID %s: %w", c.ID, err)
	}

	if c.Category != "" {
		expense.Category = strings.TrimSpace(c.Category)
	}
	if c.Amount != "" {
		amount, err := cli.ParseAmount(c.Amount)
		if err != nil {
			return err
		}
		expense.Amount = amount
	}
	if c.Date != "" {
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		expense.Date = date
	}
	if c.Tags != nil {
		expense.Tags = c.Tags
	}
	if c.Recurring != nil {
		expense.IsRecurring = *c.Recurring
	}
	if c.GST != nil {
		expense.IncludesGST = *c.GST
	}
	if c.Description != nil {
		expense.Description = *c.Description
	}

	if err := expense.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateExpense(expense); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	ctx.Printf("Updated expense: %s %s on %s\n", expense.Category, ctx.Money(expense.Amount), expense.Date)
	return nil
}

type ExpenseDeleteCmd struct {
	ID string `arg:"" help:"Expense ID to delete."`
}

func (c *ExpenseDeleteCmd) Run(ctx *cli.Context) error {
	expense, err := ctx.Store.GetExpense(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find expense with ID %s: %w", c.ID, err)
	}
	if err := ctx.Store.DeleteExpense(c.ID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	ctx.Printf("Deleted expense: %s %s (ID: %s)\n", expense.Category, ctx.Money(expense.Amount), c.ID)
	return nil
}

type ExpenseListCmd struct {
	Category string `help:"Only show this category."`
	Month    string `help:"Only show this month (YYYY-MM)."`
}

func (c *ExpenseListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Store.GetAllExpenses()
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	var expenses []models.Expense
	for _, e := range all {
		if c.Category != "" && !strings.EqualFold(e.Category, c.Category) {
			continue
		}
		if c.Month != "" && !strings.HasPrefix(e.Date, c.Month) {
			continue
		}
		expenses = append(expenses, e)
	}
	if len(expenses) == 0 {
		ctx.Println("No expenses found.")
		return nil
	}

	for _, e := range expenses {
		flags := ""
		if e.IsRecurring {
			flags += " [recurring]"
		}
		if e.IncludesGST {
			flags += " [gst]"
		}
		ctx.Printf("%s  %-12s %-14s %s%s\n", e.Date, ctx.Money(e.Amount), e.Category, e.ID, flags)
		if len(e.Tags) > 0 {
			ctx.Printf("            tags: %s\n", strings.Join(e.Tags, ", "))
		}
	}

	ctx.Println()
	ctx.Println("By category:")
	for _, cat := range finance.ExpensesByCategory(expenses) {
		ctx.Printf("  %-14s %s\n", cat.Category, ctx.Money(cat.Total))
	}
	ctx.Printf("Total: %s\n", ctx.Money(finance.TotalExpenses(expenses)))
	return nil
}
