package accounts

import (
	"fmt"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/finance"
	"github.com/julianstephens/ventureboard/internal/models"
)

type WalletCmd struct {
	Add   WalletAddCmd   `cmd:"" help:"Record money added to or spent from the wallet."`
	List  WalletListCmd  `cmd:"" help:"List wallet entries and the balance."`
	Reset WalletResetCmd `cmd:"" help:"Delete every wallet entry."`
}

type WalletAddCmd struct {
	Amount      string `arg:"" help:"Amount, e.g. 1500 or 1,500.50."`
	Spent       bool   `help:"Record money spent instead of added."`
	Source      string `help:"Where the money came from or went to." default:"manual"`
	Date        string `help:"Date (YYYY-MM-DD, today, yesterday). Defaults to today."`
	Description string `help:"Optional note."`
}

func (c *WalletAddCmd) Run(ctx *cli.Context) error {
	amount, err := cli.ParseAmount(c.Amount)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	entry := models.WalletEntry{
		ID:          cli.NewID(),
		Type:        models.WalletAdded,
		Source:      c.Source,
		Amount:      amount,
		Date:        date,
		Description: c.Description,
		CreatedAt:   now,
	}
	if c.Spent {
		entry.Type = models.WalletSpent
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddWalletEntry(entry); err != nil {
		return fmt.Errorf("failed to add wallet entry: %w", err)
	}

	entries, err := ctx.Store.GetWalletEntries()
	if err != nil {
		return fmt.Errorf("failed to load wallet: %w", err)
	}
	ctx.Printf("Recorded %s %s on %s (ID: %s)\n", entry.Type, ctx.Money(amount), date, entry.ID)
	ctx.Printf("Wallet balance: %s\n", ctx.Money(finance.WalletBalance(entries)))
	return nil
}

type WalletListCmd struct{}

func (c *WalletListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetWalletEntries()
	if err != nil {
		return fmt.Errorf("failed to load wallet: %w", err)
	}
	if len(entries) == 0 {
		ctx.Println("No wallet entries found.")
		return nil
	}

	for _, e := range entries {
		sign := "+"
		if e.Type == models.WalletSpent {
			sign = "-"
		}
		ctx.Printf("%s  %s%-12s %-16s %s\n", e.Date, sign, ctx.Money(e.Amount), e.Source, e.Description)
	}
	ctx.Println()
	ctx.Printf("Balance: %s\n", ctx.Money(finance.WalletBalance(entries)))
	return nil
}

type WalletResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *WalletResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes && !ctx.Confirm("Delete every wallet entry? This cannot be undone") {
		ctx.Println("Reset cancelled.")
		return nil
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.ResetWallet(); err != nil {
		return fmt.Errorf("failed to reset wallet: %w", err)
	}
	ctx.Println("✓ Wallet reset")
	return nil
}
