package accounts

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/finance"
	"github.com/julianstephens/ventureboard/internal/models"
)

type IPCmd struct {
	Add    IPAddCmd    `cmd:"" help:"Add intellectual property."`
	List   IPListCmd   `cmd:"" help:"List intellectual property."`
	Delete IPDeleteCmd `cmd:"" help:"Delete intellectual property."`
}

type IPAddCmd struct {
	Name    string `arg:"" help:"Name, e.g. a domain or course."`
	Cost    string `arg:"" help:"Cost to buy."`
	Value   string `help:"Current market value. Defaults to the cost."`
	Purpose string `help:"What it is for."`
}

func (c *IPAddCmd) Run(ctx *cli.Context) error {
	cost, err := cli.ParseAmount(c.Cost)
	if err != nil {
		return fmt.Errorf("cost: %w", err)
	}
	value := cost
	if c.Value != "" {
		if value, err = cli.ParseAmount(c.Value); err != nil {
			return fmt.Errorf("value: %w", err)
		}
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	ip := models.IntellectualProperty{
		ID:          cli.NewID(),
		Name:        strings.TrimSpace(c.Name),
		Purpose:     c.Purpose,
		MarketValue: value,
		CostToBuy:   cost,
		CreatedAt:   now,
	}
	if err := ip.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddIP(ip); err != nil {
		return fmt.Errorf("failed to add intellectual property: %w", err)
	}

	ctx.Printf("Added intellectual property: %s, cost %s (ID: %s)\n", ip.Name, ctx.Money(cost), ip.ID)
	return nil
}

type IPListCmd struct{}

func (c *IPListCmd) Run(ctx *cli.Context) error {
	ips, err := ctx.Store.GetAllIP()
	if err != nil {
		return fmt.Errorf("failed to load intellectual property: %w", err)
	}
	if len(ips) == 0 {
		ctx.Println("No intellectual property found.")
		return nil
	}

	for _, ip := range ips {
		ctx.Printf("%-20s cost %-12s value %-12s %s (ID: %s)\n",
			ip.Name, ctx.Money(ip.CostToBuy), ctx.Money(ip.MarketValue), ip.Purpose, ip.ID)
	}
	ctx.Println()
	ctx.Printf("Total cost: %s  Market value: %s\n", ctx.Money(finance.IPCost(ips)), ctx.Money(finance.IPMarketValue(ips)))
	return nil
}

type IPDeleteCmd struct {
	ID string `arg:"" help:"Intellectual property ID to delete."`
}

func (c *IPDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteIP(c.ID); err != nil {
		return fmt.Errorf("failed to delete intellectual property %s: %w", c.ID, err)
	}
	ctx.Printf("Deleted intellectual property (ID: %s)\n", c.ID)
	return nil
}
