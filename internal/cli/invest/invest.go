package invest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/finance"
	"github.com/julianstephens/ventureboard/internal/models"
)

type InvestCmd struct {
	Add    InvestAddCmd    `cmd:"" help:"Add an investment."`
	List   InvestListCmd   `cmd:"" help:"List investments with cost, value and P/L."`
	Price  InvestPriceCmd  `cmd:"" help:"Update the current price of stocks or crypto, or the current value of property."`
	SIP    InvestSIPCmd    `cmd:"" name:"sip" help:"Set the next SIP installment date."`
	Delete InvestDeleteCmd `cmd:"" help:"Delete an investment."`
}

type InvestAddCmd struct {
	Kind string `arg:"" enum:"sip,gold,silver,property,stocks,crypto" help:"Investment type: sip, gold, silver, property, stocks or crypto."`
	Name string `arg:"" help:"Display name, e.g. a fund or ticker."`

	// sip
	Monthly  string `help:"SIP monthly amount." group:"sip"`
	NextDate string `help:"Next SIP installment date (YYYY-MM-DD)." group:"sip"`

	// gold and silver
	Amount string `help:"Amount invested in gold or silver." group:"metals"`
	Grams  string `help:"Weight in grams." group:"metals"`

	// property
	Location string `help:"Property location." group:"property"`
	BuyValue string `help:"Purchase value." group:"property"`
	Value    string `help:"Current value. Defaults to the purchase value." group:"property"`
	Rental   string `help:"Monthly rental income." group:"property"`

	// stocks and crypto
	Quantity string `help:"Units held." group:"market"`
	BuyPrice string `help:"Price per unit at purchase." group:"market"`
	Price    string `help:"Current price per unit. Defaults to the buy price." group:"market"`
}

func (c *InvestAddCmd) Run(ctx *cli.Context) error {
	kind, err := models.ParseInvestmentKind(c.Kind)
	if err != nil {
		return err
	}
	asset, err := c.asset(ctx, kind)
	if err != nil {
		return err
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	inv := models.Investment{
		ID:        cli.NewID(),
		Name:      strings.TrimSpace(c.Name),
		Asset:     asset,
		CreatedAt: now,
	}
	if err := inv.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddInvestment(inv); err != nil {
		return fmt.Errorf("failed to add investment: %w", err)
	}

	ctx.Printf("Added %s investment: %s, cost %s (ID: %s)\n",
		kind, inv.Name, ctx.Money(finance.AcquisitionCost(asset)), inv.ID)
	return nil
}

func (c *InvestAddCmd) asset(ctx *cli.Context, kind models.InvestmentKind) (models.Asset, error) {
	var p parser
	switch kind {
	case models.KindSIP:
		a := models.SIP{Fund: c.Name, MonthlyAmount: p.required("monthly", c.Monthly)}
		if c.NextDate != "" {
			date, err := ctx.ResolveDate(c.NextDate)
			if err != nil {
				return nil, err
			}
			a.NextSipDate = date
		}
		return a, p.err
	case models.KindGold:
		return models.Gold{AmountInvested: p.required("amount", c.Amount), Grams: p.optional("grams", c.Grams)}, p.err
	case models.KindSilver:
		return models.Silver{SilverAmount: p.required("amount", c.Amount), Grams: p.optional("grams", c.Grams)}, p.err
	case models.KindProperty:
		buy := p.required("buy-value", c.BuyValue)
		current := buy
		if c.Value != "" {
			current = p.required("value", c.Value)
		}
		return models.Property{
			Location:     c.Location,
			BuyValue:     buy,
			CurrentValue: current,
			RentalIncome: p.optional("rental", c.Rental),
		}, p.err
	case models.KindStocks, models.KindCrypto:
		qty := p.required("quantity", c.Quantity)
		buy := p.required("buy-price", c.BuyPrice)
		current := buy
		if c.Price != "" {
			current = p.required("price", c.Price)
		}
		if kind == models.KindStocks {
			return models.Stocks{Symbol: c.Name, Quantity: qty, BuyPrice: buy, CurrentPrice: current}, p.err
		}
		return models.Crypto{Coin: c.Name, Quantity: qty, BuyPrice: buy, CurrentPrice: current}, p.err
	}
	return nil, fmt.Errorf("unknown investment type %q", kind)
}

// parser collects the first amount error so asset construction reads flat.
type parser struct {
	err error
}

func (p *parser) required(flag, value string) decimal.Decimal {
	if p.err != nil {
		return decimal.Zero
	}
	if value == "" {
		p.err = fmt.Errorf("--%s is required", flag)
		return decimal.Zero
	}
	amount, err := cli.ParseAmount(value)
	if err != nil {
		p.err = fmt.Errorf("--%s: %w", flag, err)
	}
	return amount
}

func (p *parser) optional(flag, value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	return p.required(flag, value)
}

type InvestListCmd struct {
	Kind string `help:"Only show this investment type."`
}

func (c *InvestListCmd) Run(ctx *cli.Context) error {
	investments, err := ctx.Store.GetAllInvestments()
	if err != nil {
		return fmt.Errorf("failed to load investments: %w", err)
	}
	if c.Kind != "" {
		kind, err := models.ParseInvestmentKind(c.Kind)
		if err != nil {
			return err
		}
		var filtered []models.Investment
		for _, inv := range investments {
			if inv.Kind() == kind {
				filtered = append(filtered, inv)
			}
		}
		investments = filtered
	}
	if len(investments) == 0 {
		ctx.Println("No investments found.")
		return nil
	}

	byID := make(map[string]models.Investment, len(investments))
	for _, inv := range investments {
		byID[inv.ID] = inv
	}
	for _, h := range finance.Holdings(investments) {
		pl := "-"
		if h.HasProfitLoss {
			pl = signed(ctx, h.ProfitLoss)
		}
		ctx.Printf("%-8s %-20s cost %-12s value %-12s P/L %-12s %s\n",
			h.Kind, h.Name, ctx.Money(h.Cost), ctx.Money(h.Value), pl, h.ID)
		if sip, ok := byID[h.ID].Asset.(models.SIP); ok && sip.NextSipDate != "" {
			ctx.Printf("         next installment %s of %s\n", sip.NextSipDate, ctx.Money(sip.MonthlyAmount))
		}
	}
	return nil
}

type InvestPriceCmd struct {
	ID    string `arg:"" help:"Investment ID."`
	Value string `arg:"" help:"New unit price (stocks, crypto) or current value (property)."`
}

func (c *InvestPriceCmd) Run(ctx *cli.Context) error {
	value, err := cli.ParseAmount(c.Value)
	if err != nil {
		return err
	}
	inv, err := ctx.Store.GetInvestment(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find investment with ID %s: %w", c.ID, err)
	}

	switch a := inv.Asset.(type) {
	case models.Stocks:
		a.CurrentPrice = value
		inv.Asset = a
	case models.Crypto:
		a.CurrentPrice = value
		inv.Asset = a
	case models.Property:
		a.CurrentValue = value
		inv.Asset = a
	default:
		return fmt.Errorf("%s investments have no market price; only stocks, crypto and property can be repriced", inv.Kind())
	}

	if err := ctx.Store.UpdateInvestment(inv); err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}
	pl, _ := finance.ProfitLoss(inv.Asset)
	ctx.Printf("Updated %s: value %s, P/L %s\n", inv.Name, ctx.Money(finance.CurrentValue(inv.Asset)), signed(ctx, pl))
	return nil
}

type InvestSIPCmd struct {
	ID       string `arg:"" help:"SIP investment ID."`
	NextDate string `arg:"" help:"Next installment date (YYYY-MM-DD)."`
	Monthly  string `help:"New monthly amount."`
}

func (c *InvestSIPCmd) Run(ctx *cli.Context) error {
	inv, err := ctx.Store.GetInvestment(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find investment with ID %s: %w", c.ID, err)
	}
	sip, ok := inv.Asset.(models.SIP)
	if !ok {
		return fmt.Errorf("investment %s is a %s investment, not a SIP", c.ID, inv.Kind())
	}
	date, err := ctx.ResolveDate(c.NextDate)
	if err != nil {
		return err
	}
	sip.NextSipDate = date
	if c.Monthly != "" {
		if sip.MonthlyAmount, err = cli.ParseAmount(c.Monthly); err != nil {
			return err
		}
	}
	inv.Asset = sip

	if err := ctx.Store.UpdateInvestment(inv); err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}
	ctx.Printf("Next SIP for %s: %s of %s\n", inv.Name, date, ctx.Money(sip.MonthlyAmount))
	return nil
}

type InvestDeleteCmd struct {
	ID string `arg:"" help:"Investment ID to delete."`
}

func (c *InvestDeleteCmd) Run(ctx *cli.Context) error {
	inv, err := ctx.Store.GetInvestment(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find investment with ID %s: %w", c.ID, err)
	}
	if err := ctx.Store.DeleteInvestment(c.ID); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	ctx.Printf("Deleted %s investment: %s (ID: %s)\n", inv.Kind(), inv.Name, c.ID)
	return nil
}

func signed(ctx *cli.Context, amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + ctx.Money(amount)
	}
	return ctx.Money(amount)
}
