package settings

import (
	"fmt"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/utils"
)

type SettingsCmd struct {
	Timezone    *string `help:"IANA timezone, e.g. Asia/Kolkata, or Local for the system timezone."`
	Currency    *string `help:"Currency symbol used when printing money."`
	Notify      *bool   `help:"Push reminders to the tray app (true/false)."`
	MinPriority *string `help:"Least urgent reminder that is pushed (high, medium, low)."`
	Retention   *int    `help:"Number of automatic backups to keep."`
	List        bool    `help:"List current settings." short:"l"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List || !c.changes() {
		printSettings(ctx, settings)
		return nil
	}

	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		ctx.Printf("Timezone set to %s\n", *c.Timezone)
	}
	if c.Currency != nil {
		if *c.Currency == "" {
			return fmt.Errorf("currency symbol cannot be empty")
		}
		settings.CurrencySymbol = *c.Currency
		ctx.Printf("Currency symbol set to %s\n", *c.Currency)
	}
	if c.Notify != nil {
		settings.NotificationsEnabled = *c.Notify
		ctx.Printf("Notifications enabled: %v\n", *c.Notify)
	}
	if c.MinPriority != nil {
		p := models.Priority(*c.MinPriority)
		if !p.Valid() {
			return fmt.Errorf("invalid priority %q (expected high, medium or low)", *c.MinPriority)
		}
		settings.NotifyMinPriority = p
		ctx.Printf("Notification priority set to %s\n", p)
	}
	if c.Retention != nil {
		if *c.Retention < 1 {
			return fmt.Errorf("backup retention must be at least 1")
		}
		settings.BackupRetention = *c.Retention
		ctx.Printf("Backup retention set to %d\n", *c.Retention)
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (c *SettingsCmd) changes() bool {
	return c.Timezone != nil || c.Currency != nil || c.Notify != nil || c.MinPriority != nil || c.Retention != nil
}

func printSettings(ctx *cli.Context, s models.Settings) {
	ctx.Println("Current settings:")
	ctx.Printf("  timezone:              %s\n", s.Timezone)
	ctx.Printf("  currency_symbol:       %s\n", s.CurrencySymbol)
	ctx.Printf("  notifications_enabled: %v\n", s.NotificationsEnabled)
	ctx.Printf("  notify_min_priority:   %s\n", s.NotifyMinPriority)
	ctx.Printf("  backup_retention:      %d\n", s.BackupRetention)
}
