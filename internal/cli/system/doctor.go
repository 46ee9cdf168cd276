package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/config"
	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/keyring"
	"github.com/julianstephens/ventureboard/internal/storage"
	"github.com/julianstephens/ventureboard/internal/utils"
)

// skipped marks a check that does not apply to the current setup.
type skipped string

func (s skipped) Error() string { return string(s) }

type check struct {
	name string
	// warn checks never fail the run.
	warn  bool
	needs bool
	run   func(*cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needs: true, run: checkSchema},
	{name: "Data validation", needs: true, run: checkData},
	{name: "Clock/timezone", needs: true, run: checkClockTimezone},
	{name: "Backups present", warn: true, needs: true, run: checkBackupsPresent},
	{name: "OS keyring", warn: true, run: checkKeyring},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := false
	reachable := true
	for _, c := range checks {
		if c.needs && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var skip skipped
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &skip):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", c.name, skip)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			failed = true
			if c.name == "Database reachable" {
				reachable = false
			}
		}
	}

	ctx.Println()
	if failed {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchema(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return skipped("storage has no schema")
	}
	current, pending, err := migrator.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("schema version %d has %d pending migration(s); run 'ventureboard migrate'", current, pending)
	}
	return nil
}

func validateAll[T any, P interface {
	*T
	Validate() error
}](what string, items []T) error {
	for i := range items {
		if err := P(&items[i]).Validate(); err != nil {
			return fmt.Errorf("%s #%d: %w", what, i+1, err)
		}
	}
	return nil
}

func checkData(ctx *cli.Context) error {
	d, err := dashboard.Load(ctx.Store)
	if err != nil {
		return err
	}
	return errors.Join(
		validateAll("wallet entry", d.Finance.Wallet),
		validateAll("expense", d.Finance.Expenses),
		validateAll("income", d.Finance.Income),
		validateAll("investment", d.Finance.Investments),
		validateAll("loan", d.Finance.Loans),
		validateAll("goal", d.Finance.Goals),
		validateAll("intellectual property", d.Finance.IntellectualProperty),
		validateAll("skill", d.Reminders.Skills),
		validateAll("task", d.Tasks),
		validateAll("daily overview", d.Reminders.DailyOverviews),
		validateAll("weekly review", d.Reminders.WeeklyReviews),
		validateAll("pomodoro session", d.Pomodoros),
	)
}

func checkClockTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("unknown timezone %q; fix it with 'ventureboard settings --timezone'", settings.Timezone)
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return skipped("file backups are SQLite only")
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found; create one with 'ventureboard backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; PostgreSQL credentials must come from %s", config.EnvDBConnection)
	}
	return nil
}
