package tasks

import (
	"fmt"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/tui/components/overview"
	"github.com/julianstephens/ventureboard/internal/utils"
)

type ProductivityCmd struct {
	Days    int  `help:"Number of days to summarize." default:"30"`
	Refresh bool `help:"Rescore every day in the window from the current tasks before reporting."`
}

func (c *ProductivityCmd) Validate() error {
	if c.Days < 1 || c.Days > constants.MaxProductivityDays {
		return fmt.Errorf("--days must be between 1 and %d", constants.MaxProductivityDays)
	}
	return nil
}

func (c *ProductivityCmd) Run(ctx *cli.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	if c.Refresh {
		if _, err := dashboard.RefreshProductivity(ctx.Store, utils.LastNDates(now, c.Days)...); err != nil {
			return err
		}
	}

	d, err := dashboard.Compute(ctx.Store, now, c.Days)
	if err != nil {
		return err
	}
	sum := d.Summary

	ctx.Printf("Today: %d%% (%d/%d tasks)\n", d.Today.ProductivityPercentage, d.Today.CompletedTasks, d.Today.TotalTasks)
	ctx.Printf("Streak: %d day(s)\n", d.Streak)
	ctx.Println()
	ctx.Printf("Last %d days: %d tracked\n", sum.Days, sum.DaysTracked)
	if sum.DaysTracked > 0 {
		ctx.Printf("  Average:    %.1f%% (σ %.1f)\n", sum.Mean, sum.StdDev)
		ctx.Printf("  Tasks done: %d/%d\n", sum.TasksCompleted, sum.TasksTotal)
		if sum.Best != nil {
			ctx.Printf("  Best day:   %s (%d%%)\n", sum.Best.Date, sum.Best.ProductivityPercentage)
		}
	}
	if sum.FocusMinutes > 0 {
		ctx.Printf("  Focus time: %dh%02dm\n", sum.FocusMinutes/60, sum.FocusMinutes%60)
	}
	ctx.Println()
	ctx.Println(overview.Heatmap(d.Heatmap))
	return nil
}
