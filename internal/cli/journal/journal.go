package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/utils"
)

type OverviewCmd struct {
	Set  OverviewSetCmd  `cmd:"" help:"Write or update the daily overview."`
	Show OverviewShowCmd `cmd:"" help:"Show a daily overview."`
}

// OverviewSetCmd merges the given fields into the overview for the day.
// Fields that are not given keep their stored value.
type OverviewSetCmd struct {
	Date       string `help:"Day (YYYY-MM-DD, today, yesterday). Defaults to today."`
	Wins       string `help:"What went well."`
	Challenges string `help:"What was hard."`
	Gratitude  string `help:"Something to be grateful for."`
	Tomorrow   string `help:"Focus for tomorrow."`
	Mood       int    `help:"Mood from 1 to 5."`
}

func (c *OverviewSetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	o, err := ctx.Store.GetDailyOverview(date)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to load overview: %w", err)
		}
		o = models.DailyOverview{ID: cli.NewID(), Date: date}
	}
	setIf(&o.Wins, c.Wins)
	setIf(&o.Challenges, c.Challenges)
	setIf(&o.Gratitude, c.Gratitude)
	setIf(&o.TomorrowFocus, c.Tomorrow)
	if c.Mood != 0 {
		o.Mood = c.Mood
	}
	o.UpdatedAt = now

	if err := o.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveDailyOverview(o); err != nil {
		return fmt.Errorf("failed to save overview: %w", err)
	}

	ctx.Printf("✓ Saved overview for %s\n", date)
	return nil
}

type OverviewShowCmd struct {
	Date string `arg:"" optional:"" help:"Day (YYYY-MM-DD, today, yesterday). Defaults to today."`
}

func (c *OverviewShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	o, err := ctx.Store.GetDailyOverview(date)
	if errors.Is(err, models.ErrNotFound) {
		ctx.Printf("No overview for %s.\n", date)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load overview: %w", err)
	}

	ctx.Printf("Daily overview for %s\n", o.Date)
	if o.Mood > 0 {
		ctx.Printf("  Mood:       %d/5\n", o.Mood)
	}
	printField(ctx, "Wins", o.Wins)
	printField(ctx, "Challenges", o.Challenges)
	printField(ctx, "Gratitude", o.Gratitude)
	printField(ctx, "Tomorrow", o.TomorrowFocus)
	return nil
}

type ReviewCmd struct {
	Set  ReviewSetCmd  `cmd:"" help:"Write or update the weekly review."`
	Show ReviewShowCmd `cmd:"" help:"Show a weekly review."`
}

// ReviewSetCmd merges the given fields into the review for the week that
// contains Week.
type ReviewSetCmd struct {
	Week            string `help:"Any day in the week (YYYY-MM-DD). Defaults to this week."`
	Accomplishments string `help:"What got done."`
	Lessons         string `help:"What was learned."`
	Goals           string `help:"Goals for next week."`
	Rating          int    `help:"Rating from 1 to 10."`
}

func (c *ReviewSetCmd) Run(ctx *cli.Context) error {
	weekStart, err := resolveWeek(ctx, c.Week)
	if err != nil {
		return err
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	r, err := ctx.Store.GetWeeklyReview(weekStart)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to load review: %w", err)
		}
		r = models.WeeklyReview{ID: cli.NewID(), WeekStart: weekStart}
	}
	setIf(&r.Accomplishments, c.Accomplishments)
	setIf(&r.Lessons, c.Lessons)
	setIf(&r.NextWeekGoals, c.Goals)
	if c.Rating != 0 {
		r.Rating = c.Rating
	}
	r.UpdatedAt = now

	if err := r.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveWeeklyReview(r); err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}

	ctx.Printf("✓ Saved review for the week of %s\n", weekStart)
	return nil
}

type ReviewShowCmd struct {
	Week string `arg:"" optional:"" help:"Any day in the week (YYYY-MM-DD). Defaults to this week."`
}

func (c *ReviewShowCmd) Run(ctx *cli.Context) error {
	weekStart, err := resolveWeek(ctx, c.Week)
	if err != nil {
		return err
	}
	r, err := ctx.Store.GetWeeklyReview(weekStart)
	if errors.Is(err, models.ErrNotFound) {
		ctx.Printf("No review for the week of %s.\n", weekStart)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load review: %w", err)
	}

	ctx.Printf("Weekly review for the week of %s\n", r.WeekStart)
	if r.Rating > 0 {
		ctx.Printf("  Rating:     %d/10\n", r.Rating)
	}
	printField(ctx, "Done", r.Accomplishments)
	printField(ctx, "Lessons", r.Lessons)
	printField(ctx, "Next week", r.NextWeekGoals)
	return nil
}

// resolveWeek maps any day to the Monday that starts its week.
func resolveWeek(ctx *cli.Context, day string) (string, error) {
	date, err := ctx.ResolveDate(day)
	if err != nil {
		return "", err
	}
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return "", err
	}
	return utils.FormatDate(utils.WeekStart(t)), nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func printField(ctx *cli.Context, label, value string) {
	if value == "" {
		return
	}
	ctx.Printf("  %-11s %s\n", label+":", value)
}
