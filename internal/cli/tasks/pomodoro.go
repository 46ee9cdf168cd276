package tasks

import (
	"fmt"
	"time"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/utils"
)

type PomodoroCmd struct {
	Log  PomodoroLogCmd  `cmd:"" help:"Record a focus session."`
	List PomodoroListCmd `cmd:"" help:"List recent focus sessions."`
}

type PomodoroLogCmd struct {
	Minutes   int    `help:"Session length in minutes." default:"25"`
	Label     string `help:"What the session was spent on."`
	At        string `help:"Start time today (HH:MM). Defaults to Minutes ago."`
	Abandoned bool   `help:"The session was interrupted before it finished."`
}

func (c *PomodoroLogCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	started := now.Add(-time.Duration(c.Minutes) * time.Minute)
	if c.At != "" {
		at, err := time.Parse(constants.TimeFormat, c.At)
		if err != nil {
			return fmt.Errorf("invalid start time %q (expected HH:MM): %w", c.At, err)
		}
		started = time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	}

	session := models.PomodoroSession{
		ID:          cli.NewID(),
		Label:       c.Label,
		DurationMin: c.Minutes,
		StartedAt:   started,
		Completed:   !c.Abandoned,
	}
	if err := session.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddPomodoroSession(session); err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}

	ctx.Printf("Logged %d minute session at %s\n", session.DurationMin, started.Format(constants.TimeFormat))
	return nil
}

type PomodoroListCmd struct {
	Days int `help:"Number of days to show." default:"7"`
}

func (c *PomodoroListCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	sessions, err := ctx.Store.GetAllPomodoroSessions()
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	since := utils.DateOnly(now).AddDate(0, 0, -(c.Days - 1))
	total, shown := 0, 0
	for _, s := range sessions {
		started := s.StartedAt.In(now.Location())
		if started.Before(since) {
			continue
		}
		mark := "✓"
		if !s.Completed {
			mark = "⊘"
		} else {
			total += s.DurationMin
		}
		ctx.Printf("%s %s  %3d min  %s\n", mark, started.Format(constants.DateFormat+" "+constants.TimeFormat), s.DurationMin, s.Label)
		shown++
	}
	if shown == 0 {
		ctx.Println("No sessions found.")
		return nil
	}
	ctx.Println()
	ctx.Printf("Focus time: %dh%02dm over %d session(s)\n", total/60, total%60, shown)
	return nil
}
