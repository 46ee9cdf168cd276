package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/config"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/notifier"
	"github.com/julianstephens/ventureboard/internal/reminders"
)

const notifyTimeout = 30 * time.Second

type sender interface {
	NotifyReminders(ctx context.Context, rs []models.Reminder, min models.Priority, date string) (int, error)
}

type RemindCmd struct {
	Min    string `help:"Only show reminders at least this urgent (high, medium, low)." default:"low" enum:"high,medium,low"`
	Notify bool   `help:"Push reminders at or above the notification priority to the tray app."`

	sender sender
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	min := models.Priority(c.Min)
	if !min.Valid() {
		return fmt.Errorf("invalid priority %q (expected high, medium or low)", c.Min)
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	data, err := dashboard.Load(ctx.Store)
	if err != nil {
		return err
	}

	all := reminders.Generate(data.Reminders, now)
	shown := reminders.Filter(all, min)
	if len(shown) == 0 {
		ctx.Println("✓ Nothing due. You're all caught up.")
	}
	for _, r := range shown {
		due := ""
		if r.DueDate != "" {
			due = " (" + r.DueDate + ")"
		}
		ctx.Printf("%s %-6s %s%s\n", marker(r.Priority), r.Priority, r.Title, due)
		ctx.Printf("         %s\n", r.Message)
	}

	if !c.Notify {
		return nil
	}
	return c.notify(ctx, data.Settings, all, now)
}

func (c *RemindCmd) notify(ctx *cli.Context, settings models.Settings, rs []models.Reminder, now time.Time) error {
	if !ctx.Config.NotificationsEnabled(settings) {
		if settings.NotificationsEnabled {
			ctx.Printf("⊘ Notifications are disabled by %s\n", config.EnvNotify)
		} else {
			ctx.Println("⊘ Notifications are disabled (ventureboard settings --notify=true)")
		}
		return nil
	}
	s := c.sender
	if s == nil {
		s = notifier.New()
	}

	nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	sent, err := s.NotifyReminders(nctx, rs, settings.NotifyMinPriority, now.Format(constants.DateFormat))
	if errors.Is(err, notifier.ErrTrayNotRunning) {
		ctx.Println("⚠ Tray app is not running; no notifications sent")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to send notifications: %w", err)
	}
	ctx.Printf("Sent %d notification(s)\n", sent)
	return nil
}

func marker(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "❗"
	case models.PriorityMedium:
		return "⚠ "
	default:
		return "• "
	}
}
