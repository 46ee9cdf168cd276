package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ventureboard/internal/backup"
	"github.com/julianstephens/ventureboard/internal/config"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/logger"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/notifier"
	"github.com/julianstephens/ventureboard/internal/productivity"
	"github.com/julianstephens/ventureboard/internal/reminders"
	"github.com/julianstephens/ventureboard/internal/storage"
)

// Default schedules
const (
	ProductivitySchedule = "@hourly"
	ReminderSchedule     = "@every 30m"
	BackupSchedule       = "@daily"
)

// localNow returns the current time in the resolved timezone.
func localNow(store storage.Provider, env *config.Config, now func() time.Time) (time.Time, models.Settings, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return time.Time{}, models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	local, err := env.LocalTime(now(), settings)
	if err != nil {
		return time.Time{}, models.Settings{}, err
	}
	return local, settings, nil
}

// ProductivityRefreshJob rescores yesterday and today when they already have
// an entry, so edits made outside the CLI reach the cached series. It never
// creates an entry: an untouched day stays unscored.
type ProductivityRefreshJob struct {
	store storage.Provider
	env   *config.Config
	now   func() time.Time
}

func NewProductivityRefreshJob(store storage.Provider, env *config.Config) *ProductivityRefreshJob {
	return &ProductivityRefreshJob{store: store, env: env, now: time.Now}
}

func (j *ProductivityRefreshJob) Name() string {
	return "productivity_refresh"
}

func (j *ProductivityRefreshJob) Run() error {
	now, _, err := localNow(j.store, j.env, j.now)
	if err != nil {
		return err
	}
	stored, err := j.store.GetProductivityEntries()
	if err != nil {
		return fmt.Errorf("failed to load productivity: %w", err)
	}
	idx := productivity.Index(stored)

	var dates []string
	for _, day := range []time.Time{now.AddDate(0, 0, -1), now} {
		date := day.Format(constants.DateFormat)
		if _, ok := idx[date]; ok {
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		return nil
	}
	entries, err := dashboard.RefreshProductivity(j.store, dates...)
	if err != nil {
		return err
	}
	logger.Debug("Productivity refreshed", "entries", len(entries))
	return nil
}

// ReminderSender delivers reminders; *notifier.Notifier implements it.
type ReminderSender interface {
	NotifyReminders(ctx context.Context, rs []models.Reminder, min models.Priority, date string) (int, error)
}

// ReminderNotifyJob pushes urgent reminders when notifications are enabled.
type ReminderNotifyJob struct {
	store  storage.Provider
	sender ReminderSender
	env    *config.Config
	now    func() time.Time
}

func NewReminderNotifyJob(store storage.Provider, sender ReminderSender, env *config.Config) *ReminderNotifyJob {
	return &ReminderNotifyJob{store: store, sender: sender, env: env, now: time.Now}
}

func (j *ReminderNotifyJob) Name() string {
	return "reminder_notify"
}

func (j *ReminderNotifyJob) Run() error {
	now, settings, err := localNow(j.store, j.env, j.now)
	if err != nil {
		return err
	}
	if !j.env.NotificationsEnabled(settings) {
		return nil
	}

	data, err := dashboard.Load(j.store)
	if err != nil {
		return err
	}
	rs := reminders.Generate(data.Reminders, now)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sent, err := j.sender.NotifyReminders(ctx, rs, settings.NotifyMinPriority, now.Format(constants.DateFormat))
	if errors.Is(err, notifier.ErrTrayNotRunning) {
		logger.Debug("Tray app not running, skipping notifications")
		return nil
	}
	if err != nil {
		return err
	}
	if sent > 0 {
		logger.Info("Reminders pushed", "count", sent)
	}
	return nil
}

// BackupJob snapshots the SQLite database.
type BackupJob struct {
	manager *backup.Manager
}

func NewBackupJob(manager *backup.Manager) *BackupJob {
	return &BackupJob{manager: manager}
}

func (j *BackupJob) Name() string {
	return "backup"
}

func (j *BackupJob) Run() error {
	_, err := j.manager.Create()
	return err
}
