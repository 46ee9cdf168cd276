package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/ventureboard/internal/backup"
	"github.com/julianstephens/ventureboard/internal/config"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/logger"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage"
	"github.com/julianstephens/ventureboard/internal/storage/sqlite"
	"github.com/julianstephens/ventureboard/internal/utils"
)

// Context is passed to every command's Run method.
type Context struct {
	Store  storage.Provider
	Config *config.Config

	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Writer is where command output goes.
func (c *Context) Writer() io.Writer {
	return c.out()
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// LocalNow returns the current time in the configured timezone. The
// environment override wins over the stored setting.
func (c *Context) LocalNow() (time.Time, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return c.Config.LocalTime(c.clock(), settings)
}

// Today returns the local date as YYYY-MM-DD.
func (c *Context) Today() (string, error) {
	now, err := c.LocalNow()
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// ResolveDate accepts YYYY-MM-DD, "today", "yesterday" or "tomorrow". An
// empty value means today.
func (c *Context) ResolveDate(s string) (string, error) {
	now, err := c.LocalNow()
	if err != nil {
		return "", err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now.Format(constants.DateFormat), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(constants.DateFormat), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(constants.DateFormat), nil
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return s, nil
}

// Money formats an amount with the stored currency symbol.
func (c *Context) Money(amount decimal.Decimal) string {
	symbol := constants.DefaultCurrencySymbol
	if settings, err := c.Store.GetSettings(); err == nil && settings.CurrencySymbol != "" {
		symbol = settings.CurrencySymbol
	}
	return utils.FormatMoney(amount, symbol)
}

// Confirm asks a y/N question on In.
func (c *Context) Confirm(prompt string) bool {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// RefreshTask rescores the productivity entries that depend on task.
func (c *Context) RefreshTask(task models.DailyTask) error {
	today, err := c.Today()
	if err != nil {
		return err
	}
	if _, err := dashboard.RefreshProductivity(c.Store, dashboard.AffectedDates(task, today)...); err != nil {
		return fmt.Errorf("failed to update productivity: %w", err)
	}
	return nil
}

// BackupManager returns a manager for the SQLite database, or nil for the
// other backends.
func (c *Context) BackupManager() *backup.Manager {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil
	}
	retention := constants.MaxBackups
	if settings, err := c.Store.GetSettings(); err == nil {
		retention = settings.BackupRetention
	}
	return backup.NewManager(c.Store.GetConfigPath(), retention)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.New().String()
}

// ParseAmount parses a non-negative amount given on the command line.
func ParseAmount(s string) (decimal.Decimal, error) {
	return utils.ParseAmountStrict(s)
}

// ParseOptionalAmount is ParseAmount where an empty value is zero.
func ParseOptionalAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return utils.ParseAmountStrict(s)
}
