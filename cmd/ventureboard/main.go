package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/cli/accounts"
	"github.com/julianstephens/ventureboard/internal/cli/alerts"
	"github.com/julianstephens/ventureboard/internal/cli/backups"
	"github.com/julianstephens/ventureboard/internal/cli/invest"
	"github.com/julianstephens/ventureboard/internal/cli/journal"
	"github.com/julianstephens/ventureboard/internal/cli/settings"
	"github.com/julianstephens/ventureboard/internal/cli/skills"
	"github.com/julianstephens/ventureboard/internal/cli/system"
	"github.com/julianstephens/ventureboard/internal/cli/tasks"
	"github.com/julianstephens/ventureboard/internal/config"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/errors"
	"github.com/julianstephens/ventureboard/internal/keyring"
	"github.com/julianstephens/ventureboard/internal/logger"
	"github.com/julianstephens/ventureboard/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path or PostgreSQL URL. PostgreSQL URLs must NOT embed a password; use VENTUREBOARD_DB_CONNECTION or 'ventureboard keyring set' instead." type:"string"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize ventureboard storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the dashboard API and run background jobs."`

	Wallet    accounts.WalletCmd  `cmd:"" help:"Track cash in hand."`
	Expense   accounts.ExpenseCmd `cmd:"" help:"Manage expenses."`
	Income    accounts.IncomeCmd  `cmd:"" help:"Manage income."`
	Loan      accounts.LoanCmd    `cmd:"" help:"Manage loans and EMI payments."`
	Goal      accounts.GoalCmd    `cmd:"" help:"Manage savings goals."`
	IP        accounts.IPCmd      `cmd:"" name:"ip" help:"Manage intellectual property assets."`
	Invest    invest.InvestCmd    `cmd:"" help:"Manage investments."`
	Networth  invest.NetWorthCmd  `cmd:"" help:"Show net worth."`
	Portfolio invest.PortfolioCmd `cmd:"" help:"Show portfolio value and profit/loss."`

	Task         tasks.TaskCmd         `cmd:"" help:"Manage daily tasks."`
	Productivity tasks.ProductivityCmd `cmd:"" help:"Show productivity scores and streak."`
	Pomodoro     tasks.PomodoroCmd     `cmd:"" help:"Log and review focus sessions."`
	Skill        skills.SkillCmd       `cmd:"" help:"Track skills and practice time."`
	Overview     journal.OverviewCmd   `cmd:"" help:"Write or read a daily overview."`
	Review       journal.ReviewCmd     `cmd:"" help:"Write or read a weekly review."`
	Remind       alerts.RemindCmd      `cmd:"" help:"Show due reminders."`

	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Export   backups.ExportCmd    `cmd:"" help:"Export all data to a file."`
	Import   backups.ImportCmd    `cmd:"" help:"Import data from an export file."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// Commands that open storage themselves, or never touch it.
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal finance and productivity dashboard"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	command := strings.Fields(ctx.Command())[0]

	cfg, err := config.Load()
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	store, source, err := openStore(cfg)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: configDir(store),
		Level:     cfg.LogLevel,
		Stderr:    command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Storage selected", "path", store.GetConfigPath(), "credentials", source)

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(&cli.Context{
		Store:  store,
		Config: cfg,
	})
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}

// openStore prefers --config, then a trusted connection string from the
// environment or keyring, then VENTUREBOARD_DB.
func openStore(cfg *config.Config) (storage.Provider, keyring.Source, error) {
	if CLI.Config != "" {
		store, err := storage.Open(CLI.Config)
		return store, keyring.SourceNone, err
	}
	connStr, source, err := keyring.Resolve(cfg.DBConnection)
	if err != nil {
		return nil, keyring.SourceNone, err
	}
	if connStr != "" {
		return storage.OpenConnString(connStr), source, nil
	}
	store, err := storage.Open(cfg.DB)
	return store, keyring.SourceNone, err
}

// configDir is where logs go: next to the SQLite file, or the default
// config directory for other backends.
func configDir(store storage.Provider) string {
	path := store.GetConfigPath()
	if filepath.IsAbs(path) {
		return filepath.Dir(path)
	}
	dir, err := storage.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return os.TempDir()
	}
	return dir
}
