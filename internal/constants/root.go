package constants

import "time"

const (
	AppName            = "ventureboard"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/ventureboard/ventureboard.db"
	Version            = "v0.3.0"
	DefaultPort        = 8080

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ventureboard-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "ventureboard-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.ventureboard"
	TrayExecutablePrefix   = "ventureboard-tray"

	// Reminder windows, in whole days
	DueWindowDays        = 7
	DueSoonDays          = 3
	EMIWrapThresholdDays = 15
	EMIWrapDays          = 30
	SkillIdleDays        = 3
	SkillIdleUrgentDays  = 7

	// Hours of the local day after which the daily overview reminder fires
	OverviewReminderHour       = 18
	OverviewReminderUrgentHour = 21

	// A day counts towards the streak at or above this percentage
	StreakThresholdPct = 50

	// Default number of days shown by productivity views
	DefaultProductivityDays = 30
	MaxProductivityDays     = 366

	// SIP contributions are annualized over this many months
	SIPMonthsPerYear = 12
)
