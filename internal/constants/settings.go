package constants

const (
	// General Settings
	SettingTimezone             = "timezone"
	SettingCurrencySymbol       = "currency_symbol"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingNotifyMinPriority    = "notify_min_priority"
	SettingBackupRetention      = "backup_retention"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultCurrencySymbol       = "₹"
	DefaultNotificationsEnabled = true
	DefaultNotifyMinPriority    = "high"
	DefaultBackupRetention      = MaxBackups
)
