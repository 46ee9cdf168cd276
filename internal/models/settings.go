package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string   `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
	CurrencySymbol       string   `json:"currency_symbol"`       // prefix used when formatting money
	NotificationsEnabled bool     `json:"notifications_enabled"` // push reminders to the tray app
	NotifyMinPriority    Priority `json:"notify_min_priority"`   // least urgent reminder that is pushed
	BackupRetention      int      `json:"backup_retention"`      // number of automatic backups kept
}
