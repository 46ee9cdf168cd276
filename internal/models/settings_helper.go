package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/ventureboard/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingCurrencySymbol:
			settings.CurrencySymbol = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingNotifyMinPriority:
			settings.NotifyMinPriority = Priority(value)
		case constants.SettingBackupRetention:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.BackupRetention = n
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingCurrencySymbol:       settings.CurrencySymbol,
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingNotifyMinPriority:    string(settings.NotifyMinPriority),
		constants.SettingBackupRetention:      strconv.Itoa(settings.BackupRetention),
	}
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		CurrencySymbol:       constants.DefaultCurrencySymbol,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		NotifyMinPriority:    Priority(constants.DefaultNotifyMinPriority),
		BackupRetention:      constants.DefaultBackupRetention,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	defaults := DefaultSettings()
	if settings.Timezone == "" {
		settings.Timezone = defaults.Timezone
	}
	if settings.CurrencySymbol == "" {
		settings.CurrencySymbol = defaults.CurrencySymbol
	}
	if settings.NotifyMinPriority == "" {
		settings.NotifyMinPriority = defaults.NotifyMinPriority
	}
	if settings.BackupRetention <= 0 {
		settings.BackupRetention = defaults.BackupRetention
	}
}
