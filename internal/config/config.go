// Package config reads process configuration from the environment and an
// optional .env file. Persisted user preferences live in the settings table.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/utils"
)

const (
	EnvDB           = "VENTUREBOARD_DB"
	EnvDBConnection = "VENTUREBOARD_DB_CONNECTION"
	EnvDebug        = "VENTUREBOARD_DEBUG"
	EnvPort         = "VENTUREBOARD_PORT"
	EnvTimezone     = "VENTUREBOARD_TIMEZONE"
	EnvNotify       = "VENTUREBOARD_NOTIFY"
	EnvLogLevel     = "VENTUREBOARD_LOG_LEVEL"
)

// Config holds application configuration
type Config struct {
	// DB is a SQLite path or a PostgreSQL URL without credentials.
	DB string
	// DBConnection is a full PostgreSQL connection string that may carry a
	// password. It takes precedence over DB when set.
	DBConnection string
	Debug        bool
	Port         int
	// Timezone overrides the stored setting when non-empty.
	Timezone string
	// Notify=false turns off reminder pushes whatever the stored setting says.
	Notify   bool
	LogLevel string
}

// Load reads configuration from environment variables, after loading any
// .env files given (or ./.env when none are).
func Load(envFiles ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		DB:           getEnv(EnvDB, constants.DefaultConfigPath),
		DBConnection: getEnv(EnvDBConnection, ""),
		Debug:        getEnvAsBool(EnvDebug, false),
		Port:         getEnvAsInt(EnvPort, constants.DefaultPort),
		Timezone:     getEnv(EnvTimezone, ""),
		Notify:       getEnvAsBool(EnvNotify, constants.DefaultNotificationsEnabled),
		LogLevel:     getEnv(EnvLogLevel, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.DB == "" && c.DBConnection == "" {
		return fmt.Errorf("%s is required", EnvDB)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", EnvPort, c.Port)
	}
	if c.Timezone != "" && !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("%s: unknown timezone %q", EnvTimezone, c.Timezone)
	}
	return nil
}

// Location resolves the timezone every surface uses: the environment override
// when set, otherwise the stored setting. A nil Config uses the setting.
func (c *Config) Location(settings models.Settings) (*time.Location, error) {
	tz := settings.Timezone
	if c != nil && c.Timezone != "" {
		tz = c.Timezone
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// LocalTime converts t into the resolved timezone.
func (c *Config) LocalTime(t time.Time, settings models.Settings) (time.Time, error) {
	loc, err := c.Location(settings)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// NotificationsEnabled reports whether reminders may be pushed.
func (c *Config) NotificationsEnabled(settings models.Settings) bool {
	if c != nil && !c.Notify {
		return false
	}
	return settings.NotificationsEnabled
}

// Addr is the listen address for the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
