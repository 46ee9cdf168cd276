// Package keyring keeps the PostgreSQL connection string, password included,
// in the OS credential store instead of on the command line.
package keyring

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/ventureboard/internal/constants"
)

var (
	ErrNotFound           = errors.New("connection string not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source names where a connection string came from.
type Source string

const (
	SourceNone    Source = ""
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

func GetConnectionString() (string, error) {
	connStr, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, gokeyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := gokeyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, gokeyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// IsAvailable probes the keyring with a read. A missing entry still means the
// backend works.
func IsAvailable() bool {
	_, err := gokeyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}

// Resolve returns a trusted connection string. envValue wins over the keyring;
// an empty result with SourceNone means neither has one.
func Resolve(envValue string) (string, Source, error) {
	if envValue != "" {
		return envValue, SourceEnv, nil
	}
	connStr, err := GetConnectionString()
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrKeyringUnavailable):
		return "", SourceNone, nil
	case err != nil:
		return "", SourceNone, err
	}
	return connStr, SourceKeyring, nil
}

var dsnPassword = regexp.MustCompile(`(?i)\bpassword=\S*`)

// Mask hides the password in a connection string for display.
func Mask(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
			return u.String()
		}
		return connStr
	}
	return dsnPassword.ReplaceAllString(connStr, "password=xxxxx")
}
