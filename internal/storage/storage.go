package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/ventureboard/internal/storage/memory"
	"github.com/julianstephens/ventureboard/internal/storage/postgres"
	"github.com/julianstephens/ventureboard/internal/storage/sqlite"
)

// MemoryConfig selects the in-process store.
const MemoryConfig = ":memory:"

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Provider = (*memory.Store)(nil)
)

// Open picks a backend from a user-supplied config value. PostgreSQL URLs must
// not carry a password; use OpenConnString for secrets read from the keyring
// or the environment.
func Open(config string) (Provider, error) {
	config = strings.TrimSpace(config)
	switch {
	case config == "":
		return nil, fmt.Errorf("no storage configured")
	case config == MemoryConfig:
		return memory.New(), nil
	case postgres.IsConnString(config):
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	}
	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// OpenConnString opens PostgreSQL with a trusted connection string that may
// include credentials.
func OpenConnString(connStr string) Provider {
	return postgres.New(connStr)
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Migrator is implemented by the SQL backends.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (current, pending int, err error)
}
