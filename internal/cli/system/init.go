package system

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/export"
	"github.com/julianstephens/ventureboard/internal/keyring"
	"github.com/julianstephens/ventureboard/internal/storage"
	"github.com/julianstephens/ventureboard/internal/storage/postgres"
	"github.com/julianstephens/ventureboard/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing SQLite database before initialization."`
	Source string `help:"SQLite path or PostgreSQL URL to copy data from. Use 'keyring' for the stored connection string."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized ventureboard storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source == "" {
		return nil
	}
	ctx.Println("Copying data...")
	counts, err := c.copyFrom(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	for _, name := range slices.Sorted(maps.Keys(counts)) {
		ctx.Printf("    %-22s %d\n", name, counts[name])
	}
	ctx.Printf("✓ Copied %d record(s)\n", counts.Total())
	return nil
}

// reset removes the SQLite file. Other backends are left alone.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" && samePath(c.Source, dbPath) {
		return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context) (export.Counts, error) {
	var (
		src storage.Provider
		err error
	)
	if c.Source == "keyring" {
		connStr, kerr := keyring.GetConnectionString()
		if kerr != nil {
			return nil, kerr
		}
		src = storage.OpenConnString(connStr)
	} else {
		src, err = storage.Open(c.Source)
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("source connection string contains a password; store it with 'ventureboard keyring set' and use --source=keyring")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := src.Load(); err != nil {
		return nil, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	return export.Copy(src, ctx.Store)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
