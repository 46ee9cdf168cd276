package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/keyring"
	"github.com/julianstephens/ventureboard/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Show keyring availability and the active connection string." default:"1"`
}

// KeyringSetCmd stores database connection credentials in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string, password included."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	connStr := strings.TrimSpace(cmd.ConnectionString)
	if !postgres.IsConnString(connStr) && !strings.Contains(connStr, "host=") {
		return errors.New("connection string must be a PostgreSQL URL or key=value DSN")
	}
	// A password is the point of storing it here; anything else malformed is not.
	if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return err
	}

	ctx.Println("✓ Connection string stored in OS keyring")
	ctx.Println("  ventureboard will use it whenever VENTUREBOARD_DB_CONNECTION is unset")
	return nil
}

// KeyringDeleteCmd removes database connection credentials from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring")
	}
	if err != nil {
		return err
	}

	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	env := ""
	if ctx.Config != nil {
		env = ctx.Config.DBConnection
	}
	connStr, source, err := keyring.Resolve(env)
	if err != nil {
		return err
	}
	if source == keyring.SourceNone {
		ctx.Println("ℹ No connection string stored; using SQLite")
		return nil
	}
	ctx.Printf("✓ Using connection string from %s:\n", source)
	ctx.Printf("  %s\n", keyring.Mask(connStr))
	return nil
}
