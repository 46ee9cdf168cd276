package system

import (
	"fmt"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/storage"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version and pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate is only supported for SQLite and PostgreSQL storage")
	}

	if c.Status {
		current, pending, err := migrator.SchemaStatus()
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		ctx.Printf("Schema version: %d (%d pending)\n", current, pending)
		return nil
	}

	ctx.PerformAutomaticBackup()

	count, err := migrator.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
