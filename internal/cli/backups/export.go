package backups

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/export"
)

// format picks the explicit --format or infers it from the file extension.
func format(flag, path string) (export.Format, error) {
	if flag == "" {
		return export.FormatForPath(path), nil
	}
	return export.ParseFormat(flag)
}

type ExportCmd struct {
	Output string `arg:"" help:"File to write the snapshot to. Use - for stdout."`
	Format string `help:"json or msgpack. Inferred from the file extension when omitted."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	f, err := format(c.Format, c.Output)
	if err != nil {
		return err
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	snap, err := export.Collect(ctx.Store, now)
	if err != nil {
		return err
	}

	if c.Output == "-" {
		return export.Write(ctx.Writer(), snap, f)
	}

	file, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(file, snap, f); err != nil {
		file.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	ctx.Printf("✓ Exported to %s (%s)\n", c.Output, f)
	return nil
}

type ImportCmd struct {
	Input  string `arg:"" help:"Snapshot file written by 'ventureboard export'." type:"existingfile"`
	Format string `help:"json or msgpack. Inferred from the file extension when omitted."`
	Yes    bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := format(c.Format, c.Input)
	if err != nil {
		return err
	}
	file, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	snap, err := export.Read(file, f)
	if err != nil {
		return err
	}

	ctx.Printf("Snapshot exported at %s\n", snap.ExportedAt.Format("2006-01-02 15:04"))
	ctx.Println("Records with matching IDs will be replaced and settings overwritten.")
	if !c.Yes && !ctx.Confirm("Continue?") {
		ctx.Println("Import cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()

	counts, err := export.Restore(ctx.Store, snap)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	ctx.Printf("✓ Imported %d record(s)\n", counts.Total())
	for _, name := range slices.Sorted(maps.Keys(counts)) {
		ctx.Printf("    %-22s %d\n", name, counts[name])
	}
	return nil
}
