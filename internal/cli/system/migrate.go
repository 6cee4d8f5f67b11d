package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/ruleoflife/internal/backup"
	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/storage/sqlite"
)

type MigrateCmd struct {
	NoBackup bool `help:"Skip the SQLite snapshot taken before pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if !c.NoBackup {
		if err := c.snapshot(ctx); err != nil {
			return err
		}
	}

	count, err := ctx.Store.Migrate(context.Background(), func(msg string) {
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

// snapshot backs up a SQLite database that has migrations pending.
func (c *MigrateCmd) snapshot(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	status, err := store.MigrationStatus(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	if len(status.Pending) == 0 {
		return nil
	}
	path, err := backup.NewManager(store.GetConfigPath()).Create(context.Background())
	if err != nil {
		return fmt.Errorf("failed to back up before migrating: %w", err)
	}
	ctx.Printf("Backed up database to: %s\n", path)
	return nil
}
