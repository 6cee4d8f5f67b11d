package system

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ruleoflife/internal/backup"
	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/constants"
	"github.com/julianstephens/ruleoflife/internal/seed"
	"github.com/julianstephens/ruleoflife/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database before initializing."`
	Yes   bool `short:"y" help:"Do not ask for confirmation with --force."`
	Seed  bool `help:"Load the built-in practice catalog."`
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
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if !c.Seed {
		ctx.Printf("Run '%s seed' to load the practice catalog.\n", constants.AppName)
		return nil
	}

	catalog, err := seed.Catalog()
	if err != nil {
		return err
	}
	res, err := seed.Apply(context.Background(), ctx.Store, catalog)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	ctx.Printf("Seeded %d practices (%d new, %d updated).\n", len(catalog), res.Inserted, res.Updated)
	return nil
}

// reset removes the SQLite file behind the store. PostgreSQL databases are
// never dropped.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errors.New("--force only supports SQLite storage")
	}
	dbPath := ctx.Store.GetConfigPath()

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s and every completion in it?", dbPath)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			return errors.New("init cancelled")
		}
	}

	snap, err := backup.NewManager(dbPath).Create(context.Background())
	if err != nil {
		return fmt.Errorf("failed to back up existing database: %w", err)
	}
	ctx.Printf("Backed up existing database to: %s\n", snap)

	// Close first so the file is not held open.
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}
