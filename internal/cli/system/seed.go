package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/seed"
)

// SeedCmd loads a practice catalog. Practices are matched by key, so
// re-running it updates the catalog in place and keeps completions.
type SeedCmd struct {
	File string `help:"YAML catalog to load instead of the built-in one." type:"existingfile"`
}

func (c *SeedCmd) Run(ctx *cli.Context) error {
	var (
		catalog []models.Practice
		err     error
	)
	if c.File != "" {
		catalog, err = seed.Load(c.File)
	} else {
		catalog, err = seed.Catalog()
	}
	if err != nil {
		return err
	}

	res, err := seed.Apply(context.Background(), ctx.Store, catalog)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	ctx.Printf("Seeded %d practices: %d new, %d updated, %d unchanged.\n",
		len(catalog), res.Inserted, res.Updated, res.Unchanged)
	return nil
}
