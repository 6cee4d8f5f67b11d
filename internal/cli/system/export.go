package system

import (
	"context"

	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/export"
)

// ExportCmd writes the user's practices, overrides, settings and
// completions as JSON.
type ExportCmd struct {
	Out string `short:"o" help:"File or directory to write to, or - for stdout." default:"."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	svc := ctx.ExportService()
	payload, err := svc.Build(context.Background(), ctx.User)
	if err != nil {
		return err
	}

	if c.Out == "-" {
		return export.Write(ctx.Writer(), payload)
	}

	path, err := svc.WriteFile(c.Out, payload)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d completions to %s\n", len(payload.Completions), path)
	return nil
}
