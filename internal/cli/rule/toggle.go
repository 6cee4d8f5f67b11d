package rule

import (
	"context"

	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/completion"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
)

// ToggleCmd flips today's completion of one practice.
type ToggleCmd struct {
	Practice string `arg:"" help:"Practice ID or key."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	p, err := ctx.PracticeService().Lookup(bg, c.Practice)
	if err != nil {
		return apperrors.Friendly(err)
	}

	res, err := ctx.CompletionService().Toggle(bg, ctx.User, p.ID)
	if err != nil {
		return apperrors.Friendly(err)
	}

	if res.State == completion.Done {
		ctx.Printf("%s Marked %q as done for %s\n", cli.DoneStyle.Render("✓"), p.Key, res.DateLocal)
	} else {
		ctx.Printf("Marked %q as not done for %s\n", p.Key, res.DateLocal)
	}
	return nil
}
