package rule

import (
	"context"

	"github.com/julianstephens/ruleoflife/internal/cli"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
)

// WakeTimeCmd shows or sets the wake time used by the fixed wake time practice.
type WakeTimeCmd struct {
	Time  string `arg:"" optional:"" help:"Wake time as HH:MM."`
	Clear bool   `help:"Remove the stored wake time."`
}

func (c *WakeTimeCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	if c.Time == "" && !c.Clear {
		settings, err := ctx.Store.GetUserSettings(bg, ctx.User)
		if err != nil {
			return err
		}
		if settings.WakeTime == nil {
			ctx.Println("No wake time set.")
		} else {
			ctx.Printf("Wake time: %s\n", *settings.WakeTime)
		}
		return nil
	}
	if c.Time != "" && c.Clear {
		return apperrors.Invalidf("give a time or --clear, not both")
	}

	settings, err := ctx.PracticeService().SetWakeTime(bg, ctx.User, c.Time)
	if err != nil {
		return apperrors.Friendly(err)
	}
	if settings.WakeTime == nil {
		ctx.Println("Wake time cleared.")
	} else {
		ctx.Printf("%s Wake time set to %s\n", cli.DoneStyle.Render("✓"), *settings.WakeTime)
	}
	return nil
}
