package rule

import (
	"context"

	"github.com/julianstephens/ruleoflife/internal/cli"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
)

// OverrideCmd customizes one practice for the current user.
type OverrideCmd struct {
	Practice     string  `arg:"" help:"Practice ID or key."`
	Weekday      string  `help:"Move a weekly practice to this day (0-6 or a day name)."`
	ClearWeekday bool    `help:"Return a weekly practice to its catalog day." xor:"weekday"`
	Enable       bool    `help:"Enable the practice." xor:"enabled"`
	Disable      bool    `help:"Disable the practice." xor:"enabled"`
	Title        *string `help:"Custom title. An empty value restores the catalog title."`
	Description  *string `help:"Custom description. An empty value restores the catalog description."`
}

func (c *OverrideCmd) Run(ctx *cli.Context) error {
	patch := practices.Patch{
		ClearWeekday: c.ClearWeekday,
		Title:        c.Title,
		Description:  c.Description,
	}
	if c.Weekday != "" {
		if c.ClearWeekday {
			return apperrors.Invalidf("--weekday and --clear-weekday cannot be combined")
		}
		wd, err := models.ParseWeekday(c.Weekday)
		if err != nil {
			return apperrors.Invalidf("%v", err)
		}
		patch.Weekday = &wd
	}
	switch {
	case c.Enable:
		patch.Enabled = boolPtr(true)
	case c.Disable:
		patch.Enabled = boolPtr(false)
	}

	bg := context.Background()
	svc := ctx.PracticeService()
	o, err := svc.SetOverride(bg, ctx.User, c.Practice, patch)
	if err != nil {
		return apperrors.Friendly(err)
	}

	p, err := svc.Lookup(bg, o.PracticeID)
	if err != nil {
		return err
	}
	ep := practices.ResolveOne(p, &o)

	ctx.Printf("%s Updated %q\n", cli.DoneStyle.Render("✓"), p.Key)
	ctx.Printf("  Title:   %s\n", ep.EffectiveTitle)
	ctx.Printf("  When:    %s\n", practices.WhenLabel(ep))
	if ep.IsEnabled {
		ctx.Println("  Enabled: yes")
	} else {
		ctx.Println("  Enabled: no")
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
