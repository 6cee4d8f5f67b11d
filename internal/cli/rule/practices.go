package rule

import (
	"context"

	"github.com/julianstephens/ruleoflife/internal/cli"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/liturgical"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
)

// PracticesCmd prints the rule of life grouped by season and lane.
type PracticesCmd struct {
	Season     string `help:"Only show one season (e.g. lent, ordinary-time)."`
	Recurrence string `help:"Only show daily or weekly practices."`
	All        bool   `help:"Include retired catalog practices."`
}

func (c *PracticesCmd) Run(ctx *cli.Context) error {
	filter := models.PracticeFilter{ActiveOnly: !c.All}
	if c.Season != "" {
		season, err := liturgical.NormalizeSeason(c.Season)
		if err != nil {
			return err
		}
		filter.Season = season
	}
	if c.Recurrence != "" {
		rec, err := models.ParseRecurrence(c.Recurrence)
		if err != nil {
			return apperrors.Invalidf("%v", err)
		}
		filter.Recurrence = rec
	}

	effective, err := ctx.PracticeService().Effective(context.Background(), ctx.User, filter)
	if err != nil {
		return err
	}
	if len(effective) == 0 {
		ctx.Println("No practices match.")
		return nil
	}

	for _, season := range models.Seasons {
		var inSeason []models.EffectivePractice
		for _, ep := range effective {
			if ep.Season == season {
				inSeason = append(inSeason, ep)
			}
		}
		if len(inSeason) == 0 {
			continue
		}

		ctx.Println(cli.HeadingStyle.Render(practices.SeasonLabel(season)))
		for _, g := range practices.GroupByLane(inSeason) {
			ctx.Printf("  %s\n", cli.LaneStyle.Render(g.Label))
			for _, ep := range g.Practices {
				ctx.Printf("    %-18s %s %s%s\n",
					practices.WhenLabel(ep),
					ep.EffectiveTitle,
					cli.MutedStyle.Render("("+ep.Key+")"),
					status(ep))
			}
		}
		ctx.Println()
	}
	return nil
}

func status(ep models.EffectivePractice) string {
	switch {
	case !ep.IsActive:
		return " " + cli.MutedStyle.Render("[retired]")
	case !ep.IsEnabled:
		return " " + cli.WarnStyle.Render("[disabled]")
	}
	return ""
}
