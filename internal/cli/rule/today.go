// Package rule holds the commands that read and keep the daily rule.
package rule

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/today"
)

type TodayCmd struct {
	JSON bool `help:"Print the view as JSON."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	view, err := ctx.TodayService().Build(context.Background(), ctx.User)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(ctx.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	printHeader(ctx, view)

	if view.Total == 0 {
		ctx.Println(cli.MutedStyle.Render("Nothing scheduled for today."))
	}
	for _, g := range view.Groups {
		ctx.Println(cli.LaneStyle.Render(g.Label))
		for _, item := range g.Items {
			ctx.Printf("  %s %s\n", cli.Checkbox(item.Completed), item.Title)
			if item.Description != "" {
				ctx.Printf("      %s\n", cli.MutedStyle.Render(item.Description))
			}
		}
		ctx.Println()
	}
	if view.Total > 0 {
		ctx.Printf("%d/%d done\n", view.Completed, view.Total)
	}

	if len(view.Upcoming) > 0 {
		ctx.Println()
		printUpcoming(ctx, view.Upcoming)
	}

	if view.Verse != nil {
		ctx.Println()
		ctx.Println(cli.MutedStyle.Render(view.Verse.Reference))
		if view.Verse.Text != "" {
			ctx.Println(view.Verse.Text)
		}
	}
	return nil
}

func printHeader(ctx *cli.Context, view today.View) {
	date, err := clock.ParseDate(view.Date)
	heading := view.Date
	if err == nil {
		heading = date.Format("Monday, January 2, 2006")
	}
	ctx.Println(cli.HeadingStyle.Render(fmt.Sprintf("%s · %s", heading, view.SeasonLabel)))
	if name := view.Liturgical.CelebrationName; name != nil {
		ctx.Println(cli.MutedStyle.Render(*name))
	}
	ctx.Println()
}

// UpcomingCmd lists the next weekly practices after today.
type UpcomingCmd struct{}

func (c *UpcomingCmd) Run(ctx *cli.Context) error {
	view, err := ctx.TodayService().Build(context.Background(), ctx.User)
	if err != nil {
		return err
	}
	if len(view.Upcoming) == 0 {
		ctx.Println("No weekly practices coming up.")
		return nil
	}
	printUpcoming(ctx, view.Upcoming)
	return nil
}

func printUpcoming(ctx *cli.Context, items []today.UpcomingItem) {
	ctx.Println(cli.HeadingStyle.Render("Coming up"))
	for _, u := range items {
		ctx.Printf("  %s  %s %s\n", clock.ShortWeekday(u.Weekday), u.Title, cli.MutedStyle.Render("("+daysUntil(u.DaysUntil)+")"))
	}
}

func daysUntil(n int) string {
	if n == 1 {
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", n)
}
