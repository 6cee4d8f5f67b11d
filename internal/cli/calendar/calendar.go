// Package calendar holds the commands that look at dates: the liturgical
// season, the verse of the day and the completion history.
package calendar

import (
	"context"

	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/clock"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/history"
	"github.com/julianstephens/ruleoflife/internal/liturgical"
	"github.com/julianstephens/ruleoflife/internal/practices"
	calview "github.com/julianstephens/ruleoflife/internal/tui/components/calendar"
)

type SeasonCmd struct {
	Date string `help:"Date as YYYY-MM-DD. Defaults to today."`
}

func (c *SeasonCmd) Run(ctx *cli.Context) error {
	date := dateOrToday(ctx, c.Date)
	day, err := ctx.Resolver(nil).Day(context.Background(), date)
	if err != nil {
		return apperrors.Friendly(err)
	}

	ctx.Printf("%s  %s\n", day.Date, cli.HeadingStyle.Render(practices.SeasonLabel(day.Season)))
	if day.CelebrationName != nil {
		line := *day.CelebrationName
		if day.CelebrationType != nil {
			line += " " + cli.MutedStyle.Render("("+*day.CelebrationType+")")
		}
		ctx.Println(line)
	}
	if ps := liturgical.PracticeSeason(day.Season); ps != day.Season {
		ctx.Println(cli.MutedStyle.Render("Practices follow " + practices.SeasonLabel(ps) + "."))
	}
	return nil
}

type VerseCmd struct {
	Date string `help:"Date as YYYY-MM-DD. Defaults to today."`
}

func (c *VerseCmd) Run(ctx *cli.Context) error {
	date := dateOrToday(ctx, c.Date)
	v, _, err := ctx.Verses.ForDate(date)
	if err != nil {
		return apperrors.Friendly(err)
	}
	ctx.Println(cli.HeadingStyle.Render(v.Reference))
	if v.Text != "" {
		ctx.Println(v.Text)
	}
	return nil
}

// HistoryCmd shows a month of completions. --date selects a day and lists
// what was done on it.
type HistoryCmd struct {
	Month string `help:"Month as YYYY-MM. Defaults to the month of --date, or this month."`
	Date  string `help:"Day to list, as YYYY-MM-DD."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if c.Date != "" {
		if err := clock.ValidateDate(c.Date); err != nil {
			return err
		}
	}

	var month history.Month
	switch {
	case c.Month != "":
		m, err := history.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		month = m
	case c.Date != "":
		month, _ = history.MonthOf(c.Date)
	default:
		month = history.CurrentMonth(ctx.Clock)
	}

	view, err := ctx.HistoryService().Month(context.Background(), ctx.User, month, c.Date)
	if err != nil {
		return apperrors.Friendly(err)
	}
	ctx.Printf("%s", calview.Render(view))
	return nil
}

func dateOrToday(ctx *cli.Context, date string) string {
	if date == "" {
		return ctx.Clock.Today()
	}
	return date
}
