package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	model := tui.NewModel(context.Background(), tui.Services{
		Clock:      ctx.Clock,
		Today:      ctx.TodayService(),
		Completion: ctx.CompletionService(),
		Practices:  ctx.PracticeService(),
		History:    ctx.HistoryService(),
	}, ctx.User)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
